package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanManageCatalog(t *testing.T) {
	owner := &Session{UserID: "user-1", Role: RoleOwner, BookstoreID: "store-1"}

	assert.True(t, owner.CanManageCatalog("store-1"))
	assert.False(t, owner.CanManageCatalog("store-2"), "owning one store grants nothing on another")
	assert.False(t, owner.CanManageCatalog(""))

	shopper := &Session{UserID: "user-2", Role: RoleShopper}
	assert.False(t, shopper.CanManageCatalog("store-1"))

	var anonymous *Session
	assert.False(t, anonymous.CanManageCatalog("store-1"))
}
