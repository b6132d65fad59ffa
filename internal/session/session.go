// Package session carries the authenticated user's identity and the
// ownership relation the access gate derives permissions from. Session
// establishment itself happens in the surrounding application; this
// package only consumes its result.
package session

// Role is the account role reported by the auth layer.
type Role string

const (
	// RoleShopper browses public storefronts.
	RoleShopper Role = "shopper"
	// RoleOwner manages exactly one bookstore's catalog.
	RoleOwner Role = "bookstore_owner"
)

// Session is the current authenticated context, passed explicitly into
// the controller and engine constructors rather than read from ambient
// state.
type Session struct {
	UserID      string
	Role        Role
	BookstoreID string // the store this account owns, empty for shoppers
}

// CanManageCatalog reports whether this session may mutate the catalog
// of the given bookstore. Nil sessions (anonymous browsing) cannot.
func (s *Session) CanManageCatalog(storeID string) bool {
	if s == nil {
		return false
	}
	return s.Role == RoleOwner && s.BookstoreID == storeID && storeID != ""
}
