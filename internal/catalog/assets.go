package catalog

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/errors"
)

// DeleteTarget identifies what an armed two-phase deletion would remove.
type DeleteTarget int

const (
	// TargetCover is a book cover image.
	TargetCover DeleteTarget = iota
	// TargetLogo is the bookstore logo.
	TargetLogo
)

type pendingDelete struct {
	target DeleteTarget
	bookID string // set for covers
}

// UploadCover replaces a book's cover image. On success the new asset is
// merged into the cached book and the asset version is bumped so a stable
// URL with changed bytes is not served stale. On failure the cache is
// untouched and the uploading flag is cleared.
func (c *Controller) UploadCover(ctx context.Context, bookID, filename string, file io.Reader) (domain.Asset, error) {
	if err := c.gate(); err != nil {
		return domain.Asset{}, err
	}

	c.mu.Lock()
	c.uploading[bookID] = true
	c.mu.Unlock()

	asset, err := c.client.UploadCover(ctx, bookID, filename, file)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.uploading, bookID)
	if err != nil {
		return domain.Asset{}, err
	}

	if i := c.indexOf(bookID); i >= 0 {
		cover := asset
		c.items[i].Cover = &cover
	}
	c.assetVersion++
	c.logger.Info("cover uploaded", "book", bookID)
	return asset, nil
}

// RequestDeleteCover arms the confirmation step for deleting a book's
// cover. Nothing is sent until ConfirmDelete.
func (c *Controller) RequestDeleteCover(bookID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = &pendingDelete{target: TargetCover, bookID: bookID}
}

// RequestDeleteLogo arms the confirmation step for deleting the store
// logo.
func (c *Controller) RequestDeleteLogo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = &pendingDelete{target: TargetLogo}
}

// CancelDelete clears any armed deletion without sending anything.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
}

// PendingDelete reports the armed deletion, if any.
func (c *Controller) PendingDelete() (DeleteTarget, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pendingDelete == nil {
		return 0, "", false
	}
	return c.pendingDelete.target, c.pendingDelete.bookID, true
}

// ConfirmDelete executes the armed deletion. Asset deletion is always
// two-phase: request confirmation, then the confirmed action, for both
// covers and logos.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if err := c.gate(); err != nil {
		return err
	}

	c.mu.Lock()
	pending := c.pendingDelete
	c.mu.Unlock()
	if pending == nil {
		return errors.Mutation("no deletion pending confirmation")
	}

	var err error
	switch pending.target {
	case TargetCover:
		err = c.client.DeleteCover(ctx, pending.bookID)
	case TargetLogo:
		err = c.client.DeleteLogo(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = nil
	if err != nil {
		return err
	}

	switch pending.target {
	case TargetCover:
		if i := c.indexOf(pending.bookID); i >= 0 {
			c.items[i].Cover = nil
		}
		c.logger.Info("cover deleted", "book", pending.bookID)
	case TargetLogo:
		if c.bookstore != nil {
			c.bookstore.Logo = nil
		}
		c.logger.Info("logo deleted")
	}
	return nil
}

// UploadLogo replaces the bookstore logo, bumping the asset version on
// success so cached copies of the old image are bypassed.
func (c *Controller) UploadLogo(ctx context.Context, filename string, file io.Reader) (domain.Asset, error) {
	if err := c.gate(); err != nil {
		return domain.Asset{}, err
	}

	c.mu.Lock()
	c.uploading["logo"] = true
	c.mu.Unlock()

	asset, err := c.client.UploadLogo(ctx, filename, file)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.uploading, "logo")
	if err != nil {
		return domain.Asset{}, err
	}

	if c.bookstore != nil {
		logo := asset
		c.bookstore.Logo = &logo
	}
	c.assetVersion++
	c.logger.Info("logo uploaded")
	return asset, nil
}

// Uploading reports whether an upload for the given parent is in flight.
// Use "logo" for the store logo.
func (c *Controller) Uploading(parentID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uploading[parentID]
}

// UpdateProfile patches the owner's store profile and merges the response
// into the cached store detail.
func (c *Controller) UpdateProfile(ctx context.Context, patch domain.BookstorePatch) (domain.Bookstore, error) {
	if err := c.gate(); err != nil {
		return domain.Bookstore{}, err
	}

	store, err := c.client.UpdateBookstore(ctx, patch)
	if err != nil {
		return domain.Bookstore{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if store.Logo == nil && c.bookstore != nil {
		store.Logo = c.bookstore.Logo
	}
	c.bookstore = &store
	c.logger.Info("bookstore profile updated", "store", store.ID)
	return store, nil
}

// AssetVersion returns the monotonic cache-busting token. It increments
// on every successful upload; it never identifies an asset, it only
// defeats stale image caches.
func (c *Controller) AssetVersion() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assetVersion
}

// CacheBustedURL appends the current asset version to an asset URL so a
// replaced image with a stable URL is refetched.
func (c *Controller) CacheBustedURL(asset *domain.Asset) string {
	if asset == nil || asset.URL == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(asset.URL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sv=%s", asset.URL, sep, strconv.FormatUint(c.AssetVersion(), 10))
}
