package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/errors"
)

// BookForm is the form-shaped input for create and update. Numeric and
// boolean fields arrive as strings and the genre may be a bare id or a
// previously resolved object; Coerce normalizes all of it before submit.
type BookForm struct {
	Title           string
	Description     string
	Author          string
	Genre           domain.GenreRef
	Price           string
	Availability    string
	Stock           string
	Publisher       string
	PublicationYear string
}

// Coerce converts the form into the wire payload: price to a decimal,
// stock to an integer, availability to a boolean, and the genre to a bare
// identifier. Field-level validation stays on the server; coercion only
// fails when a value cannot be represented on the wire at all.
func (f BookForm) Coerce() (domain.BookPatch, error) {
	patch := domain.BookPatch{
		Title:       f.Title,
		Description: f.Description,
		Author:      f.Author,
		GenreID:     f.Genre.ID,
		Publisher:   f.Publisher,
	}

	if f.Price != "" {
		price, err := strconv.ParseFloat(f.Price, 64)
		if err != nil {
			return domain.BookPatch{}, errors.Mutationf("price %q is not a number", f.Price)
		}
		patch.Price = price
	}

	if f.Stock != "" {
		stock, err := strconv.Atoi(f.Stock)
		if err != nil {
			return domain.BookPatch{}, errors.Mutationf("stock %q is not an integer", f.Stock)
		}
		patch.Stock = stock
	}

	patch.Availability = strings.EqualFold(f.Availability, "true")

	if f.PublicationYear != "" {
		year, err := strconv.Atoi(f.PublicationYear)
		if err != nil {
			return domain.BookPatch{}, errors.Mutationf("publication year %q is not a number", f.PublicationYear)
		}
		patch.PublicationYear = year
	}

	return patch, nil
}

// Create submits a new book. On success the server-assigned record is
// prepended to the cached list with its genre resolved; on failure the
// cache is untouched and the remote message is returned.
func (c *Controller) Create(ctx context.Context, form BookForm) (domain.Book, error) {
	if err := c.gate(); err != nil {
		return domain.Book{}, err
	}

	patch, err := form.Coerce()
	if err != nil {
		return domain.Book{}, err
	}

	created, err := c.client.CreateBook(ctx, patch)
	if err != nil {
		return domain.Book{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	created = domain.ResolveGenre(created, c.genres)
	c.items = append([]domain.Book{created}, c.items...)
	c.logger.Info("book created", "book", created.ID, "title", created.Title)
	return created, nil
}

// Update patches an existing book and splices the response into the
// matching cache entry by id. The patch response may carry the genre as a
// bare id, so it is re-resolved against the known genre set before it can
// reach a render path.
func (c *Controller) Update(ctx context.Context, bookID string, form BookForm) (domain.Book, error) {
	if err := c.gate(); err != nil {
		return domain.Book{}, err
	}

	patch, err := form.Coerce()
	if err != nil {
		return domain.Book{}, err
	}

	updated, err := c.client.UpdateBook(ctx, bookID, patch)
	if err != nil {
		return domain.Book{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	merged := c.splice(updated)
	c.logger.Info("book updated", "book", bookID)
	return merged, nil
}

// Delete removes a book. The server archives the deleted snapshot as a
// side effect; the cache entry is dropped on success.
func (c *Controller) Delete(ctx context.Context, bookID string) error {
	if err := c.gate(); err != nil {
		return err
	}

	if err := c.client.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(bookID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
	c.logger.Info("book deleted", "book", bookID)
	return nil
}

// Restore re-submits an archive's snapshot as an update against the
// original book id. When that id no longer exists server-side the call
// fails visibly; it never creates a duplicate. On success the result is
// merged into the cache like any update, or reinstated at the front when
// the book is not in the current view.
func (c *Controller) Restore(ctx context.Context, archive domain.Archive) (domain.Book, error) {
	if err := c.gate(); err != nil {
		return domain.Book{}, err
	}

	restored, err := c.client.UpdateBook(ctx, archive.BookID, archive.RestorePatch())
	if err != nil {
		return domain.Book{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	merged := c.splice(restored)
	c.logger.Info("book restored", "book", archive.BookID, "archive", archive.ID)
	return merged, nil
}

// Archives fetches the archived snapshots of a book. The list is
// transient, used only for display and restore; it is never merged into
// the catalog cache.
func (c *Controller) Archives(ctx context.Context, bookID string) ([]domain.Archive, error) {
	if err := c.gate(); err != nil {
		return nil, err
	}
	return c.client.ListArchives(ctx, bookID)
}

// CreateGenre adds a genre to the store and appends it to the known set.
// Cached books are not re-resolved; only their own next update picks up
// genre changes.
func (c *Controller) CreateGenre(ctx context.Context, name string) (domain.Genre, error) {
	if err := c.gate(); err != nil {
		return domain.Genre{}, err
	}

	genre, err := c.client.CreateGenre(ctx, name)
	if err != nil {
		return domain.Genre{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.genres = append(c.genres, genre)
	c.logger.Info("genre created", "genre", genre.ID, "name", genre.Name)
	return genre, nil
}

// DeleteGenre removes a genre from the store and from the known set.
// Books referencing it keep their previously resolved snapshot until
// their own next update.
func (c *Controller) DeleteGenre(ctx context.Context, genreID string) error {
	if err := c.gate(); err != nil {
		return err
	}

	if err := c.client.DeleteGenre(ctx, genreID); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.genres {
		if c.genres[i].ID == genreID {
			c.genres = append(c.genres[:i], c.genres[i+1:]...)
			break
		}
	}
	c.logger.Info("genre deleted", "genre", genreID)
	return nil
}

// gate rejects mutations the current session is not permitted to make.
func (c *Controller) gate() error {
	if !c.session.CanManageCatalog(c.scopeID) {
		return errors.Forbidden("only the bookstore owner can manage this catalog")
	}
	return nil
}

// splice merges a mutation response into the cache entry with the same
// id, re-resolving the genre first. Fields the response left empty fall
// back to the cached entry, matching how the server omits unchanged
// subdocuments from patch responses. When the id is not in the current
// view (a restore under a different filter), the record is prepended.
// Callers must hold c.mu.
func (c *Controller) splice(resp domain.Book) domain.Book {
	resp = domain.ResolveGenre(resp, c.genres)

	i := c.indexOf(resp.ID)
	if i < 0 {
		c.items = append([]domain.Book{resp}, c.items...)
		return resp
	}

	existing := c.items[i]
	if resp.Cover == nil {
		resp.Cover = existing.Cover
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = existing.CreatedAt
	}
	if !resp.Genre.Resolved() && existing.Genre.Resolved() && existing.Genre.ID == resp.Genre.ID {
		resp.Genre = existing.Genre
	}
	c.items[i] = resp
	return resp
}
