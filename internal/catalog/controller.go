// Package catalog keeps an in-memory, filtered, incrementally-loaded view
// of one bookstore's book collection consistent with the remote store.
//
// The controller owns the cached list and drives pagination and genre
// filtering; the mutation methods apply catalog changes to the cache in
// place without refetching the list. Both operate on the same cache under
// one mutex, so there is a single writer per scope.
package catalog

import (
	"context"
	"log/slog"
	"sync"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/remote"
	"github.com/bookmarketapp/bookmarket-client/internal/session"
)

// Controller synchronizes the cached catalog view of one bookstore.
type Controller struct {
	client  *remote.Client
	session *session.Session
	logger  *slog.Logger

	scopeID  string
	pageSize int

	mu          sync.Mutex
	bookstore   *domain.Bookstore
	genres      []domain.Genre
	activeGenre domain.Genre
	items       []domain.Book
	exhausted   bool

	// epoch is the stale-response guard: Load and SetGenreFilter bump it,
	// and a fetch result is merged only when the epoch it was issued under
	// is still current.
	epoch       uint64
	loadingMore bool

	assetVersion  uint64
	pendingDelete *pendingDelete
	uploading     map[string]bool
}

// New creates a controller scoped to one bookstore. sess may be nil for
// anonymous browsing; mutations are then rejected by the access gate.
func New(client *remote.Client, sess *session.Session, logger *slog.Logger, scopeID string, pageSize int) *Controller {
	return &Controller{
		client:      client,
		session:     sess,
		logger:      logger,
		scopeID:     scopeID,
		pageSize:    pageSize,
		activeGenre: domain.AllGenres,
		uploading:   make(map[string]bool),
	}
}

// LoadStore fetches the bookstore detail and genre set, then the first
// catalog page. A failed store fetch leaves Bookstore() nil so the screen
// can render its not-found state.
func (c *Controller) LoadStore(ctx context.Context) error {
	store, err := c.client.GetBookstore(ctx, c.scopeID, c.pageSize)
	if err != nil {
		return err
	}

	genres, err := c.client.ListGenres(ctx, c.scopeID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.bookstore = &store
	c.genres = genres
	c.mu.Unlock()

	return c.Load(ctx)
}

// Load fetches the first page under the current genre filter, replacing
// the cached items. The page is unpaged by cursor; exhaustion is set when
// the server returned fewer rows than requested.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.epoch++
	token := c.epoch
	genreID := c.activeGenre.ID
	c.mu.Unlock()

	books, err := c.client.ListBooks(ctx, c.scopeID, remote.BooksQuery{
		GenreID: genreID,
		Limit:   c.pageSize,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.epoch {
		// Superseded by a newer load or filter change; drop the result.
		return nil
	}
	if err != nil {
		c.items = nil
		c.exhausted = true
		return err
	}

	c.items = c.resolveAndDedupe(nil, books)
	c.exhausted = len(books) < c.pageSize
	return nil
}

// SetGenreFilter switches the active genre and refetches page one.
// Selecting the genre that is already active is a no-op: no network call,
// no state change. Filters compare by name because the synthetic "All"
// selection has no id.
func (c *Controller) SetGenreFilter(ctx context.Context, genre domain.Genre) error {
	c.mu.Lock()
	if genre.Name == c.activeGenre.Name {
		c.mu.Unlock()
		return nil
	}
	c.activeGenre = genre
	c.items = nil
	c.exhausted = false
	c.mu.Unlock()

	return c.Load(ctx)
}

// LoadMore fetches the next page using the id of the last cached item as
// the cursor. It is a no-op when the view is exhausted, empty, or a load
// is already in flight (two concurrent cursor fetches against the same
// tail would duplicate or skip rows).
//
// Exhaustion is only set by an exactly-empty page. A short but non-empty
// page does not exhaust the view; the server may return short pages
// without meaning "no more", at the cost of one extra empty round trip.
func (c *Controller) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.exhausted || c.loadingMore || len(c.items) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = true
	token := c.epoch
	cursor := c.items[len(c.items)-1].ID
	genreID := c.activeGenre.ID
	c.mu.Unlock()

	books, err := c.client.ListBooks(ctx, c.scopeID, remote.BooksQuery{
		GenreID:        genreID,
		Limit:          c.pageSize,
		LastDocumentID: cursor,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadingMore = false
	if token != c.epoch {
		return nil
	}
	if err != nil {
		return err
	}
	if len(books) == 0 {
		c.exhausted = true
		return nil
	}

	c.items = c.resolveAndDedupe(c.items, books)
	return nil
}

// RefreshGenres refetches the genre set without touching the book cache.
func (c *Controller) RefreshGenres(ctx context.Context) error {
	genres, err := c.client.ListGenres(ctx, c.scopeID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.genres = genres
	c.mu.Unlock()
	return nil
}

// Bookstore returns the cached store detail, or nil when the store was
// not found or not yet loaded.
func (c *Controller) Bookstore() *domain.Bookstore {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bookstore == nil {
		return nil
	}
	store := *c.bookstore
	return &store
}

// Items returns a copy of the cached book list in server order.
func (c *Controller) Items() []domain.Book {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.Book, len(c.items))
	copy(items, c.items)
	return items
}

// Genres returns a copy of the known genre set.
func (c *Controller) Genres() []domain.Genre {
	c.mu.Lock()
	defer c.mu.Unlock()
	genres := make([]domain.Genre, len(c.genres))
	copy(genres, c.genres)
	return genres
}

// ActiveGenre returns the current filter selection.
func (c *Controller) ActiveGenre() domain.Genre {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeGenre
}

// Exhausted reports whether further LoadMore calls would be no-ops.
func (c *Controller) Exhausted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exhausted
}

// resolveAndDedupe appends fetched books to base, resolving genres
// against the known set and dropping ids already present. Server order is
// preserved; the cache is never re-sorted client-side. Callers must hold
// c.mu.
func (c *Controller) resolveAndDedupe(base, fetched []domain.Book) []domain.Book {
	seen := make(map[string]bool, len(base)+len(fetched))
	for i := range base {
		seen[base[i].ID] = true
	}
	for _, b := range fetched {
		if seen[b.ID] {
			c.logger.Warn("dropping duplicate book from page", "book", b.ID)
			continue
		}
		seen[b.ID] = true
		base = append(base, domain.ResolveGenre(b, c.genres))
	}
	return base
}

// indexOf returns the cache position of a book id, or -1. Callers must
// hold c.mu.
func (c *Controller) indexOf(bookID string) int {
	for i := range c.items {
		if c.items[i].ID == bookID {
			return i
		}
	}
	return -1
}
