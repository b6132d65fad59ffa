// Package mockstore is an in-memory implementation of the Bookmarket
// resource API, used for local development and as a test double. It
// honors the same envelopes, pagination, and archive semantics as the
// hosted service.
package mockstore

import (
	"sort"
	"sync"
	"time"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/id"
)

// Store holds the mutable in-memory state behind the server. Books are
// kept newest-first, matching the hosted service's default sort.
type Store struct {
	mu        sync.Mutex
	bookstore domain.Bookstore
	genres    []domain.Genre
	books     []domain.Book
	archives  []domain.Archive
}

// NewStore creates an empty store for the given bookstore record.
func NewStore(bs domain.Bookstore) *Store {
	if bs.ID == "" {
		bs.ID = id.MustGenerate("store")
	}
	if bs.Status == "" {
		bs.Status = domain.StatusActive
	}
	return &Store{bookstore: bs}
}

// BookstoreID returns the id of the served store.
func (s *Store) BookstoreID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bookstore.ID
}

// Seed replaces the genre and book state. Books are re-sorted newest
// first; missing ids and timestamps are filled in.
func (s *Store) Seed(genres []domain.Genre, books []domain.Book) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range genres {
		if genres[i].ID == "" {
			genres[i].ID = id.MustGenerate("genre")
		}
	}
	s.genres = genres

	now := time.Now().UTC()
	for i := range books {
		if books[i].ID == "" {
			books[i].ID = id.MustGenerate("book")
		}
		if books[i].CreatedAt.IsZero() {
			// Spread timestamps so the newest-first order is stable.
			books[i].CreatedAt = now.Add(-time.Duration(i) * time.Minute)
		}
		if books[i].UpdatedAt.IsZero() {
			books[i].UpdatedAt = books[i].CreatedAt
		}
	}
	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	s.books = books
}

// page returns up to limit books after the cursor, filtered by genre id.
// An unknown cursor yields an empty page; the filtered sequence may have
// shifted since the cursor was issued and there is nothing to resume.
func (s *Store) page(genreID, cursor string, limit int) []domain.Book {
	filtered := make([]domain.Book, 0, len(s.books))
	for _, b := range s.books {
		if genreID == "" || b.Genre.ID == genreID {
			filtered = append(filtered, s.resolved(b))
		}
	}

	start := 0
	if cursor != "" {
		start = len(filtered)
		for i := range filtered {
			if filtered[i].ID == cursor {
				start = i + 1
				break
			}
		}
	}

	end := len(filtered)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	if start >= len(filtered) {
		return []domain.Book{}
	}
	return filtered[start:end]
}

// resolved returns a copy of the book with its genre expanded to the full
// record, the shape list and detail responses use.
func (s *Store) resolved(b domain.Book) domain.Book {
	return domain.ResolveGenre(b, s.genres)
}

// indexOf returns the position of a book id, or -1. Callers hold s.mu.
func (s *Store) indexOf(bookID string) int {
	for i := range s.books {
		if s.books[i].ID == bookID {
			return i
		}
	}
	return -1
}

// archive appends an immutable snapshot of the book. Archives accumulate;
// restoring never removes one.
func (s *Store) archive(b domain.Book) domain.Archive {
	a := domain.Archive{
		ID:              id.MustGenerate("archive"),
		BookID:          b.ID,
		Title:           b.Title,
		Description:     b.Description,
		Author:          b.Author,
		Genre:           b.Genre,
		Price:           b.Price,
		Availability:    b.Availability,
		Stock:           b.Stock,
		Publisher:       b.Publisher,
		PublicationYear: b.PublicationYear,
		CreatedAt:       time.Now().UTC(),
	}
	s.archives = append(s.archives, a)
	return a
}
