package remote

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	domainerrors "github.com/bookmarketapp/bookmarket-client/internal/errors"
)

// BooksQuery scopes a catalog page fetch.
type BooksQuery struct {
	GenreID        string // empty for "All"
	Limit          int
	LastDocumentID string // cursor: id of the last fetched book, empty for page one
}

// ListGenres fetches the genre set of a bookstore.
func (c *Client) ListGenres(ctx context.Context, storeID string) ([]domain.Genre, error) {
	data, err := c.do(ctx, http.MethodGet, "/bookstores/"+storeID+"/genres", nil, nil, domainerrors.CodeFetch)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Genre](data, domainerrors.CodeFetch)
}

// ListBooks fetches one page of a bookstore's catalog. Pagination is
// cursor-based via the last document id, so rows cannot shift the way
// offset pagination allows when other actors insert or delete.
func (c *Client) ListBooks(ctx context.Context, storeID string, q BooksQuery) ([]domain.Book, error) {
	query := url.Values{}
	if q.GenreID != "" {
		query.Set("genre", q.GenreID)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.LastDocumentID != "" {
		query.Set("lastDocumentId", q.LastDocumentID)
	}

	data, err := c.do(ctx, http.MethodGet, "/bookstores/"+storeID+"/books", query, nil, domainerrors.CodeFetch)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Book](data, domainerrors.CodeFetch)
}

// GetBook fetches a single book by id.
func (c *Client) GetBook(ctx context.Context, bookID string) (domain.Book, error) {
	data, err := c.do(ctx, http.MethodGet, "/books/"+bookID, nil, nil, domainerrors.CodeFetch)
	if err != nil {
		return domain.Book{}, err
	}
	return decode[domain.Book](data, domainerrors.CodeFetch)
}

// CreateBook submits a new book and returns the server-assigned record.
func (c *Client) CreateBook(ctx context.Context, patch domain.BookPatch) (domain.Book, error) {
	data, err := c.do(ctx, http.MethodPost, "/books", nil, patch, domainerrors.CodeMutation)
	if err != nil {
		return domain.Book{}, err
	}
	return decode[domain.Book](data, domainerrors.CodeMutation)
}

// UpdateBook patches an existing book. The response may carry the genre
// as a bare id; callers re-resolve it before display.
func (c *Client) UpdateBook(ctx context.Context, bookID string, patch domain.BookPatch) (domain.Book, error) {
	data, err := c.do(ctx, http.MethodPatch, "/books/"+bookID, nil, patch, domainerrors.CodeMutation)
	if err != nil {
		return domain.Book{}, err
	}
	return decode[domain.Book](data, domainerrors.CodeMutation)
}

// DeleteBook removes a book. The server writes an archive snapshot as a
// side effect; the client only observes it through ListArchives.
func (c *Client) DeleteBook(ctx context.Context, bookID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/books/"+bookID, nil, nil, domainerrors.CodeMutation)
	return err
}

// ListArchives fetches the archived snapshots referencing a book id.
func (c *Client) ListArchives(ctx context.Context, bookID string) ([]domain.Archive, error) {
	data, err := c.do(ctx, http.MethodGet, "/books/"+bookID+"/archives", nil, nil, domainerrors.CodeFetch)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Archive](data, domainerrors.CodeFetch)
}

// CreateGenre adds a genre to the owner's store.
func (c *Client) CreateGenre(ctx context.Context, name string) (domain.Genre, error) {
	body := map[string]string{"name": name}
	data, err := c.do(ctx, http.MethodPost, "/genres", nil, body, domainerrors.CodeMutation)
	if err != nil {
		return domain.Genre{}, err
	}
	return decode[domain.Genre](data, domainerrors.CodeMutation)
}

// DeleteGenre removes a genre. Books referencing it keep their
// denormalized snapshot until their own next update.
func (c *Client) DeleteGenre(ctx context.Context, genreID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/genres/"+genreID, nil, nil, domainerrors.CodeMutation)
	return err
}

// UploadCover replaces a book's cover image via multipart upload.
func (c *Client) UploadCover(ctx context.Context, bookID, filename string, file io.Reader) (domain.Asset, error) {
	data, err := c.upload(ctx, "/books/"+bookID+"/cover", filename, file)
	if err != nil {
		return domain.Asset{}, err
	}
	return decode[domain.Asset](data, domainerrors.CodeMutation)
}

// DeleteCover removes a book's cover image.
func (c *Client) DeleteCover(ctx context.Context, bookID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/books/"+bookID+"/cover", nil, nil, domainerrors.CodeMutation)
	return err
}
