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

// ListBookstores fetches the publicly visible stores for the homepage.
func (c *Client) ListBookstores(ctx context.Context) ([]domain.Bookstore, error) {
	data, err := c.do(ctx, http.MethodGet, "/bookstores", nil, nil, domainerrors.CodeFetch)
	if err != nil {
		return nil, err
	}
	return decode[[]domain.Bookstore](data, domainerrors.CodeFetch)
}

// GetBookstore fetches a store's detail. limit caps embedded counts on
// the server side; zero omits the parameter.
func (c *Client) GetBookstore(ctx context.Context, storeID string, limit int) (domain.Bookstore, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	data, err := c.do(ctx, http.MethodGet, "/bookstores/"+storeID, query, nil, domainerrors.CodeFetch)
	if err != nil {
		return domain.Bookstore{}, err
	}
	return decode[domain.Bookstore](data, domainerrors.CodeFetch)
}

// UpdateBookstore patches the authenticated owner's store profile.
func (c *Client) UpdateBookstore(ctx context.Context, patch domain.BookstorePatch) (domain.Bookstore, error) {
	data, err := c.do(ctx, http.MethodPatch, "/bookstores", nil, patch, domainerrors.CodeMutation)
	if err != nil {
		return domain.Bookstore{}, err
	}
	return decode[domain.Bookstore](data, domainerrors.CodeMutation)
}

// UploadLogo replaces the owner's store logo via multipart upload.
func (c *Client) UploadLogo(ctx context.Context, filename string, file io.Reader) (domain.Asset, error) {
	data, err := c.upload(ctx, "/bookstores/logo", filename, file)
	if err != nil {
		return domain.Asset{}, err
	}
	return decode[domain.Asset](data, domainerrors.CodeMutation)
}

// DeleteLogo removes the owner's store logo.
func (c *Client) DeleteLogo(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/bookstores/logo", nil, nil, domainerrors.CodeMutation)
	return err
}
