package domain

import (
	"encoding/json/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchasable(t *testing.T) {
	tests := []struct {
		name         string
		availability bool
		stock        int
		want         Purchasability
	}{
		{"available with stock", true, 3, Available},
		{"out of stock", true, 0, OutOfStock},
		{"unavailable with stock", false, 3, Unavailable},
		{"unavailable overrides empty stock", false, 0, Unavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Book{Availability: tt.availability, Stock: tt.stock}
			assert.Equal(t, tt.want, b.Purchasable())
		})
	}
}

func TestPurchasability_String(t *testing.T) {
	assert.Equal(t, "Available", Available.String())
	assert.Equal(t, "Out of Stock", OutOfStock.String())
	assert.Equal(t, "Not Available for Purchase", Unavailable.String())
}

func TestResolveGenre(t *testing.T) {
	genres := []Genre{{ID: "genre-1", Name: "Fantasy"}}
	book := Book{ID: "book-1", Genre: GenreID("genre-1")}

	resolved := ResolveGenre(book, genres)
	assert.Equal(t, "Fantasy", resolved.Genre.Name())
	// The input book is untouched.
	assert.False(t, book.Genre.Resolved())
}

func TestBook_UnmarshalListResponse(t *testing.T) {
	payload := `{
		"id": "book-1",
		"title": "The Left Hand of Darkness",
		"author": "Ursula K. Le Guin",
		"genre": {"id": "genre-1", "name": "Science Fiction"},
		"price": 12.5,
		"availability": true,
		"stock": 4,
		"cover": {"url": "https://img.example/covers/book-1.jpg"},
		"createdAt": "2024-03-01T10:00:00Z",
		"updatedAt": "2024-03-02T09:30:00Z"
	}`

	var b Book
	require.NoError(t, json.Unmarshal([]byte(payload), &b))

	assert.Equal(t, "book-1", b.ID)
	assert.True(t, b.Genre.Resolved())
	assert.Equal(t, "Science Fiction", b.Genre.Name())
	require.NotNil(t, b.Cover)
	assert.Equal(t, "https://img.example/covers/book-1.jpg", b.Cover.URL)
}

func TestBook_UnmarshalPatchResponse(t *testing.T) {
	// PATCH responses carry only the genre id.
	payload := `{"id":"book-1","title":"Updated","genre":"genre-1","price":9.99,"availability":true,"stock":2,"cover":null}`

	var b Book
	require.NoError(t, json.Unmarshal([]byte(payload), &b))

	assert.Equal(t, "genre-1", b.Genre.ID)
	assert.False(t, b.Genre.Resolved())
	assert.Nil(t, b.Cover)
}

func TestArchive_RestorePatch(t *testing.T) {
	a := Archive{
		ID:           "archive-1",
		BookID:       "book-1",
		Title:        "First Edition",
		Author:       "Someone",
		Genre:        ResolvedGenre(Genre{ID: "genre-1", Name: "Fantasy"}),
		Price:        20,
		Availability: true,
		Stock:        1,
	}

	patch := a.RestorePatch()
	assert.Equal(t, "First Edition", patch.Title)
	assert.Equal(t, "genre-1", patch.GenreID, "restore submits the bare genre id")
	assert.Equal(t, 20.0, patch.Price)
}

func TestBookstore_Public(t *testing.T) {
	assert.True(t, (&Bookstore{Status: StatusActive}).Public())
	assert.False(t, (&Bookstore{Status: StatusPending}).Public())
	assert.False(t, (&Bookstore{Status: StatusSuspended}).Public())
}
