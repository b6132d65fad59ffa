package catalog

import (
	"context"
	"encoding/json/v2"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/errors"
	"github.com/bookmarketapp/bookmarket-client/internal/http/response"
	"github.com/bookmarketapp/bookmarket-client/internal/session"
)

func TestBookFormCoerce(t *testing.T) {
	t.Run("full form", func(t *testing.T) {
		form := BookForm{
			Title:           "Dune",
			Description:     "Desert planet",
			Author:          "Frank Herbert",
			Genre:           domain.ResolvedGenre(domain.Genre{ID: "g1", Name: "Fiction"}),
			Price:           "19.99",
			Availability:    "true",
			Stock:           "12",
			Publisher:       "Chilton",
			PublicationYear: "1965",
		}

		patch, err := form.Coerce()
		require.NoError(t, err)
		assert.Equal(t, domain.BookPatch{
			Title:           "Dune",
			Description:     "Desert planet",
			Author:          "Frank Herbert",
			GenreID:         "g1",
			Price:           19.99,
			Availability:    true,
			Stock:           12,
			Publisher:       "Chilton",
			PublicationYear: 1965,
		}, patch)
	})

	t.Run("availability is a string comparison", func(t *testing.T) {
		for value, want := range map[string]bool{"true": true, "TRUE": true, "false": false, "": false, "yes": false} {
			patch, err := BookForm{Availability: value}.Coerce()
			require.NoError(t, err)
			assert.Equal(t, want, patch.Availability, "availability %q", value)
		}
	})

	t.Run("bare genre id passes through", func(t *testing.T) {
		patch, err := BookForm{Genre: domain.GenreID("g2")}.Coerce()
		require.NoError(t, err)
		assert.Equal(t, "g2", patch.GenreID)
	})

	t.Run("unparseable numerics fail before the wire", func(t *testing.T) {
		_, err := BookForm{Price: "free"}.Coerce()
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrMutation))
		assert.Contains(t, err.Error(), "price")

		_, err = BookForm{Stock: "lots"}.Coerce()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock")

		_, err = BookForm{Stock: "1.5"}.Coerce()
		require.Error(t, err, "stock must be an integer")

		_, err = BookForm{PublicationYear: "MCMLXV"}.Coerce()
		require.Error(t, err)
	})
}

func TestCreatePrepends(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/books", func(w http.ResponseWriter, req *http.Request) {
		var patch domain.BookPatch
		require.NoError(t, json.UnmarshalRead(req.Body, &patch))
		assert.Equal(t, "g2", patch.GenreID, "the genre must travel as a bare id")
		assert.Equal(t, 12.5, patch.Price)

		// Mutation responses carry the genre as a bare id.
		response.Created(w, testBook("b-new", patch.Title, patch.GenreID), nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{resolvedBook("b1", "Dune", testGenres[0])})

	created, err := ctrl.Create(context.Background(), BookForm{
		Title: "Mistborn",
		Genre: domain.GenreID("g2"),
		Price: "12.5",
		Stock: "4",
	})
	require.NoError(t, err)
	assert.Equal(t, "b-new", created.ID)
	assert.Equal(t, "Fantasy", created.Genre.Name(), "the response genre is resolved before caching")

	items := ctrl.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b-new", items[0].ID, "new books appear at the top without a refetch")
	assert.Equal(t, "b1", items[1].ID)
}

func TestCreateFailureLeavesCache(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/books", func(w http.ResponseWriter, req *http.Request) {
		response.BadRequest(w, "title is required", nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{resolvedBook("b1", "Dune", testGenres[0])})

	_, err := ctrl.Create(context.Background(), BookForm{Genre: domain.GenreID("g1")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrMutation))
	assert.Contains(t, err.Error(), "title is required")
	assert.Len(t, ctrl.Items(), 1)
}

func TestUpdateSplicesAndResolves(t *testing.T) {
	created := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	r := chi.NewRouter()
	r.Patch("/books/{bookID}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "b2", chi.URLParam(req, "bookID"))
		var patch domain.BookPatch
		require.NoError(t, json.UnmarshalRead(req.Body, &patch))

		// A patch response with a bare genre id and no cover or createdAt.
		response.Success(w, domain.Book{
			ID:           "b2",
			Title:        patch.Title,
			Genre:        domain.GenreID(patch.GenreID),
			Price:        patch.Price,
			Availability: patch.Availability,
			Stock:        patch.Stock,
			UpdatedAt:    created.Add(24 * time.Hour),
		}, nil)
	})

	cover := &domain.Asset{URL: "https://cdn.example/b2.jpg", PublicID: "covers/b2"}
	cached := resolvedBook("b2", "Piranesi", testGenres[0])
	cached.Cover = cover
	cached.CreatedAt = created

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{resolvedBook("b1", "Dune", testGenres[0]), cached})

	updated, err := ctrl.Update(context.Background(), "b2", BookForm{
		Title:        "Piranesi (revised)",
		Genre:        domain.GenreID("g2"),
		Price:        "9.99",
		Availability: "true",
		Stock:        "2",
	})
	require.NoError(t, err)

	items := ctrl.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "b1", items[0].ID, "updates never reorder the view")
	got := items[1]
	assert.Equal(t, updated, got)
	assert.Equal(t, "Piranesi (revised)", got.Title)
	assert.True(t, got.Genre.Resolved(), "cached entries never hold a bare genre id")
	assert.Equal(t, "Fantasy", got.Genre.Name())
	assert.Equal(t, cover, got.Cover, "fields omitted from the response fall back to the cache")
	assert.Equal(t, created, got.CreatedAt)
}

func TestDeleteRemovesFromCache(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/books/{bookID}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "b1", chi.URLParam(req, "bookID"))
		response.Success(w, map[string]string{"id": "b1"}, nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{
		resolvedBook("b1", "Dune", testGenres[0]),
		resolvedBook("b2", "Piranesi", testGenres[1]),
	})

	require.NoError(t, ctrl.Delete(context.Background(), "b1"))
	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "b2", items[0].ID)
}

func TestRestore(t *testing.T) {
	archive := domain.Archive{
		ID:           "a1",
		BookID:       "b1",
		Title:        "Dune",
		Author:       "Frank Herbert",
		Genre:        domain.ResolvedGenre(testGenres[0]),
		Price:        19.99,
		Availability: true,
		Stock:        5,
	}

	t.Run("reinstates against the original id", func(t *testing.T) {
		r := chi.NewRouter()
		r.Patch("/books/{bookID}", func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, "b1", chi.URLParam(req, "bookID"))
			var patch domain.BookPatch
			require.NoError(t, json.UnmarshalRead(req.Body, &patch))
			assert.Equal(t, "g1", patch.GenreID)
			assert.Equal(t, 19.99, patch.Price)
			response.Success(w, testBook("b1", patch.Title, patch.GenreID), nil)
		})

		ctrl := newTestController(t, r, ownerSession())
		ctrl.seed(testGenres, []domain.Book{resolvedBook("b2", "Piranesi", testGenres[1])})

		restored, err := ctrl.Restore(context.Background(), archive)
		require.NoError(t, err)
		assert.Equal(t, "b1", restored.ID)

		items := ctrl.Items()
		require.Len(t, items, 2)
		assert.Equal(t, "b1", items[0].ID, "a restored book missing from the view is reinstated at the top")
	})

	t.Run("fails visibly when the book id is gone", func(t *testing.T) {
		r := chi.NewRouter()
		r.Patch("/books/{bookID}", func(w http.ResponseWriter, req *http.Request) {
			response.NotFound(w, "book not found", nil)
		})

		ctrl := newTestController(t, r, ownerSession())
		ctrl.seed(testGenres, nil)

		_, err := ctrl.Restore(context.Background(), archive)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "book not found")
		assert.Empty(t, ctrl.Items(), "a failed restore never fabricates a cache entry")
	})
}

func TestGenreSetMutations(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/genres", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		require.NoError(t, json.UnmarshalRead(req.Body, &body))
		response.Created(w, domain.Genre{ID: "g3", Name: body["name"]}, nil)
	})
	r.Delete("/genres/{genreID}", func(w http.ResponseWriter, req *http.Request) {
		response.Success(w, map[string]string{"id": chi.URLParam(req, "genreID")}, nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	cached := resolvedBook("b1", "Dune", testGenres[0])
	ctrl.seed(testGenres, []domain.Book{cached})
	ctx := context.Background()

	genre, err := ctrl.CreateGenre(ctx, "Horror")
	require.NoError(t, err)
	assert.Equal(t, domain.Genre{ID: "g3", Name: "Horror"}, genre)
	assert.Len(t, ctrl.Genres(), 3)

	require.NoError(t, ctrl.DeleteGenre(ctx, "g1"))
	genres := ctrl.Genres()
	require.Len(t, genres, 2)
	for _, g := range genres {
		assert.NotEqual(t, "g1", g.ID)
	}

	// Books keep their denormalized snapshot until their own next update.
	items := ctrl.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Fiction", items[0].Genre.Name())
}

func TestMutationsGated(t *testing.T) {
	var calls atomic.Int32
	counted := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		response.Success(w, nil, nil)
	})

	sessions := map[string]*session.Session{
		"anonymous":   nil,
		"shopper":     {UserID: "u2", Role: session.RoleShopper},
		"other store": {UserID: "u3", Role: session.RoleOwner, BookstoreID: "store-2"},
	}

	for name, sess := range sessions {
		t.Run(name, func(t *testing.T) {
			ctrl := newTestController(t, counted, sess)
			ctrl.seed(testGenres, nil)
			ctx := context.Background()

			_, err := ctrl.Create(ctx, BookForm{})
			assert.True(t, errors.Is(err, errors.ErrForbidden))
			_, err = ctrl.Update(ctx, "b1", BookForm{})
			assert.True(t, errors.Is(err, errors.ErrForbidden))
			assert.True(t, errors.Is(ctrl.Delete(ctx, "b1"), errors.ErrForbidden))
			_, err = ctrl.Restore(ctx, domain.Archive{BookID: "b1"})
			assert.True(t, errors.Is(err, errors.ErrForbidden))
			_, err = ctrl.Archives(ctx, "b1")
			assert.True(t, errors.Is(err, errors.ErrForbidden))
			_, err = ctrl.CreateGenre(ctx, "Horror")
			assert.True(t, errors.Is(err, errors.ErrForbidden))
			assert.True(t, errors.Is(ctrl.DeleteGenre(ctx, "g1"), errors.ErrForbidden))
		})
	}

	assert.Equal(t, int32(0), calls.Load(), "gated mutations must not reach the network")
}

func TestArchivesAreTransient(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/books/{bookID}/archives", func(w http.ResponseWriter, req *http.Request) {
		response.Success(w, []domain.Archive{{ID: "a1", BookID: "b1", Title: "Dune"}}, nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{resolvedBook("b2", "Piranesi", testGenres[1])})

	archives, err := ctrl.Archives(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, archives, 1)
	assert.Equal(t, "a1", archives[0].ID)
	assert.Len(t, ctrl.Items(), 1, "archives never leak into the catalog cache")
}
