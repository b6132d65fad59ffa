package catalog

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/errors"
	"github.com/bookmarketapp/bookmarket-client/internal/http/response"
)

func TestUploadCover(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/books/{bookID}/cover", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "b1", chi.URLParam(req, "bookID"))

		file, header, err := req.FormFile("file")
		require.NoError(t, err, "uploads use a single multipart part named file")
		defer file.Close()
		assert.Equal(t, "cover.jpg", header.Filename)
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "jpeg bytes", string(data))

		response.Created(w, domain.Asset{URL: "https://cdn.example/b1.jpg", PublicID: "covers/b1"}, nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{resolvedBook("b1", "Dune", testGenres[0])})
	before := ctrl.AssetVersion()

	asset, err := ctrl.UploadCover(context.Background(), "b1", "cover.jpg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "covers/b1", asset.PublicID)

	items := ctrl.Items()
	require.NotNil(t, items[0].Cover)
	assert.Equal(t, asset, *items[0].Cover)
	assert.Greater(t, ctrl.AssetVersion(), before, "every successful upload bumps the version token")
	assert.False(t, ctrl.Uploading("b1"))
}

func TestUploadCoverFailure(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/books/{bookID}/cover", func(w http.ResponseWriter, req *http.Request) {
		response.BadRequest(w, "unsupported image type", nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{resolvedBook("b1", "Dune", testGenres[0])})
	before := ctrl.AssetVersion()

	_, err := ctrl.UploadCover(context.Background(), "b1", "cover.bmp", strings.NewReader("bmp bytes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported image type")

	assert.Nil(t, ctrl.Items()[0].Cover, "a failed upload leaves the cache untouched")
	assert.Equal(t, before, ctrl.AssetVersion())
	assert.False(t, ctrl.Uploading("b1"))
}

func TestTwoPhaseCoverDelete(t *testing.T) {
	var deletes atomic.Int32
	r := chi.NewRouter()
	r.Delete("/books/{bookID}/cover", func(w http.ResponseWriter, req *http.Request) {
		deletes.Add(1)
		assert.Equal(t, "b1", chi.URLParam(req, "bookID"))
		response.Success(w, nil, nil)
	})

	cover := &domain.Asset{URL: "https://cdn.example/b1.jpg"}
	cached := resolvedBook("b1", "Dune", testGenres[0])
	cached.Cover = cover

	ctrl := newTestController(t, r, ownerSession())
	ctrl.seed(testGenres, []domain.Book{cached})
	ctx := context.Background()

	// Arming sends nothing.
	ctrl.RequestDeleteCover("b1")
	target, bookID, ok := ctrl.PendingDelete()
	require.True(t, ok)
	assert.Equal(t, TargetCover, target)
	assert.Equal(t, "b1", bookID)
	assert.Equal(t, int32(0), deletes.Load())

	// Cancelling disarms without sending.
	ctrl.CancelDelete()
	_, _, ok = ctrl.PendingDelete()
	assert.False(t, ok)
	err := ctrl.ConfirmDelete(ctx)
	require.Error(t, err, "confirming with nothing armed is an error")
	assert.Equal(t, int32(0), deletes.Load())
	assert.NotNil(t, ctrl.Items()[0].Cover)

	// Arm again and confirm.
	ctrl.RequestDeleteCover("b1")
	require.NoError(t, ctrl.ConfirmDelete(ctx))
	assert.Equal(t, int32(1), deletes.Load())
	assert.Nil(t, ctrl.Items()[0].Cover)
	_, _, ok = ctrl.PendingDelete()
	assert.False(t, ok, "confirmation consumes the armed deletion")
}

func TestTwoPhaseLogoDelete(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/bookstores/logo", func(w http.ResponseWriter, req *http.Request) {
		response.Success(w, nil, nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.mu.Lock()
	ctrl.bookstore = &domain.Bookstore{ID: testStoreID, Logo: &domain.Asset{URL: "https://cdn.example/logo.png"}}
	ctrl.mu.Unlock()

	ctrl.RequestDeleteLogo()
	require.NoError(t, ctrl.ConfirmDelete(context.Background()))
	assert.Nil(t, ctrl.Bookstore().Logo)
}

func TestUploadLogo(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/bookstores/logo", func(w http.ResponseWriter, req *http.Request) {
		_, header, err := req.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "logo.png", header.Filename)
		response.Created(w, domain.Asset{URL: "https://cdn.example/logo-v2.png", PublicID: "logos/store-1"}, nil)
	})

	ctrl := newTestController(t, r, ownerSession())
	ctrl.mu.Lock()
	ctrl.bookstore = &domain.Bookstore{ID: testStoreID}
	ctrl.mu.Unlock()
	before := ctrl.AssetVersion()

	asset, err := ctrl.UploadLogo(context.Background(), "logo.png", strings.NewReader("png bytes"))
	require.NoError(t, err)

	store := ctrl.Bookstore()
	require.NotNil(t, store.Logo)
	assert.Equal(t, asset, *store.Logo)
	assert.Greater(t, ctrl.AssetVersion(), before)
}

func TestAssetOpsGated(t *testing.T) {
	var calls atomic.Int32
	counted := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		calls.Add(1)
		response.Success(w, nil, nil)
	})

	ctrl := newTestController(t, counted, nil)
	ctx := context.Background()

	_, err := ctrl.UploadCover(ctx, "b1", "cover.jpg", strings.NewReader("x"))
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	_, err = ctrl.UploadLogo(ctx, "logo.png", strings.NewReader("x"))
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	ctrl.RequestDeleteCover("b1")
	assert.True(t, errors.Is(ctrl.ConfirmDelete(ctx), errors.ErrForbidden))
	_, err = ctrl.UpdateProfile(ctx, domain.BookstorePatch{})
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	assert.Equal(t, int32(0), calls.Load())
}

func TestUpdateProfile(t *testing.T) {
	r := chi.NewRouter()
	r.Patch("/bookstores", func(w http.ResponseWriter, req *http.Request) {
		// The profile patch response omits the logo subdocument.
		response.Success(w, domain.Bookstore{
			ID:     testStoreID,
			Name:   "Paper Trail Books",
			Status: domain.StatusActive,
		}, nil)
	})

	logo := &domain.Asset{URL: "https://cdn.example/logo.png"}
	ctrl := newTestController(t, r, ownerSession())
	ctrl.mu.Lock()
	ctrl.bookstore = &domain.Bookstore{ID: testStoreID, Name: "Paper Trail", Logo: logo}
	ctrl.mu.Unlock()

	store, err := ctrl.UpdateProfile(context.Background(), domain.BookstorePatch{Name: "Paper Trail Books"})
	require.NoError(t, err)
	assert.Equal(t, "Paper Trail Books", store.Name)

	cached := ctrl.Bookstore()
	assert.Equal(t, "Paper Trail Books", cached.Name)
	assert.Equal(t, logo, cached.Logo, "an omitted logo falls back to the cached asset")
}

func TestCacheBustedURL(t *testing.T) {
	ctrl := New(nil, nil, testLogger(), testStoreID, 5)

	assert.Equal(t, "", ctrl.CacheBustedURL(nil))
	assert.Equal(t, "", ctrl.CacheBustedURL(&domain.Asset{}))

	asset := &domain.Asset{URL: "https://cdn.example/b1.jpg"}
	assert.Equal(t, "https://cdn.example/b1.jpg?v=0", ctrl.CacheBustedURL(asset))

	ctrl.mu.Lock()
	ctrl.assetVersion = 7
	ctrl.mu.Unlock()
	assert.Equal(t, "https://cdn.example/b1.jpg?v=7", ctrl.CacheBustedURL(asset))

	signed := &domain.Asset{URL: "https://cdn.example/b1.jpg?sig=abc"}
	assert.Equal(t, "https://cdn.example/b1.jpg?sig=abc&v=7", ctrl.CacheBustedURL(signed))
}
