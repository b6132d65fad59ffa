package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/bookmarketapp/bookmarket-client/internal/config"
	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/logger"
	"github.com/bookmarketapp/bookmarket-client/internal/mockstore"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

// ProvideMockStore provides the seeded in-memory store behind the mock
// server. The seed covers both genres and enough books to paginate.
func ProvideMockStore(i do.Injector) (*mockstore.Store, error) {
	store := mockstore.NewStore(domain.Bookstore{
		ID:          "store-demo",
		Name:        "Paper Trail Books",
		Description: "A small demo storefront served from memory.",
		Address:     "1 Example Street",
		Status:      domain.StatusActive,
	})

	genres := []domain.Genre{
		{ID: "genre-fiction", Name: "Fiction"},
		{ID: "genre-fantasy", Name: "Fantasy"},
		{ID: "genre-scifi", Name: "Science Fiction"},
	}
	books := []domain.Book{
		{Title: "Dune", Author: "Frank Herbert", Genre: domain.GenreID("genre-scifi"), Price: 19.99, Availability: true, Stock: 4, PublicationYear: 1965},
		{Title: "Piranesi", Author: "Susanna Clarke", Genre: domain.GenreID("genre-fantasy"), Price: 14.50, Availability: true, Stock: 2, PublicationYear: 2020},
		{Title: "Mistborn", Author: "Brandon Sanderson", Genre: domain.GenreID("genre-fantasy"), Price: 12.00, Availability: true, Stock: 0, PublicationYear: 2006},
		{Title: "Hyperion", Author: "Dan Simmons", Genre: domain.GenreID("genre-scifi"), Price: 11.25, Availability: false, Stock: 3, PublicationYear: 1989},
		{Title: "Blindsight", Author: "Peter Watts", Genre: domain.GenreID("genre-scifi"), Price: 13.75, Availability: true, Stock: 6, PublicationYear: 2006},
		{Title: "The Dispossessed", Author: "Ursula K. Le Guin", Genre: domain.GenreID("genre-scifi"), Price: 10.99, Availability: true, Stock: 1, PublicationYear: 1974},
		{Title: "Uprooted", Author: "Naomi Novik", Genre: domain.GenreID("genre-fantasy"), Price: 12.50, Availability: true, Stock: 5, PublicationYear: 2015},
		{Title: "Solaris", Author: "Stanisław Lem", Genre: domain.GenreID("genre-scifi"), Price: 9.99, Availability: true, Stock: 2, PublicationYear: 1961},
	}
	store.Seed(genres, books)

	return store, nil
}

// MockServerHandle owns the mock API's HTTP server lifecycle.
type MockServerHandle struct {
	Server *http.Server
	logger *logger.Logger
}

// ProvideMockServer provides the mock API server bound to the configured
// address.
func ProvideMockServer(i do.Injector) (*MockServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	store := do.MustInvoke[*mockstore.Store](i)

	return &MockServerHandle{
		Server: &http.Server{
			Addr:              cfg.Mock.Addr,
			Handler:           mockstore.NewServer(store, log.Logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}, nil
}

// Shutdown drains in-flight requests before stopping the server.
func (h *MockServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	h.logger.Info("shutting down mock store server")
	return h.Server.Shutdown(ctx)
}
