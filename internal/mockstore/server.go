package mockstore

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookmarketapp/bookmarket-client/internal/http/response"
	"github.com/bookmarketapp/bookmarket-client/internal/validation"
)

// The hosted service derives the acting owner from its session cookie.
// The mock trusts a header or a cookie carrying the store id directly, so
// tests and local tools can switch identities without an auth flow.
const (
	ownerHeader = "X-Store-Owner"
	ownerCookie = "bookmarket_owner"
)

// OwnerCookie builds the session cookie the mock accepts for owner
// mutations.
func OwnerCookie(storeID string) *http.Cookie {
	return &http.Cookie{Name: ownerCookie, Value: storeID, Path: "/"}
}

// Server serves the mock resource API over one Store.
type Server struct {
	store     *Store
	validator *validation.Validator
	router    *chi.Mux
	logger    *slog.Logger
}

// NewServer creates a mock API server with all routes configured.
func NewServer(store *Store, logger *slog.Logger) *Server {
	s := &Server{
		store:     store,
		validator: validation.New(),
		router:    chi.NewRouter(),
		logger:    logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", ownerHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/bookstores", s.handleListBookstores)
		r.Get("/bookstores/{storeID}", s.handleGetBookstore)
		r.Get("/bookstores/{storeID}/genres", s.handleListGenres)
		r.Get("/bookstores/{storeID}/books", s.handleListBooks)

		r.Get("/books/{bookID}", s.handleGetBook)
		r.Get("/books/{bookID}/archives", s.handleListArchives)

		// Owner-only mutations.
		r.Group(func(r chi.Router) {
			r.Use(s.requireOwner)

			r.Post("/books", s.handleCreateBook)
			r.Patch("/books/{bookID}", s.handleUpdateBook)
			r.Delete("/books/{bookID}", s.handleDeleteBook)
			r.Post("/books/{bookID}/cover", s.handleUploadCover)
			r.Delete("/books/{bookID}/cover", s.handleDeleteCover)

			r.Post("/genres", s.handleCreateGenre)
			r.Delete("/genres/{genreID}", s.handleDeleteGenre)

			r.Patch("/bookstores", s.handleUpdateBookstore)
			r.Post("/bookstores/logo", s.handleUploadLogo)
			r.Delete("/bookstores/logo", s.handleDeleteLogo)
		})
	})
}

// requireOwner rejects mutations unless the request acts as the owner of
// the served store.
func (s *Server) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.store.mu.Lock()
		storeID := s.store.bookstore.ID
		s.store.mu.Unlock()

		acting := r.Header.Get(ownerHeader)
		if acting == "" {
			if c, err := r.Cookie(ownerCookie); err == nil {
				acting = c.Value
			}
		}
		if acting != storeID {
			response.Forbidden(w, "only the bookstore owner can manage this catalog", s.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}
