package mockstore

import (
	"encoding/json/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bookmarketapp/bookmarket-client/internal/domain"
	"github.com/bookmarketapp/bookmarket-client/internal/http/response"
	"github.com/bookmarketapp/bookmarket-client/internal/id"
)

const defaultPageSize = 10

// bookRequest is the coerced wire payload for create and update. Numeric
// and boolean fields arrive already typed; the genre is a bare id.
type bookRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description" validate:"max=2000"`
	Author          string  `json:"author" validate:"required,max=200"`
	Genre           string  `json:"genre" validate:"required"`
	Price           float64 `json:"price" validate:"gte=0"`
	Availability    bool    `json:"availability"`
	Stock           int     `json:"stock" validate:"gte=0"`
	Publisher       string  `json:"publisher,omitempty" validate:"max=200"`
	PublicationYear int     `json:"publicationYear,omitempty" validate:"omitempty,gte=0,lte=9999"`
}

type genreRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type bookstoreRequest struct {
	Name         string             `json:"name" validate:"required,max=200"`
	Description  string             `json:"description" validate:"max=2000"`
	Phone        string             `json:"phone" validate:"max=50"`
	Email        string             `json:"email,omitempty" validate:"omitempty,email"`
	Address      string             `json:"address" validate:"max=500"`
	ShippingRate float64            `json:"shippingRate" validate:"gte=0"`
	SocialMedia  domain.SocialMedia `json:"socialMedia"`
}

func (s *Server) handleListBookstores(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	stores := []domain.Bookstore{}
	if s.store.bookstore.Public() {
		stores = append(stores, s.store.bookstore)
	}
	response.Success(w, stores, s.logger)
}

func (s *Server) handleGetBookstore(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if chi.URLParam(r, "storeID") != s.store.bookstore.ID {
		response.NotFound(w, "bookstore not found", s.logger)
		return
	}
	response.Success(w, s.store.bookstore, s.logger)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if chi.URLParam(r, "storeID") != s.store.bookstore.ID {
		response.NotFound(w, "bookstore not found", s.logger)
		return
	}
	genres := s.store.genres
	if genres == nil {
		genres = []domain.Genre{}
	}
	response.Success(w, genres, s.logger)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if chi.URLParam(r, "storeID") != s.store.bookstore.ID {
		response.NotFound(w, "bookstore not found", s.logger)
		return
	}

	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, "limit must be a positive integer", s.logger)
			return
		}
		limit = parsed
	}

	page := s.store.page(
		r.URL.Query().Get("genre"),
		r.URL.Query().Get("lastDocumentId"),
		limit,
	)
	response.Success(w, page, s.logger)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := s.store.indexOf(chi.URLParam(r, "bookID"))
	if i < 0 {
		response.NotFound(w, "book not found", s.logger)
		return
	}
	response.Success(w, s.store.resolved(s.store.books[i]), s.logger)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if !s.genreExists(req.Genre) {
		response.BadRequest(w, "genre does not exist", s.logger)
		return
	}

	now := time.Now().UTC()
	book := domain.Book{
		ID:              id.MustGenerate("book"),
		Title:           req.Title,
		Description:     req.Description,
		Author:          req.Author,
		Genre:           domain.GenreID(req.Genre),
		Price:           req.Price,
		Availability:    req.Availability,
		Stock:           req.Stock,
		Publisher:       req.Publisher,
		PublicationYear: req.PublicationYear,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.store.books = append([]domain.Book{book}, s.store.books...)

	// Mutation responses carry the genre as a bare id.
	response.Created(w, book, s.logger)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	var req bookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := s.store.indexOf(chi.URLParam(r, "bookID"))
	if i < 0 {
		response.NotFound(w, "book not found", s.logger)
		return
	}
	if !s.genreExists(req.Genre) {
		response.BadRequest(w, "genre does not exist", s.logger)
		return
	}

	// The overwritten state is archived before the update lands, so every
	// prior version of the book stays restorable.
	s.store.archive(s.store.resolved(s.store.books[i]))

	b := &s.store.books[i]
	b.Title = req.Title
	b.Description = req.Description
	b.Author = req.Author
	b.Genre = domain.GenreID(req.Genre)
	b.Price = req.Price
	b.Availability = req.Availability
	b.Stock = req.Stock
	b.Publisher = req.Publisher
	b.PublicationYear = req.PublicationYear
	b.UpdatedAt = time.Now().UTC()

	// Patch responses omit the cover and creation time; clients keep their
	// cached values for both.
	resp := *b
	resp.Cover = nil
	resp.CreatedAt = time.Time{}
	response.Success(w, resp, s.logger)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bookID := chi.URLParam(r, "bookID")
	i := s.store.indexOf(bookID)
	if i < 0 {
		response.NotFound(w, "book not found", s.logger)
		return
	}

	s.store.archive(s.store.resolved(s.store.books[i]))
	s.store.books = append(s.store.books[:i], s.store.books[i+1:]...)
	response.Success(w, map[string]string{"id": bookID}, s.logger)
}

func (s *Server) handleListArchives(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bookID := chi.URLParam(r, "bookID")
	archives := []domain.Archive{}
	for _, a := range s.store.archives {
		if a.BookID == bookID {
			archives = append(archives, a)
		}
	}
	response.Success(w, archives, s.logger)
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	var req genreRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, g := range s.store.genres {
		if g.Name == req.Name {
			response.Conflict(w, "genre already exists", s.logger)
			return
		}
	}

	genre := domain.Genre{ID: id.MustGenerate("genre"), Name: req.Name}
	s.store.genres = append(s.store.genres, genre)
	response.Created(w, genre, s.logger)
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	genreID := chi.URLParam(r, "genreID")
	for i, g := range s.store.genres {
		if g.ID == genreID {
			// Books keep their denormalized genre; only the set shrinks.
			s.store.genres = append(s.store.genres[:i], s.store.genres[i+1:]...)
			response.Success(w, map[string]string{"id": genreID}, s.logger)
			return
		}
	}
	response.NotFound(w, "genre not found", s.logger)
}

func (s *Server) handleUploadCover(w http.ResponseWriter, r *http.Request) {
	asset, ok := s.receiveAsset(w, r, "covers")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := s.store.indexOf(chi.URLParam(r, "bookID"))
	if i < 0 {
		response.NotFound(w, "book not found", s.logger)
		return
	}
	s.store.books[i].Cover = &asset
	s.store.books[i].UpdatedAt = time.Now().UTC()
	response.Created(w, asset, s.logger)
}

func (s *Server) handleDeleteCover(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	i := s.store.indexOf(chi.URLParam(r, "bookID"))
	if i < 0 {
		response.NotFound(w, "book not found", s.logger)
		return
	}
	s.store.books[i].Cover = nil
	response.Success(w, nil, s.logger)
}

func (s *Server) handleUpdateBookstore(w http.ResponseWriter, r *http.Request) {
	var req bookstoreRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}
	if err := s.validator.Validate(req); err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	bs := &s.store.bookstore
	bs.Name = req.Name
	bs.Description = req.Description
	bs.Phone = req.Phone
	bs.Email = req.Email
	bs.Address = req.Address
	bs.ShippingRate = req.ShippingRate
	bs.SocialMedia = req.SocialMedia

	// Profile patch responses omit the logo subdocument.
	resp := *bs
	resp.Logo = nil
	response.Success(w, resp, s.logger)
}

func (s *Server) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	asset, ok := s.receiveAsset(w, r, "logos")
	if !ok {
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.bookstore.Logo = &asset
	response.Created(w, asset, s.logger)
}

func (s *Server) handleDeleteLogo(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	s.store.bookstore.Logo = nil
	response.Success(w, nil, s.logger)
}

// receiveAsset reads the single multipart part named "file" and mints an
// asset record for it. The mock never persists image bytes; the URL is
// synthetic but unique per upload, so cache-busting behaves like the
// hosted service.
func (s *Server) receiveAsset(w http.ResponseWriter, r *http.Request, kind string) (domain.Asset, bool) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "expected multipart form data", s.logger)
		return domain.Asset{}, false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required", s.logger)
		return domain.Asset{}, false
	}
	file.Close()

	publicID := id.MustGenerate(kind)
	return domain.Asset{
		URL:      "https://assets.bookmarket.test/" + kind + "/" + publicID,
		PublicID: publicID,
	}, true
}

// genreExists reports membership in the genre set. Callers hold the
// store mutex.
func (s *Server) genreExists(genreID string) bool {
	for _, g := range s.store.genres {
		if g.ID == genreID {
			return true
		}
	}
	return false
}
