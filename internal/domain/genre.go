package domain

import (
	"encoding/json/v2"
	"fmt"
)

// Genre represents a category for classifying books.
// Genre names are unique per bookstore; the server enforces this.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AllGenres is the synthetic "All" filter selection. It has no ID; the
// books query omits the genre parameter entirely when it is active.
var AllGenres = Genre{Name: "All"}

// GenreRef is the denormalized genre field carried on a Book. The server
// sends either a bare genre id (mutation responses) or a fully resolved
// genre object (list/detail responses), so this is a tagged union.
//
// Render paths must never touch Name on an unresolved ref; call
// Resolve first.
type GenreRef struct {
	// ID is always set once the ref holds anything.
	ID string
	// Genre is non-nil only when the ref is resolved.
	Genre *Genre
}

// GenreID creates an unresolved reference from a bare id.
func GenreID(id string) GenreRef {
	return GenreRef{ID: id}
}

// ResolvedGenre creates a resolved reference.
func ResolvedGenre(g Genre) GenreRef {
	return GenreRef{ID: g.ID, Genre: &g}
}

// Resolved reports whether the ref carries the full genre record.
func (r GenreRef) Resolved() bool {
	return r.Genre != nil
}

// Name returns the genre display name, or the empty string when the ref
// is unresolved.
func (r GenreRef) Name() string {
	if r.Genre == nil {
		return ""
	}
	return r.Genre.Name
}

// Resolve reconciles the ref against a known genre set. Unresolved refs
// whose id is found become resolved; already-resolved refs keep their
// snapshot (a deleted genre stays visible on cached books until the book
// itself is next updated). Reports whether the ref is resolved afterwards.
func (r *GenreRef) Resolve(genres []Genre) bool {
	if r.Genre != nil {
		return true
	}
	for i := range genres {
		if genres[i].ID == r.ID {
			g := genres[i]
			r.Genre = &g
			return true
		}
	}
	return false
}

// MarshalJSON emits the resolved object when available, otherwise the
// bare id, mirroring the wire forms the server itself uses.
func (r GenreRef) MarshalJSON() ([]byte, error) {
	if r.Genre != nil {
		return json.Marshal(r.Genre)
	}
	return json.Marshal(r.ID)
}

// UnmarshalJSON accepts either wire form.
func (r *GenreRef) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty genre reference")
	}
	switch data[0] {
	case '"':
		r.Genre = nil
		return json.Unmarshal(data, &r.ID)
	case 'n': // null: dangling reference after a genre deletion
		r.ID = ""
		r.Genre = nil
		return nil
	default:
		var g Genre
		if err := json.Unmarshal(data, &g); err != nil {
			return fmt.Errorf("unmarshal genre reference: %w", err)
		}
		r.ID = g.ID
		r.Genre = &g
		return nil
	}
}
