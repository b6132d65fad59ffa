package domain

import "time"

// Archive is an immutable snapshot of a book's fields taken by the server
// when the book was deleted or overwritten. Many archives may reference
// one book id, including ids with no live book left. Archives are
// append-only; restoring one does not delete it.
type Archive struct {
	ID              string    `json:"id"`
	BookID          string    `json:"book"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Author          string    `json:"author"`
	Genre           GenreRef  `json:"genre"`
	Price           float64   `json:"price"`
	Availability    bool      `json:"availability"`
	Stock           int       `json:"stock"`
	Publisher       string    `json:"publisher,omitempty"`
	PublicationYear int       `json:"publicationYear,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// RestorePatch builds the update payload that reinstates this snapshot.
// A restore is an update against the original book id, never a create: if
// that id is gone server-side the restore must fail visibly rather than
// quietly produce a duplicate.
func (a *Archive) RestorePatch() BookPatch {
	return BookPatch{
		Title:           a.Title,
		Description:     a.Description,
		Author:          a.Author,
		GenreID:         a.Genre.ID,
		Price:           a.Price,
		Availability:    a.Availability,
		Stock:           a.Stock,
		Publisher:       a.Publisher,
		PublicationYear: a.PublicationYear,
	}
}
