// Package domain contains the core entities of the Bookmarket storefront:
// bookstores, books, genres, archives, and their invariants.
package domain

import "time"

// Book represents a book in a bookstore's catalog. The genre field is
// denormalized onto the record for display; keeping it consistent with
// the live genre set is the mutation engine's job.
type Book struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Author          string    `json:"author"`
	Genre           GenreRef  `json:"genre"`
	Price           float64   `json:"price"`
	Availability    bool      `json:"availability"`
	Stock           int       `json:"stock"`
	Publisher       string    `json:"publisher,omitempty"`
	PublicationYear int       `json:"publicationYear,omitempty"`
	Cover           *Asset    `json:"cover"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Purchasability is the tri-state every screen uses to pick the action
// it renders for a book. Unavailability and empty stock are independent
// conditions and are presented differently.
type Purchasability int

const (
	// Available means the book can be added to a cart.
	Available Purchasability = iota
	// Unavailable means the owner has withdrawn the book from sale,
	// regardless of stock.
	Unavailable
	// OutOfStock means the book is for sale but the stock is empty.
	OutOfStock
)

// String returns the storefront label for the state.
func (p Purchasability) String() string {
	switch p {
	case Unavailable:
		return "Not Available for Purchase"
	case OutOfStock:
		return "Out of Stock"
	default:
		return "Available"
	}
}

// Purchasable classifies a book for presentation. Availability is checked
// first: an unavailable book reports Unavailable even with zero stock.
func (b *Book) Purchasable() Purchasability {
	switch {
	case !b.Availability:
		return Unavailable
	case b.Stock == 0:
		return OutOfStock
	default:
		return Available
	}
}

// ResolveGenre returns a copy of the book with its genre reconciled from
// the known genre set when the current value is only an identifier.
func ResolveGenre(b Book, genres []Genre) Book {
	b.Genre.Resolve(genres)
	return b
}
