package domain

// Asset is an uploaded image (a book cover or a bookstore logo) stored by
// the remote asset backend. It is owned by exactly one parent; replacing
// or deleting it is always a full replace, never a partial patch.
type Asset struct {
	URL string `json:"url"`
	// PublicID is opaque storage metadata the client round-trips untouched.
	PublicID string `json:"publicId,omitempty"`
}
