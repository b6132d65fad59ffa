package domain

// BookPatch is the coerced payload submitted on create, update, and
// restore. The genre travels as a bare identifier even when the form held
// a resolved genre object; numeric and boolean fields are already coerced
// from their form representations.
type BookPatch struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Author          string  `json:"author"`
	GenreID         string  `json:"genre"`
	Price           float64 `json:"price"`
	Availability    bool    `json:"availability"`
	Stock           int     `json:"stock"`
	Publisher       string  `json:"publisher,omitempty"`
	PublicationYear int     `json:"publicationYear,omitempty"`
}

// BookstorePatch is the payload for updating the owner's store profile.
type BookstorePatch struct {
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email,omitempty"`
	Address      string      `json:"address"`
	ShippingRate float64     `json:"shippingRate"`
	SocialMedia  SocialMedia `json:"socialMedia"`
}
