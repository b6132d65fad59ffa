package domain

// StoreStatus is the lifecycle state of a bookstore registration.
type StoreStatus string

const (
	// StatusActive stores are publicly visible on the storefront.
	StatusActive StoreStatus = "active"
	// StatusPending stores await approval and are hidden from shoppers.
	StatusPending StoreStatus = "pending"
	// StatusSuspended stores are hidden until reinstated.
	StatusSuspended StoreStatus = "suspended"
)

// SocialMedia holds a bookstore's optional social links.
type SocialMedia struct {
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	LinkedIn  string `json:"linkedIn,omitempty"`
}

// Bookstore is a registered store. Each owner account has exactly one.
type Bookstore struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email,omitempty"`
	Address      string      `json:"address"`
	ShippingRate float64     `json:"shippingRate"`
	SocialMedia  SocialMedia `json:"socialMedia"`
	Logo         *Asset      `json:"logo"`
	Status       StoreStatus `json:"status"`
}

// Public reports whether shoppers can see the store.
func (s *Bookstore) Public() bool {
	return s.Status == StatusActive
}
