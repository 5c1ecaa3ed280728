package domain

// Product is a stock catalog entry. Quantity is authoritative on the backend;
// the copy held here is a read-mostly cache refreshed after every mutation.
type Product struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name"`
	Reference string `json:"reference"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
}
