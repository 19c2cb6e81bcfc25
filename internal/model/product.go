package model

// Product is a catalog entry. Stock is a shared, decrementing resource:
// only the cart transaction engine may mutate it, and only atomically.
type Product struct {
	ID          int64
	Name        string
	Description string
	Category    string
	Price       float64
	Stock       int
}
