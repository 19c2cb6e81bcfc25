package model

// CartLine is one product line inside a persisted cart.
type CartLine struct {
	ProductID int64
	Quantity  int
	Product   *Product // snapshot at read time, nil when not joined
}

// Cart is a persisted shopping cart with its lines.
type Cart struct {
	ID    int64
	Lines []CartLine
}
