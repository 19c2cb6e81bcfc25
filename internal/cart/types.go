package cart

import "shopchat/internal/model"

// LineRequest is one requested cart line. A quantity of zero or less means
// "remove this line".
type LineRequest struct {
	ProductID int64
	Quantity  int
}

// StockShortfall reports one line whose requested quantity exceeds what the
// user can actually end up with. It is a negotiable outcome, never an error.
type StockShortfall struct {
	ProductID         int64
	ProductName       string
	AvailableStock    int
	RequestedQuantity int
}

// Result is the outcome of a cart operation: either a realized cart or a
// list of shortfalls. Exactly one side is populated.
type Result struct {
	Cart       *model.Cart
	Shortfalls []StockShortfall
}

// Realized reports whether the operation committed a cart.
func (r Result) Realized() bool {
	return r.Cart != nil
}

// Validation is the outcome of a batch stock check.
type Validation struct {
	Products   map[int64]model.Product
	Shortfalls []StockShortfall
}

// StockDelta is the signed stock adjustment for one product: positive
// consumes stock, negative releases it.
type StockDelta struct {
	ProductID int64
	Delta     int
}
