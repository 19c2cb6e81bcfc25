package repository

import (
	"context"

	"shopchat/internal/cart"
	"shopchat/internal/model"
)

// Repository is the durable backend for carts and product stock. Create and
// update are transactional: cart rows and stock adjustments commit together
// or not at all, with guarded stock writes that fail the transaction instead
// of overselling.
type Repository interface {
	// FindProductsByIDs returns the products that exist among ids.
	// Missing ids are simply absent from the result, not an error.
	FindProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error)

	// CreateCartAtomic persists a new cart with lines and decrements stock
	// for each line in one transaction. Returns ErrStockConflict when a
	// guarded decrement would take stock below zero.
	CreateCartAtomic(ctx context.Context, lines []cart.LineRequest) (*model.Cart, error)

	// UpdateCartAtomic applies deletions, upserts, and stock deltas in one
	// transaction and returns the resulting cart.
	UpdateCartAtomic(ctx context.Context, opt UpdateCartOptions) (*model.Cart, error)

	// GetCartWithLines returns the cart and its lines with product
	// snapshots, or (nil, nil) when the cart does not exist.
	GetCartWithLines(ctx context.Context, cartID int64) (*model.Cart, error)
}

// UpdateCartOptions carries one reconciled cart update.
type UpdateCartOptions struct {
	CartID           int64
	DeleteProductIDs []int64
	Upserts          []cart.LineRequest // desired final quantity, all > 0
	StockDeltas      []cart.StockDelta  // positive consumes stock, negative releases
}
