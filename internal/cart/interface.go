package cart

import (
	"context"

	"shopchat/internal/model"
)

// UseCase is the cart transaction engine. Create and update are atomic with
// respect to product stock: validation and mutation form one critical
// section enforced by the repository's transaction boundary.
type UseCase interface {
	// ValidateStock batch-fetches the referenced products and reports a
	// shortfall for every line whose quantity exceeds available stock.
	// Unknown product ids are a hard *ProductNotFoundError.
	ValidateStock(ctx context.Context, lines []LineRequest) (Validation, error)

	// CreateCart persists a new cart and decrements stock in one
	// transaction, or returns the shortfall variant without mutating.
	CreateCart(ctx context.Context, lines []LineRequest) (Result, error)

	// UpdateCart reconciles the cart towards the desired final state given
	// by lines, adjusting stock by the computed deltas. Lines absent from
	// the request are removed; only net additions need stock.
	UpdateCart(ctx context.Context, cartID int64, lines []LineRequest) (Result, error)

	// GetCart returns the cart with its lines, or nil when it does not exist.
	GetCart(ctx context.Context, cartID int64) (*model.Cart, error)
}
