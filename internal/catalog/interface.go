package catalog

import (
	"context"

	"shopchat/internal/model"
)

// UseCase defines the business logic interface for the catalog domain.
type UseCase interface {
	// SearchProducts returns products matching the free-text query against
	// name, description, and category. An empty query lists everything.
	SearchProducts(ctx context.Context, query string) ([]model.Product, error)

	// GetProduct returns one product or ErrProductNotFound.
	GetProduct(ctx context.Context, id int64) (*model.Product, error)

	// ListProducts returns the whole catalog.
	ListProducts(ctx context.Context) ([]model.Product, error)
}
