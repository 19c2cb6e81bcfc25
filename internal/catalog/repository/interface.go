package repository

import (
	"context"

	"shopchat/internal/model"
)

// Repository is the read-side product store.
type Repository interface {
	// Search returns products whose name, description, or category match
	// the query. An empty query returns everything.
	Search(ctx context.Context, query string) ([]model.Product, error)

	// GetByID returns the product, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// List returns all products.
	List(ctx context.Context) ([]model.Product, error)
}
