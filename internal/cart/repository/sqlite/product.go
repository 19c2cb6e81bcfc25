package sqlite

import (
	"context"
	"fmt"
	"strings"

	"shopchat/internal/cart/repository"
	"shopchat/internal/model"
)

// FindProductsByIDs returns the products that exist among ids, in one batch.
func (r *implRepository) FindProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, name, description, category, price, stock
		 FROM products WHERE id IN (%s)`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("FindProductsByIDs"), err)
		return nil, repository.ErrFailedToQuery
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("FindProductsByIDs"), err)
			return nil, repository.ErrFailedToQuery
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("FindProductsByIDs"), err)
		return nil, repository.ErrFailedToQuery
	}
	return products, nil
}
