package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"shopchat/internal/catalog/repository"
	"shopchat/internal/model"
)

const productColumns = `id, name, description, category, price, stock`

// Search matches the query case-insensitively against name, description,
// and category. LIKE wildcards in user input are escaped so "100%" searches
// for the literal text.
func (r *implRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return r.List(ctx)
	}

	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products
		 WHERE name LIKE ? ESCAPE '\'
		    OR description LIKE ? ESCAPE '\'
		    OR category LIKE ? ESCAPE '\'
		 ORDER BY name`,
		pattern, pattern, pattern,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("Search"), err)
		return nil, repository.ErrFailedToQuery
	}
	defer rows.Close()
	return r.scanProducts(ctx, rows)
}

// GetByID returns the product, or (nil, nil) when it does not exist.
func (r *implRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetByID"), err)
		return nil, repository.ErrFailedToQuery
	}
	return &p, nil
}

// List returns all products ordered by name.
func (r *implRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY name`,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("List"), err)
		return nil, repository.ErrFailedToQuery
	}
	defer rows.Close()
	return r.scanProducts(ctx, rows)
}

func (r *implRepository) scanProducts(ctx context.Context, rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock); err != nil {
			r.l.Errorf(ctx, "%s: %v", r.dsn("scanProducts"), err)
			return nil, repository.ErrFailedToQuery
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("scanProducts"), err)
		return nil, repository.ErrFailedToQuery
	}
	return products, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
