package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"shopchat/internal/cart"
	"shopchat/internal/cart/repository"
	"shopchat/internal/model"
)

// CreateCartAtomic persists a new cart with lines and decrements stock in
// one transaction. The decrement is guarded: a concurrent operation that
// drained stock after validation fails the whole transaction with
// ErrStockConflict instead of overselling.
func (r *implRepository) CreateCartAtomic(ctx context.Context, lines []cart.LineRequest) (*model.Cart, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("CreateCartAtomic"), err)
		return nil, repository.ErrFailedToExec
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT INTO carts (created_at) VALUES (?)`, time.Now().Unix())
	if err != nil {
		r.l.Errorf(ctx, "%s insert cart: %v", r.dsn("CreateCartAtomic"), err)
		return nil, repository.ErrFailedToExec
	}
	cartID, err := res.LastInsertId()
	if err != nil {
		r.l.Errorf(ctx, "%s last insert id: %v", r.dsn("CreateCartAtomic"), err)
		return nil, repository.ErrFailedToExec
	}

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, product_id, qty) VALUES (?, ?, ?)`,
			cartID, line.ProductID, line.Quantity,
		); err != nil {
			r.l.Errorf(ctx, "%s insert line: %v", r.dsn("CreateCartAtomic"), err)
			return nil, repository.ErrFailedToExec
		}

		if err := r.applyStockDelta(ctx, tx, line.ProductID, line.Quantity); err != nil {
			return nil, err
		}
	}

	result, err := r.readCart(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("CreateCartAtomic"), err)
		return nil, repository.ErrFailedToExec
	}
	return result, nil
}

// UpdateCartAtomic applies deletions, upserts, and stock deltas in one
// transaction.
func (r *implRepository) UpdateCartAtomic(ctx context.Context, opt repository.UpdateCartOptions) (*model.Cart, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s begin: %v", r.dsn("UpdateCartAtomic"), err)
		return nil, repository.ErrFailedToExec
	}
	defer tx.Rollback()

	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = ?`, opt.CartID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, repository.ErrCartNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s select cart: %v", r.dsn("UpdateCartAtomic"), err)
		return nil, repository.ErrFailedToQuery
	}

	if len(opt.DeleteProductIDs) > 0 {
		placeholders := make([]string, len(opt.DeleteProductIDs))
		args := make([]any, 0, len(opt.DeleteProductIDs)+1)
		args = append(args, opt.CartID)
		for i, id := range opt.DeleteProductIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query := fmt.Sprintf(
			`DELETE FROM cart_items WHERE cart_id = ? AND product_id IN (%s)`,
			strings.Join(placeholders, ", "),
		)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			r.l.Errorf(ctx, "%s delete lines: %v", r.dsn("UpdateCartAtomic"), err)
			return nil, repository.ErrFailedToExec
		}
	}

	for _, line := range opt.Upserts {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO cart_items (cart_id, product_id, qty) VALUES (?, ?, ?)
			 ON CONFLICT (cart_id, product_id) DO UPDATE SET qty = excluded.qty`,
			opt.CartID, line.ProductID, line.Quantity,
		); err != nil {
			r.l.Errorf(ctx, "%s upsert line: %v", r.dsn("UpdateCartAtomic"), err)
			return nil, repository.ErrFailedToExec
		}
	}

	for _, delta := range opt.StockDeltas {
		if err := r.applyStockDelta(ctx, tx, delta.ProductID, delta.Delta); err != nil {
			return nil, err
		}
	}

	result, err := r.readCart(ctx, tx, opt.CartID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("UpdateCartAtomic"), err)
		return nil, repository.ErrFailedToExec
	}
	return result, nil
}

// GetCartWithLines returns the cart with product snapshots, or (nil, nil)
// when the cart does not exist.
func (r *implRepository) GetCartWithLines(ctx context.Context, cartID int64) (*model.Cart, error) {
	var exists int64
	err := r.db.QueryRowContext(ctx, `SELECT id FROM carts WHERE id = ?`, cartID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetCartWithLines"), err)
		return nil, repository.ErrFailedToQuery
	}
	return r.readCart(ctx, r.db, cartID)
}

// queryer abstracts *sql.DB and *sql.Tx for shared read helpers.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *implRepository) readCart(ctx context.Context, q queryer, cartID int64) (*model.Cart, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT ci.product_id, ci.qty, p.name, p.description, p.category, p.price, p.stock
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = ?
		 ORDER BY ci.id`,
		cartID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("readCart"), err)
		return nil, repository.ErrFailedToQuery
	}
	defer rows.Close()

	result := &model.Cart{ID: cartID}
	for rows.Next() {
		var (
			line model.CartLine
			p    model.Product
		)
		if err := rows.Scan(&line.ProductID, &line.Quantity, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("readCart"), err)
			return nil, repository.ErrFailedToQuery
		}
		p.ID = line.ProductID
		line.Product = &p
		result.Lines = append(result.Lines, line)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("readCart"), err)
		return nil, repository.ErrFailedToQuery
	}
	return result, nil
}

// applyStockDelta adjusts stock by -delta with a guard: the update matches
// only while the resulting stock stays non-negative. Zero rows affected
// means the product vanished or a concurrent operation drained stock first.
func (r *implRepository) applyStockDelta(ctx context.Context, tx *sql.Tx, productID int64, delta int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE products SET stock = stock - ? WHERE id = ? AND stock - ? >= 0`,
		delta, productID, delta,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("applyStockDelta"), err)
		return repository.ErrFailedToExec
	}
	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "%s rows affected: %v", r.dsn("applyStockDelta"), err)
		return repository.ErrFailedToExec
	}
	if affected == 0 {
		return repository.ErrStockConflict
	}
	return nil
}
