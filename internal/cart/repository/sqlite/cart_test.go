package sqlite_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"shopchat/internal/cart"
	"shopchat/internal/cart/repository"
	"shopchat/internal/cart/repository/sqlite"
	"shopchat/internal/storage"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

func newTestRepo(t *testing.T) (repository.Repository, *sql.DB) {
	t.Helper()
	db, err := storage.OpenInMemory()
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	seed := []struct {
		name  string
		stock int
	}{
		{"Coffee", 10},
		{"Tea", 3},
		{"Sugar", 0},
	}
	for _, s := range seed {
		if _, err := db.Exec(
			`INSERT INTO products (name, description, category, price, stock) VALUES (?, '', '', 1.0, ?)`,
			s.name, s.stock,
		); err != nil {
			t.Fatalf("seed product %s: %v", s.name, err)
		}
	}
	return sqlite.New(db, &mockLogger{}), db
}

func stockOf(t *testing.T, db *sql.DB, productID int64) int {
	t.Helper()
	var stock int
	if err := db.QueryRow(`SELECT stock FROM products WHERE id = ?`, productID).Scan(&stock); err != nil {
		t.Fatalf("read stock: %v", err)
	}
	return stock
}

func TestFindProductsByIDs(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	products, err := repo.FindProductsByIDs(ctx, []int64{1, 2, 99})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Coffee" || products[0].Stock != 10 {
		t.Errorf("unexpected product: %+v", products[0])
	}
}

func TestCreateCartAtomic(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Cart And Decrements Stock", func(t *testing.T) {
		repo, db := newTestRepo(t)

		created, err := repo.CreateCartAtomic(ctx, []cart.LineRequest{
			{ProductID: 1, Quantity: 4},
			{ProductID: 2, Quantity: 1},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.ID == 0 || len(created.Lines) != 2 {
			t.Fatalf("unexpected cart: %+v", created)
		}
		if created.Lines[0].Product == nil || created.Lines[0].Product.Name != "Coffee" {
			t.Errorf("expected product snapshot on line, got %+v", created.Lines[0])
		}
		if got := stockOf(t, db, 1); got != 6 {
			t.Errorf("expected stock 6 after decrement, got %d", got)
		}
		if got := stockOf(t, db, 2); got != 2 {
			t.Errorf("expected stock 2 after decrement, got %d", got)
		}
	})

	t.Run("Insufficient Stock Rolls Back Everything", func(t *testing.T) {
		repo, db := newTestRepo(t)

		_, err := repo.CreateCartAtomic(ctx, []cart.LineRequest{
			{ProductID: 1, Quantity: 4}, // would succeed alone
			{ProductID: 2, Quantity: 9}, // only 3 in stock
		})
		if !errors.Is(err, repository.ErrStockConflict) {
			t.Fatalf("expected ErrStockConflict, got %v", err)
		}
		if got := stockOf(t, db, 1); got != 10 {
			t.Errorf("expected stock untouched after rollback, got %d", got)
		}
		var carts int
		db.QueryRow(`SELECT COUNT(*) FROM carts`).Scan(&carts)
		if carts != 0 {
			t.Errorf("expected no cart rows after rollback, got %d", carts)
		}
	})
}

func TestUpdateCartAtomic(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (repository.Repository, *sql.DB, int64) {
		repo, db := newTestRepo(t)
		created, err := repo.CreateCartAtomic(ctx, []cart.LineRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		})
		if err != nil {
			t.Fatalf("seed cart: %v", err)
		}
		return repo, db, created.ID
	}

	t.Run("Grow Shrink And Remove", func(t *testing.T) {
		repo, db, cartID := setup(t)

		// Coffee 2 -> 5, Tea removed.
		updated, err := repo.UpdateCartAtomic(ctx, repository.UpdateCartOptions{
			CartID:           cartID,
			DeleteProductIDs: []int64{2},
			Upserts:          []cart.LineRequest{{ProductID: 1, Quantity: 5}},
			StockDeltas: []cart.StockDelta{
				{ProductID: 1, Delta: 3},
				{ProductID: 2, Delta: -1},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(updated.Lines) != 1 || updated.Lines[0].Quantity != 5 {
			t.Fatalf("unexpected cart after update: %+v", updated)
		}
		if got := stockOf(t, db, 1); got != 5 {
			t.Errorf("expected stock 5 after growth, got %d", got)
		}
		if got := stockOf(t, db, 2); got != 3 {
			t.Errorf("expected released stock back to 3, got %d", got)
		}
	})

	t.Run("Conflicting Delta Rolls Back", func(t *testing.T) {
		repo, db, cartID := setup(t)

		_, err := repo.UpdateCartAtomic(ctx, repository.UpdateCartOptions{
			CartID:      cartID,
			Upserts:     []cart.LineRequest{{ProductID: 1, Quantity: 20}},
			StockDeltas: []cart.StockDelta{{ProductID: 1, Delta: 18}},
		})
		if !errors.Is(err, repository.ErrStockConflict) {
			t.Fatalf("expected ErrStockConflict, got %v", err)
		}
		got, err := repo.GetCartWithLines(ctx, cartID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Lines[0].Quantity != 2 {
			t.Errorf("expected line untouched after rollback, got %+v", got.Lines[0])
		}
		if s := stockOf(t, db, 1); s != 8 {
			t.Errorf("expected stock untouched at 8, got %d", s)
		}
	})

	t.Run("Unknown Cart", func(t *testing.T) {
		repo, _, _ := setup(t)
		_, err := repo.UpdateCartAtomic(ctx, repository.UpdateCartOptions{CartID: 999})
		if !errors.Is(err, repository.ErrCartNotFound) {
			t.Errorf("expected ErrCartNotFound, got %v", err)
		}
	})
}

func TestGetCartWithLines(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	t.Run("Missing Cart Is Nil Nil", func(t *testing.T) {
		got, err := repo.GetCartWithLines(ctx, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for missing cart, got %+v", got)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		created, err := repo.CreateCartAtomic(ctx, []cart.LineRequest{{ProductID: 1, Quantity: 2}})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := repo.GetCartWithLines(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if len(got.Lines) != 1 || got.Lines[0].ProductID != 1 || got.Lines[0].Quantity != 2 {
			t.Errorf("unexpected cart: %+v", got)
		}
		if got.Lines[0].Product == nil || got.Lines[0].Product.Stock != 8 {
			t.Errorf("expected fresh product snapshot, got %+v", got.Lines[0].Product)
		}
	})
}
