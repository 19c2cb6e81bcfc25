package sqlite

import (
	"database/sql"
	"fmt"

	"shopchat/internal/cart/repository"
	"shopchat/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a SQLite-backed cart Repository.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("cart/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

// dsn returns a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("cart/repository/sqlite.%s", method)
}
