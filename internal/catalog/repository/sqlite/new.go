package sqlite

import (
	"database/sql"
	"fmt"

	"shopchat/internal/catalog/repository"
	"shopchat/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New creates a SQLite-backed catalog Repository.
func New(db *sql.DB, l log.Logger) repository.Repository {
	if db == nil {
		panic("catalog/repository/sqlite: db is required")
	}
	return &implRepository{db: db, l: l}
}

func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("catalog/repository/sqlite.%s", method)
}
