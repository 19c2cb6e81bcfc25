package storage

import (
	"database/sql"
	"fmt"
)

// SeedDemoCatalog inserts a small demo catalog when the products table is
// empty, so a fresh install has something to sell.
func SeedDemoCatalog(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := []struct {
		name        string
		description string
		category    string
		price       float64
		stock       int
	}{
		{"Colombian Coffee 500g", "Medium roast whole beans", "beverages", 12.50, 40},
		{"Green Tea 20 bags", "Loose-leaf quality in bags", "beverages", 4.90, 60},
		{"Dark Chocolate 85%", "Single-origin 100g bar", "snacks", 3.75, 25},
		{"Almonds 250g", "Raw, unsalted", "snacks", 6.20, 30},
		{"Olive Oil 750ml", "Extra virgin, cold pressed", "pantry", 9.80, 18},
		{"Basmati Rice 1kg", "Aged long-grain", "pantry", 5.40, 50},
		{"Sparkling Water 6x1L", "Natural carbonation", "beverages", 4.20, 35},
		{"Honey 350g", "Raw wildflower honey", "pantry", 7.10, 22},
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		if _, err := tx.Exec(
			`INSERT INTO products (name, description, category, price, stock) VALUES (?, ?, ?, ?, ?)`,
			p.name, p.description, p.category, p.price, p.stock,
		); err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}
	return tx.Commit()
}
