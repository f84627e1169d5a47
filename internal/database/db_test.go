package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func TestNewDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "mealmaster.db")

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	tables := []string{
		"ingredients", "recipes", "recipe_ingredients", "household_entries",
		"shopping_lists", "shopping_list_items", "execution_metrics",
	}
	for _, table := range tables {
		var name string
		err := db.SQL.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}

	var fk int
	if err := db.SQL.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("Failed to read foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("Expected foreign keys to be enabled, got %d", fk)
	}
}

func TestNewDB_MigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "mealmaster.db")

	first, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("First NewDB failed: %v", err)
	}
	first.Close()

	second, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("Second NewDB failed: %v", err)
	}
	second.Close()
}

func TestInTx(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(filepath.Join(t.TempDir(), "tx.db"))
	if err != nil {
		t.Fatalf("NewDB failed: %v", err)
	}
	defer db.Close()

	countIngredients := func() int {
		t.Helper()
		var n int
		if err := db.SQL.QueryRow("SELECT COUNT(*) FROM ingredients").Scan(&n); err != nil {
			t.Fatalf("count failed: %v", err)
		}
		return n
	}

	t.Run("Commit", func(t *testing.T) {
		err := db.InTx(ctx, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO ingredients (name) VALUES ('Flour')")
			return err
		})
		if err != nil {
			t.Fatalf("InTx failed: %v", err)
		}
		if n := countIngredients(); n != 1 {
			t.Errorf("Expected 1 ingredient, got %d", n)
		}
	})

	t.Run("Rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := db.InTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, "INSERT INTO ingredients (name) VALUES ('Sugar')"); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("Expected boom error, got %v", err)
		}
		if n := countIngredients(); n != 1 {
			t.Errorf("Expected rollback to keep 1 ingredient, got %d", n)
		}
	})
}
