package household

import (
	"context"
	"path/filepath"
	"testing"

	"mealmaster/internal/apperr"
	"mealmaster/internal/database"
	"mealmaster/internal/ingredient"
)

func newTestInventory(t *testing.T) *Inventory {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "household.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewInventory(db.SQL, ingredient.NewCatalog(db.SQL))
}

func TestInventory_AddEntry(t *testing.T) {
	ctx := context.Background()
	inv := newTestInventory(t)

	amount := 1.0
	unit := " l "
	first, err := inv.AddEntry(ctx, "alice", "Milk", &amount, &unit)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}
	if first.Ingredient.Name != "Milk" || *first.Unit != "l" {
		t.Errorf("Unexpected entry: %+v", first)
	}

	t.Run("ReAddInsertsSecondEntry", func(t *testing.T) {
		second, err := inv.AddEntry(ctx, "alice", "Milk", nil, nil)
		if err != nil {
			t.Fatalf("AddEntry failed: %v", err)
		}
		if second.ID == first.ID {
			t.Error("Expected a new entry id")
		}
		if second.Ingredient.ID != first.Ingredient.ID {
			t.Error("Expected the same ingredient")
		}

		entries, err := inv.List(ctx, "alice")
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("Expected 2 entries, got %d", len(entries))
		}

		owned, err := inv.OwnedIngredientIDs(ctx, "alice")
		if err != nil {
			t.Fatalf("OwnedIngredientIDs failed: %v", err)
		}
		if len(owned) != 1 {
			t.Errorf("Expected 1 owned ingredient, got %d", len(owned))
		}
		if _, ok := owned[first.Ingredient.ID]; !ok {
			t.Error("Expected Milk to be owned")
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		if _, err := inv.AddEntry(ctx, "alice", "  ", nil, nil); !apperr.IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("OtherUsersAreSeparate", func(t *testing.T) {
		owned, err := inv.OwnedIngredientIDs(ctx, "bob")
		if err != nil {
			t.Fatalf("OwnedIngredientIDs failed: %v", err)
		}
		if len(owned) != 0 {
			t.Errorf("Expected bob to own nothing, got %v", owned)
		}
	})
}

func TestInventory_Remove(t *testing.T) {
	ctx := context.Background()
	inv := newTestInventory(t)

	entry, err := inv.AddEntry(ctx, "alice", "Eggs", nil, nil)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	if err := inv.Remove(ctx, "bob", entry.ID); !apperr.IsNotFound(err) {
		t.Errorf("Expected not found for foreign entry, got %v", err)
	}
	if err := inv.Remove(ctx, "alice", entry.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := inv.Remove(ctx, "alice", entry.ID); !apperr.IsNotFound(err) {
		t.Errorf("Expected not found on second remove, got %v", err)
	}

	entries, err := inv.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
