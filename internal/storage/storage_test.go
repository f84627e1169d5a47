package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mealmaster/internal/ingredient"
	"mealmaster/internal/recipe"
)

func TestRecipeStore(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewRecipeStore(filepath.Join(tempDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to create RecipeStore: %v", err)
	}

	grams := "g"
	flour := 200.0
	updated := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	rec := ArchivedRecipe{
		ID:           7,
		Title:        "Test Recipe",
		Instructions: "Write a test.",
		Lines: []recipe.LineInput{
			{Name: "Flour", Amount: &flour, Unit: &grams},
			{Name: "Salt"},
		},
		UpdatedAt: updated,
	}

	t.Run("CheckExists-False", func(t *testing.T) {
		if store.Exists(rec.ID, updated) {
			t.Errorf("Expected recipe %d to not exist, but it does", rec.ID)
		}
	})

	t.Run("Save", func(t *testing.T) {
		if err := store.Save(rec); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}

		filePath := filepath.Join(tempDir, "archive", "7_2026-03-01T10-30-00Z.json")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			t.Errorf("Expected file '%s' to be created, but it wasn't", filePath)
		}
	})

	t.Run("CheckExists-True", func(t *testing.T) {
		if !store.Exists(rec.ID, updated) {
			t.Errorf("Expected recipe %d to exist, but it doesn't", rec.ID)
		}
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := store.Load(rec.ID, updated)
		if err != nil {
			t.Fatalf("Failed to load recipe: %v", err)
		}

		if loaded.Title != rec.Title {
			t.Errorf("Expected title '%s', got '%s'", rec.Title, loaded.Title)
		}
		if len(loaded.Lines) != 2 {
			t.Fatalf("Expected 2 lines, got %d", len(loaded.Lines))
		}
		if loaded.Lines[0].String() != "200 g Flour" {
			t.Errorf("Expected '200 g Flour', got '%s'", loaded.Lines[0].String())
		}
		if loaded.Lines[1].Amount != nil || loaded.Lines[1].Unit != nil {
			t.Errorf("Expected bare line to stay bare, got %+v", loaded.Lines[1])
		}
	})

	t.Run("SaveReplacesOlderVersion", func(t *testing.T) {
		newer := rec
		newer.Title = "Renamed"
		newer.UpdatedAt = updated.Add(time.Hour)
		if err := store.Save(newer); err != nil {
			t.Fatalf("Failed to save recipe: %v", err)
		}
		if store.Exists(rec.ID, updated) {
			t.Error("Expected the older version to be removed")
		}

		all, err := store.LoadAll()
		if err != nil {
			t.Fatalf("LoadAll failed: %v", err)
		}
		if len(all) != 1 || all[0].Title != "Renamed" {
			t.Errorf("Expected only the renamed recipe, got %+v", all)
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		_, err := store.Load(999, updated)
		if err == nil {
			t.Fatal("Expected an error for loading non-existent recipe, got nil")
		}
	})
}

func TestLoadAll_OrderAndForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewRecipeStore(dir)
	if err != nil {
		t.Fatalf("Failed to create RecipeStore: %v", err)
	}

	for _, id := range []int64{12, 3} {
		if err := store.Save(ArchivedRecipe{ID: id, Title: "R", UpdatedAt: time.Now()}); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes_draft.json"), []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	all, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != 3 || all[1].ID != 12 {
		t.Errorf("Expected recipes 3 and 12 in order, got %+v", all)
	}
}

func TestArchive(t *testing.T) {
	ml := "ml"
	milk := 500.0
	rec := recipe.Recipe{
		ID:    4,
		Title: "Pancakes",
		LineItems: []recipe.LineItem{
			{Ingredient: ingredient.Ingredient{ID: 1, Name: "Milk"}, Amount: &milk, Unit: &ml},
			{Ingredient: ingredient.Ingredient{ID: 2, Name: "Salt"}},
		},
	}

	got := Archive(rec)
	if got.ID != 4 || got.Title != "Pancakes" || len(got.Lines) != 2 {
		t.Fatalf("Unexpected archive %+v", got)
	}
	if got.Lines[0].String() != "500 ml Milk" || got.Lines[1].String() != "Salt" {
		t.Errorf("Unexpected lines %v", got.Lines)
	}
}
