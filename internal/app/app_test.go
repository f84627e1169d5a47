package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"mealmaster/internal/apperr"
	"mealmaster/internal/config"
	"mealmaster/internal/database"
	"mealmaster/internal/ghost"
	"mealmaster/internal/recipe"
)

type mockGhostClient struct {
	posts   []ghost.Post
	err     error
	created []string
}

func (m *mockGhostClient) FetchRecipes(ctx context.Context) ([]ghost.Post, error) {
	return m.posts, m.err
}

func (m *mockGhostClient) CreatePost(ctx context.Context, title, html string, publish bool) (*ghost.Post, error) {
	m.created = append(m.created, title)
	return &ghost.Post{ID: "new", Title: title, HTML: html}, nil
}

func newTestApp(t *testing.T, cfg *config.Config, ghostClient ghost.Client) *App {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.DatabasePath = filepath.Join(t.TempDir(), "app.db")
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewApp(cfg, db, ghostClient)
}

func TestShoppingWorkflow(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, nil)

	pancakes, err := a.CreateRecipe(ctx, recipe.NewRecipe{
		UserID: "42",
		Title:  "Pancakes",
		Lines: []recipe.LineInput{
			recipe.ParseLine("200 g Flour"),
			recipe.ParseLine("500 ml Milk"),
			recipe.ParseLine("Salt"),
		},
	})
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}
	bread, err := a.CreateRecipe(ctx, recipe.NewRecipe{
		UserID: "42",
		Title:  "Bread",
		Lines:  []recipe.LineInput{recipe.ParseLine("100 G Flour")},
	})
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	if _, err := a.AddToPantry(ctx, "42", "1 l Milk"); err != nil {
		t.Fatalf("AddToPantry failed: %v", err)
	}

	list, err := a.GenerateShoppingList(ctx, "42", recipe.ParseIDs(strings.Join([]string{
		itoa(pancakes.ID), itoa(bread.ID), itoa(pancakes.ID),
	}, ",")))
	if err != nil {
		t.Fatalf("GenerateShoppingList failed: %v", err)
	}

	var got []string
	for _, it := range list.Items {
		got = append(got, it.String())
	}
	if strings.Join(got, "|") != "300 g Flour|Salt" {
		t.Errorf("Unexpected list: %v", got)
	}

	t.Run("CheckItem", func(t *testing.T) {
		item, err := a.CheckItem(ctx, "42", 1, true)
		if err != nil {
			t.Fatalf("CheckItem failed: %v", err)
		}
		if item.Name() != "Flour" || !item.Purchased {
			t.Errorf("Unexpected item: %+v", item)
		}
		if _, err := a.CheckItem(ctx, "42", 5, true); !apperr.IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	t.Run("AddCustomItem", func(t *testing.T) {
		item, err := a.AddCustomItem(ctx, "42", "2 rolls Kitchen paper")
		if err != nil {
			t.Fatalf("AddCustomItem failed: %v", err)
		}
		if item.String() != "2 rolls Kitchen paper" {
			t.Errorf("Unexpected custom item: %s", item.String())
		}
		if _, err := a.AddCustomItem(ctx, "42", "  "); !apperr.IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("AddCustomItemWithoutList", func(t *testing.T) {
		item, err := a.AddCustomItem(ctx, "7", "Soap")
		if err != nil {
			t.Fatalf("AddCustomItem failed: %v", err)
		}
		list, err := a.CurrentList(ctx, "7")
		if err != nil {
			t.Fatalf("CurrentList failed: %v", err)
		}
		if len(list.Items) != 1 || list.Items[0].ID != item.ID {
			t.Errorf("Expected a new list holding the item, got %+v", list.Items)
		}
	})

	t.Run("AddBlankCustomItemWithoutList", func(t *testing.T) {
		if _, err := a.AddCustomItem(ctx, "u1", "   "); !apperr.IsValidation(err) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		if _, err := a.CurrentList(ctx, "u1"); !apperr.IsNotFound(err) {
			t.Errorf("Expected no list to be created, got %v", err)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		report, err := a.MetricsReport(7)
		if err != nil {
			t.Fatalf("MetricsReport failed: %v", err)
		}
		if !strings.Contains(report, "1 runs") {
			t.Errorf("Expected one recorded run, got:\n%s", report)
		}
	})

	t.Run("ForeignRecipe", func(t *testing.T) {
		if _, err := a.Recipe(ctx, "99", pancakes.ID); !apperr.IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
		if err := a.DeleteRecipe(ctx, "99", pancakes.ID); !apperr.IsNotFound(err) {
			t.Errorf("Expected not found error, got %v", err)
		}
	})

	t.Run("ClearList", func(t *testing.T) {
		deleted, err := a.ClearList(ctx, "42")
		if err != nil || !deleted {
			t.Fatalf("Expected list to be deleted, got %v, %v", deleted, err)
		}
		deleted, err = a.ClearList(ctx, "42")
		if err != nil || deleted {
			t.Errorf("Expected no-op delete, got %v, %v", deleted, err)
		}
	})
}

func TestIngestFromGhost(t *testing.T) {
	ctx := context.Background()

	t.Run("NotConfigured", func(t *testing.T) {
		a := newTestApp(t, nil, nil)
		if _, err := a.IngestFromGhost(ctx, "42"); !apperr.IsValidation(err) {
			t.Errorf("Expected validation error, got %v", err)
		}
	})

	t.Run("ImportsAndSkipsExisting", func(t *testing.T) {
		client := &mockGhostClient{posts: []ghost.Post{
			{ID: "1", Title: "Soup", HTML: "<h2>Ingredients</h2><ul><li>1 kg Tomatoes</li><li>Salt</li></ul><h2>Instructions</h2><ol><li>Simmer.</li></ol>"},
			{ID: "2", Title: "Pancakes", HTML: "<h2>Ingredients</h2><ul><li>Flour</li></ul>"},
			{ID: "3", Title: "Empty", HTML: "<p>No recipe here</p>"},
		}}
		a := newTestApp(t, nil, client)

		if _, err := a.CreateRecipe(ctx, recipe.NewRecipe{UserID: "42", Title: "Pancakes"}); err != nil {
			t.Fatalf("CreateRecipe failed: %v", err)
		}

		n, err := a.IngestFromGhost(ctx, "42")
		if err != nil {
			t.Fatalf("IngestFromGhost failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 imported recipe, got %d", n)
		}

		recipes, err := a.ListRecipes(ctx, "42")
		if err != nil {
			t.Fatalf("ListRecipes failed: %v", err)
		}
		if len(recipes) != 2 || recipes[1].Title != "Soup" {
			t.Fatalf("Unexpected recipes: %+v", recipes)
		}
		soup, err := a.Recipe(ctx, "42", recipes[1].ID)
		if err != nil {
			t.Fatalf("Recipe failed: %v", err)
		}
		if len(soup.LineItems) != 2 || soup.Instructions != "Simmer." {
			t.Errorf("Unexpected soup: %+v", soup)
		}
	})

	t.Run("FetchError", func(t *testing.T) {
		a := newTestApp(t, nil, &mockGhostClient{err: errors.New("boom")})
		if _, err := a.IngestFromGhost(ctx, "42"); err == nil {
			t.Error("Expected an error, got nil")
		}
	})
}

func TestClipRecipe(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><h1>Omelette</h1><h2>Ingredients</h2><ul><li>3 Eggs</li><li>10 g Butter</li></ul></body></html>`))
	}))
	defer ts.Close()

	client := &mockGhostClient{}
	a := newTestApp(t, &config.Config{GhostURL: "http://ghost.test", GhostAdminKey: "id:abcd"}, client)

	rec, err := a.ClipRecipe(context.Background(), "42", ts.URL)
	if err != nil {
		t.Fatalf("ClipRecipe failed: %v", err)
	}
	if rec.Title != "Omelette" || len(rec.LineItems) != 2 {
		t.Errorf("Unexpected recipe: %+v", rec)
	}
	if !strings.Contains(rec.Instructions, "Source: "+ts.URL) {
		t.Errorf("Expected source in instructions, got %q", rec.Instructions)
	}
	if len(client.created) != 1 || client.created[0] != "Omelette" {
		t.Errorf("Expected the recipe to be published, got %v", client.created)
	}
}

func TestExportImportRecipes(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, nil, nil)
	dir := filepath.Join(t.TempDir(), "backup")

	_, err := a.CreateRecipe(ctx, recipe.NewRecipe{
		UserID:       "42",
		Title:        "Pancakes",
		Instructions: "Mix and fry.",
		Lines:        []recipe.LineInput{recipe.ParseLine("200 g Flour"), recipe.ParseLine("Salt")},
	})
	if err != nil {
		t.Fatalf("CreateRecipe failed: %v", err)
	}

	n, err := a.ExportRecipes(ctx, "42", dir)
	if err != nil {
		t.Fatalf("ExportRecipes failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 exported recipe, got %d", n)
	}

	n, err = a.ImportRecipes(ctx, "42", dir)
	if err != nil {
		t.Fatalf("ImportRecipes failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Expected existing titles to be skipped, got %d imports", n)
	}

	n, err = a.ImportRecipes(ctx, "7", dir)
	if err != nil {
		t.Fatalf("ImportRecipes failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("Expected 1 imported recipe, got %d", n)
	}

	recipes, err := a.ListRecipes(ctx, "7")
	if err != nil || len(recipes) != 1 {
		t.Fatalf("Expected one recipe for user 7, got %v (%v)", recipes, err)
	}
	copied, err := a.Recipe(ctx, "7", recipes[0].ID)
	if err != nil {
		t.Fatalf("Recipe failed: %v", err)
	}
	if copied.Instructions != "Mix and fry." || len(copied.LineItems) != 2 {
		t.Errorf("Unexpected imported recipe: %+v", copied)
	}
	if li := copied.LineItems[0]; li.Amount == nil || *li.Amount != 200 || li.Unit == nil || *li.Unit != "g" {
		t.Errorf("Expected structured first line, got %+v", li)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
