package ingredient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"mealmaster/internal/apperr"
	ingredientdb "mealmaster/internal/ingredient/db"
)

// Catalog is the lookup-or-create registry of ingredient names.
type Catalog struct {
	queries *ingredientdb.Queries
}

// NewCatalog creates a catalog backed by d.
func NewCatalog(d ingredientdb.DBTX) *Catalog {
	return &Catalog{queries: ingredientdb.New(d)}
}

// WithTx returns a catalog that runs its queries inside tx.
func (c *Catalog) WithTx(tx *sql.Tx) *Catalog {
	return &Catalog{queries: c.queries.WithTx(tx)}
}

// Resolve returns the ingredient named name, creating it on first use.
// Calling it repeatedly with the same name never creates duplicates.
func (c *Catalog) Resolve(ctx context.Context, name string) (Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Ingredient{}, apperr.Invalid("ingredient name is required")
	}

	if err := c.queries.InsertIngredientIfMissing(ctx, name); err != nil {
		return Ingredient{}, fmt.Errorf("failed to insert ingredient %q: %w", name, err)
	}

	row, err := c.queries.GetIngredientByName(ctx, name)
	if err != nil {
		return Ingredient{}, fmt.Errorf("failed to get ingredient %q: %w", name, err)
	}
	return Ingredient{ID: row.ID, Name: row.Name}, nil
}

// Get retrieves an ingredient by id.
func (c *Catalog) Get(ctx context.Context, id int64) (Ingredient, error) {
	row, err := c.queries.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Ingredient{}, apperr.NotFound("ingredient %d not found", id)
		}
		return Ingredient{}, fmt.Errorf("failed to get ingredient by ID: %w", err)
	}
	return Ingredient{ID: row.ID, Name: row.Name}, nil
}

// List returns every known ingredient ordered by name.
func (c *Catalog) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := c.queries.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	ingredients := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		ingredients = append(ingredients, Ingredient{ID: row.ID, Name: row.Name})
	}
	return ingredients, nil
}
