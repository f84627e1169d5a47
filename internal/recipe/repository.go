package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"mealmaster/internal/apperr"
	"mealmaster/internal/database"
	"mealmaster/internal/ingredient"
	recipedb "mealmaster/internal/recipe/db"
	"mealmaster/internal/validation"
)

// Repository is a database-backed repository for recipes. A recipe owns its
// line items: they are written and deleted together with it.
type Repository struct {
	queries *recipedb.Queries
	catalog *ingredient.Catalog
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB, catalog *ingredient.Catalog) *Repository {
	return &Repository{
		queries: recipedb.New(d),
		catalog: catalog,
		db:      d,
	}
}

// Create stores a recipe and its line items in one transaction. Ingredients
// are resolved through the catalog; lines with a blank name are skipped.
func (r *Repository) Create(ctx context.Context, in NewRecipe) (*Recipe, error) {
	in = in.normalize()
	if err := validation.ValidateStruct(in); err != nil {
		return nil, err
	}

	var id int64
	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		now := time.Now().UTC()
		var err error
		id, err = r.queries.WithTx(tx).InsertRecipe(ctx, recipedb.InsertRecipeParams{
			UserID:       in.UserID,
			Title:        in.Title,
			Instructions: in.Instructions,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		return r.insertLines(ctx, tx, id, in.Lines)
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// Update replaces the title, instructions and every line item of a recipe
// owned by in.UserID.
func (r *Repository) Update(ctx context.Context, id int64, in NewRecipe) (*Recipe, error) {
	in = in.normalize()
	if err := validation.ValidateStruct(in); err != nil {
		return nil, err
	}

	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		n, err := q.UpdateRecipe(ctx, recipedb.UpdateRecipeParams{
			Title:        in.Title,
			Instructions: in.Instructions,
			UpdatedAt:    time.Now().UTC(),
			ID:           id,
			UserID:       in.UserID,
		})
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if n == 0 {
			return apperr.NotFound("recipe %d not found", id)
		}
		if err := q.DeleteRecipeIngredients(ctx, id); err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		return r.insertLines(ctx, tx, id, in.Lines)
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

func (r *Repository) insertLines(ctx context.Context, tx *sql.Tx, recipeID int64, lines []LineInput) error {
	q := r.queries.WithTx(tx)
	catalog := r.catalog.WithTx(tx)
	for i, line := range lines {
		ing, err := catalog.Resolve(ctx, line.Name)
		if err != nil {
			return err
		}
		err = q.InsertRecipeIngredient(ctx, recipedb.InsertRecipeIngredientParams{
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Amount:       database.NullFloat64(line.Amount),
			Unit:         database.NullString(line.Unit),
			Position:     int64(i),
		})
		if err != nil {
			return fmt.Errorf("failed to insert recipe ingredient %q: %w", line.Name, err)
		}
	}
	return nil
}

// Get retrieves a recipe and its line items by ID.
func (r *Repository) Get(ctx context.Context, id int64) (*Recipe, error) {
	dbRecipe, err := r.queries.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("recipe %d not found", id)
		}
		return nil, fmt.Errorf("failed to get recipe by ID: %w", err)
	}

	rows, err := r.queries.ListRecipeIngredients(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe ingredients: %w", err)
	}

	rec := fromDB(dbRecipe)
	for _, row := range rows {
		rec.LineItems = append(rec.LineItems, LineItem{
			ID:         row.ID,
			RecipeID:   row.RecipeID,
			Ingredient: ingredient.Ingredient{ID: row.IngredientID, Name: row.IngredientName},
			Amount:     database.FloatPtr(row.Amount),
			Unit:       database.StringPtr(row.Unit),
			Position:   int(row.Position),
		})
	}
	return rec, nil
}

// ListByUser returns the user's recipes without their line items.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Recipe, error) {
	dbRecipes, err := r.queries.ListRecipesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	recipes := make([]Recipe, 0, len(dbRecipes))
	for _, dbRec := range dbRecipes {
		recipes = append(recipes, *fromDB(dbRec))
	}
	return recipes, nil
}

// Delete removes a recipe owned by userID, deleting its line items first.
func (r *Repository) Delete(ctx context.Context, id int64, userID string) error {
	return database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		dbRecipe, err := q.GetRecipeByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("recipe %d not found", id)
			}
			return fmt.Errorf("failed to get recipe by ID: %w", err)
		}
		if dbRecipe.UserID != userID {
			return apperr.NotFound("recipe %d not found", id)
		}

		if err := q.DeleteRecipeIngredients(ctx, id); err != nil {
			return fmt.Errorf("failed to delete recipe ingredients: %w", err)
		}
		if _, err := q.DeleteRecipe(ctx, recipedb.DeleteRecipeParams{ID: id, UserID: userID}); err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// maxIDsPerQuery keeps each id list well under SQLite's bound parameter
// limit.
const maxIDsPerQuery = 500

// LineItemsForRecipes loads the line items of the given recipes that belong
// to userID, ordered by recipe then position. Unknown and foreign recipe ids
// contribute nothing; duplicates are ignored. Large selections are read in
// batches of ascending ids.
func (r *Repository) LineItemsForRecipes(ctx context.Context, userID string, recipeIDs []int64) ([]LineItem, error) {
	ids := dedupe(recipeIDs)
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var items []LineItem
	for start := 0; start < len(ids); start += maxIDsPerQuery {
		end := min(start+maxIDsPerQuery, len(ids))
		rows, err := r.queries.ListLineItemsForRecipes(ctx, recipedb.ListLineItemsForRecipesParams{
			UserID:    userID,
			RecipeIds: ids[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load line items: %w", err)
		}

		for _, row := range rows {
			items = append(items, LineItem{
				ID:         row.ID,
				RecipeID:   row.RecipeID,
				Ingredient: ingredient.Ingredient{ID: row.IngredientID, Name: row.IngredientName},
				Amount:     database.FloatPtr(row.Amount),
				Unit:       database.StringPtr(row.Unit),
				Position:   int(row.Position),
			})
		}
	}
	return items, nil
}

func fromDB(r recipedb.Recipe) *Recipe {
	return &Recipe{
		ID:           r.ID,
		UserID:       r.UserID,
		Title:        r.Title,
		Instructions: r.Instructions,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
