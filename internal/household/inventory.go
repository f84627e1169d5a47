package household

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"mealmaster/internal/apperr"
	"mealmaster/internal/database"
	householddb "mealmaster/internal/household/db"
	"mealmaster/internal/ingredient"
	"mealmaster/internal/logging"
)

// Inventory is the per-user list of ingredients already at home.
type Inventory struct {
	queries *householddb.Queries
	catalog *ingredient.Catalog
	db      *sql.DB
}

// NewInventory creates a new Inventory.
func NewInventory(d *sql.DB, catalog *ingredient.Catalog) *Inventory {
	return &Inventory{
		queries: householddb.New(d),
		catalog: catalog,
		db:      d,
	}
}

// AddEntry resolves ingredientName and records it as owned by userID.
// Adding an ingredient that is already owned inserts another entry.
func (inv *Inventory) AddEntry(ctx context.Context, userID, ingredientName string, amount *float64, unit *string) (*Entry, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperr.Invalid("user id is required")
	}
	if unit != nil {
		u := strings.TrimSpace(*unit)
		unit = &u
		if u == "" {
			unit = nil
		}
	}

	var entry *Entry
	err := database.InTx(ctx, inv.db, func(tx *sql.Tx) error {
		ing, err := inv.catalog.WithTx(tx).Resolve(ctx, ingredientName)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		id, err := inv.queries.WithTx(tx).InsertHouseholdEntry(ctx, householddb.InsertHouseholdEntryParams{
			UserID:       userID,
			IngredientID: ing.ID,
			Amount:       database.NullFloat64(amount),
			Unit:         database.NullString(unit),
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert household entry: %w", err)
		}

		entry = &Entry{
			ID:         id,
			UserID:     userID,
			Ingredient: ing,
			Amount:     amount,
			Unit:       unit,
			CreatedAt:  now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug().Str("user_id", userID).Str("ingredient", entry.Ingredient.Name).Msg("household entry added")
	return entry, nil
}

// List returns the user's entries in insertion order.
func (inv *Inventory) List(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := inv.queries.ListHouseholdEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household entries: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:         row.ID,
			UserID:     row.UserID,
			Ingredient: ingredient.Ingredient{ID: row.IngredientID, Name: row.IngredientName},
			Amount:     database.FloatPtr(row.Amount),
			Unit:       database.StringPtr(row.Unit),
			CreatedAt:  row.CreatedAt,
		})
	}
	return entries, nil
}

// Remove deletes one of the user's entries.
func (inv *Inventory) Remove(ctx context.Context, userID string, entryID int64) error {
	n, err := inv.queries.DeleteHouseholdEntry(ctx, householddb.DeleteHouseholdEntryParams{
		ID:     entryID,
		UserID: userID,
	})
	if err != nil {
		return fmt.Errorf("failed to delete household entry: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("household entry %d not found", entryID)
	}
	return nil
}

// OwnedIngredientIDs returns the set of ingredient ids the user has at home.
func (inv *Inventory) OwnedIngredientIDs(ctx context.Context, userID string) (map[int64]struct{}, error) {
	ids, err := inv.queries.ListOwnedIngredientIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load owned ingredients: %w", err)
	}

	owned := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		owned[id] = struct{}{}
	}
	return owned, nil
}
