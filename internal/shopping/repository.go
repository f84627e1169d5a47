package shopping

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mealmaster/internal/apperr"
	"mealmaster/internal/database"
	shoppingdb "mealmaster/internal/shopping/db"
)

// Repository handles persistence of shopping lists. A list owns its items:
// they are always deleted before the list itself.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// Replace deletes the user's current list, if any, and stores a new one with
// items, all in one transaction.
func (r *Repository) Replace(ctx context.Context, userID string, items []Item) (*ShoppingList, error) {
	list := &ShoppingList{UserID: userID, CreatedAt: time.Now().UTC()}

	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if _, err := deleteForUser(ctx, q, userID); err != nil {
			return err
		}

		id, err := q.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
			UserID:    userID,
			CreatedAt: list.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to insert shopping list: %w", err)
		}
		list.ID = id

		list.Items = make([]Item, 0, len(items))
		for i, it := range items {
			it.ListID = id
			it.Position = i
			it.Purchased = false
			saved, err := insertItem(ctx, q, it)
			if err != nil {
				return err
			}
			list.Items = append(list.Items, saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// GetByUser retrieves the user's list with its items.
func (r *Repository) GetByUser(ctx context.Context, userID string) (*ShoppingList, error) {
	dbList, err := r.queries.GetShoppingListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("no shopping list for user %s", userID)
		}
		return nil, fmt.Errorf("failed to get shopping list by user: %w", err)
	}
	return r.withItems(ctx, dbList)
}

// Get retrieves a list by ID with its items.
func (r *Repository) Get(ctx context.Context, listID int64) (*ShoppingList, error) {
	dbList, err := r.queries.GetShoppingListByID(ctx, listID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("shopping list %d not found", listID)
		}
		return nil, fmt.Errorf("failed to get shopping list by ID: %w", err)
	}
	return r.withItems(ctx, dbList)
}

func (r *Repository) withItems(ctx context.Context, dbList shoppingdb.ShoppingList) (*ShoppingList, error) {
	rows, err := r.queries.ListShoppingListItems(ctx, dbList.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping list items: %w", err)
	}

	list := &ShoppingList{
		ID:        dbList.ID,
		UserID:    dbList.UserID,
		CreatedAt: dbList.CreatedAt,
		Items:     make([]Item, 0, len(rows)),
	}
	for _, row := range rows {
		list.Items = append(list.Items, Item{
			ID:             row.ID,
			ListID:         row.ListID,
			Position:       int(row.Position),
			IngredientID:   database.Int64Ptr(row.IngredientID),
			IngredientName: row.IngredientName.String,
			CustomName:     row.CustomName.String,
			Amount:         database.FloatPtr(row.Amount),
			Unit:           database.StringPtr(row.Unit),
			Purchased:      row.Purchased,
		})
	}
	return list, nil
}

// SetPurchased sets the purchased flag of one item of the list.
func (r *Repository) SetPurchased(ctx context.Context, listID, itemID int64, purchased bool) error {
	n, err := r.queries.SetItemPurchased(ctx, shoppingdb.SetItemPurchasedParams{
		Purchased: purchased,
		ID:        itemID,
		ListID:    listID,
	})
	if err != nil {
		return fmt.Errorf("failed to update shopping list item: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("item %d not found in shopping list %d", itemID, listID)
	}
	return nil
}

// Append adds an item at the end of an existing list.
func (r *Repository) Append(ctx context.Context, listID int64, it Item) (*Item, error) {
	var saved Item
	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if _, err := q.GetShoppingListByID(ctx, listID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperr.NotFound("shopping list %d not found", listID)
			}
			return fmt.Errorf("failed to get shopping list by ID: %w", err)
		}

		var err error
		saved, err = appendItem(ctx, q, listID, it)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// AppendForUser adds an item at the end of the user's list, creating an
// empty list first when the user has none. Both happen in one transaction.
func (r *Repository) AppendForUser(ctx context.Context, userID string, it Item) (*Item, error) {
	var saved Item
	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)

		var listID int64
		existing, err := q.GetShoppingListByUser(ctx, userID)
		switch {
		case err == nil:
			listID = existing.ID
		case errors.Is(err, sql.ErrNoRows):
			listID, err = q.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			})
			if err != nil {
				return fmt.Errorf("failed to insert shopping list: %w", err)
			}
		default:
			return fmt.Errorf("failed to get shopping list by user: %w", err)
		}

		saved, err = appendItem(ctx, q, listID, it)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func appendItem(ctx context.Context, q *shoppingdb.Queries, listID int64, it Item) (Item, error) {
	pos, err := q.NextItemPosition(ctx, listID)
	if err != nil {
		return Item{}, fmt.Errorf("failed to get next item position: %w", err)
	}

	it.ListID = listID
	it.Position = int(pos)
	return insertItem(ctx, q, it)
}

// DeleteByUser removes the user's list and its items. It reports whether
// there was a list to delete.
func (r *Repository) DeleteByUser(ctx context.Context, userID string) (bool, error) {
	var deleted bool
	err := database.InTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		deleted, err = deleteForUser(ctx, r.queries.WithTx(tx), userID)
		return err
	})
	return deleted, err
}

func deleteForUser(ctx context.Context, q *shoppingdb.Queries, userID string) (bool, error) {
	existing, err := q.GetShoppingListByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get shopping list by user: %w", err)
	}

	if err := q.DeleteShoppingListItems(ctx, existing.ID); err != nil {
		return false, fmt.Errorf("failed to delete shopping list items: %w", err)
	}
	if _, err := q.DeleteShoppingList(ctx, existing.ID); err != nil {
		return false, fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return true, nil
}

func insertItem(ctx context.Context, q *shoppingdb.Queries, it Item) (Item, error) {
	params := shoppingdb.InsertShoppingListItemParams{
		ListID:       it.ListID,
		Position:     int64(it.Position),
		IngredientID: database.NullInt64(it.IngredientID),
		Amount:       database.NullFloat64(it.Amount),
		Unit:         database.NullString(it.Unit),
		Purchased:    it.Purchased,
	}
	if it.IsCustom() {
		params.CustomName = sql.NullString{String: it.CustomName, Valid: true}
	}

	id, err := q.InsertShoppingListItem(ctx, params)
	if err != nil {
		return Item{}, fmt.Errorf("failed to insert shopping list item %q: %w", it.Name(), err)
	}
	it.ID = id
	return it, nil
}
