package shopping

import (
	"context"
	"strings"

	"mealmaster/internal/apperr"
	"mealmaster/internal/logging"
	"mealmaster/internal/recipe"
	"mealmaster/internal/validation"
)

// LineItemSource loads the line items of a user's selected recipes.
type LineItemSource interface {
	LineItemsForRecipes(ctx context.Context, userID string, recipeIDs []int64) ([]recipe.LineItem, error)
}

// OwnedIngredients reports which ingredients a user already has at home.
type OwnedIngredients interface {
	OwnedIngredientIDs(ctx context.Context, userID string) (map[int64]struct{}, error)
}

// Service generates and mutates shopping lists.
type Service struct {
	repo      *Repository
	recipes   LineItemSource
	household OwnedIngredients
}

// NewService creates a new shopping list service.
func NewService(repo *Repository, recipes LineItemSource, household OwnedIngredients) *Service {
	return &Service{
		repo:      repo,
		recipes:   recipes,
		household: household,
	}
}

// GenerateShoppingList builds a list from the selected recipes and replaces
// the user's current list with it. Unknown, foreign and duplicate recipe ids
// are ignored; an empty selection yields an empty list.
func (s *Service) GenerateShoppingList(ctx context.Context, userID string, recipeIDs []int64) (*ShoppingList, error) {
	lines, err := s.recipes.LineItemsForRecipes(ctx, userID, recipeIDs)
	if err != nil {
		return nil, err
	}

	owned, err := s.household.OwnedIngredientIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Replace(ctx, userID, Aggregate(lines, owned))
	if err != nil {
		return nil, err
	}

	logging.Info().
		Str("user_id", userID).
		Int("recipes", len(recipeIDs)).
		Int("lines", len(lines)).
		Int("owned", len(owned)).
		Int("items", len(list.Items)).
		Msg("shopping list generated")
	return list, nil
}

// CurrentList returns the user's list.
func (s *Service) CurrentList(ctx context.Context, userID string) (*ShoppingList, error) {
	return s.repo.GetByUser(ctx, userID)
}

// TogglePurchased sets the purchased flag of an item on the list.
func (s *Service) TogglePurchased(ctx context.Context, listID, itemID int64, purchased bool) error {
	if err := s.repo.SetPurchased(ctx, listID, itemID, purchased); err != nil {
		return err
	}
	logging.Debug().Int64("list_id", listID).Int64("item_id", itemID).Bool("purchased", purchased).Msg("shopping list item toggled")
	return nil
}

type customItemInput struct {
	Name string  `validate:"required,max=200"`
	Unit *string `validate:"omitempty,max=20"`
}

// AppendCustomItem adds a hand-written item to the end of the list.
func (s *Service) AppendCustomItem(ctx context.Context, listID int64, name string, amount *float64, unit *string) (*Item, error) {
	it, err := newCustomItem(name, amount, unit)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Append(ctx, listID, it)
	if err != nil {
		return nil, err
	}

	logging.Debug().Int64("list_id", listID).Str("name", it.CustomName).Msg("custom item appended")
	return item, nil
}

// AppendCustomItemForUser adds a hand-written item to the user's list. A
// user without a list gets one holding just this item. Invalid input is
// rejected before anything is stored.
func (s *Service) AppendCustomItemForUser(ctx context.Context, userID, name string, amount *float64, unit *string) (*Item, error) {
	it, err := newCustomItem(name, amount, unit)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.AppendForUser(ctx, userID, it)
	if err != nil {
		return nil, err
	}

	logging.Debug().Str("user_id", userID).Int64("list_id", item.ListID).Str("name", it.CustomName).Msg("custom item appended")
	return item, nil
}

func newCustomItem(name string, amount *float64, unit *string) (Item, error) {
	in := customItemInput{Name: strings.TrimSpace(name), Unit: unit}
	if in.Unit != nil {
		u := strings.TrimSpace(*in.Unit)
		in.Unit = &u
		if u == "" {
			in.Unit = nil
		}
	}
	if err := validation.ValidateStruct(in); err != nil {
		return Item{}, err
	}
	return Item{CustomName: in.Name, Amount: amount, Unit: in.Unit}, nil
}

// DeleteList removes the user's list. Deleting a missing list is not an
// error; the result reports whether anything was removed.
func (s *Service) DeleteList(ctx context.Context, userID string) (bool, error) {
	deleted, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	if !deleted {
		logging.Info().Str("user_id", userID).Msg("no shopping list to delete")
	}
	return deleted, nil
}

// FindItem returns the n-th item (1-based) of the user's list together with
// the list it belongs to.
func (s *Service) FindItem(ctx context.Context, userID string, n int) (*ShoppingList, Item, error) {
	list, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, Item{}, err
	}
	item, ok := list.ItemAt(n)
	if !ok {
		return nil, Item{}, apperr.NotFound("item %d is not on the list", n)
	}
	return list, item, nil
}
