package shopping

import (
	"strings"

	"mealmaster/internal/recipe"
)

// NormalizeUnit is the grouping key for a unit: trimmed and lower-cased.
func NormalizeUnit(unit string) string {
	return strings.ToLower(strings.TrimSpace(unit))
}

type groupKey struct {
	ingredientID int64
	unit         string
}

// Aggregate turns recipe line items into shopping list items.
//
// Lines whose ingredient is in owned are dropped. Lines with an amount and a
// unit are summed per (ingredient, normalized unit); the rest are passed
// through one by one with their original amount and unit. Sums come first in
// order of first appearance, followed by the pass-through lines in input order.
// Units are never converted.
func Aggregate(lines []recipe.LineItem, owned map[int64]struct{}) []Item {
	var sums, loose []Item
	index := make(map[groupKey]int)

	for _, line := range lines {
		if _, ok := owned[line.Ingredient.ID]; ok {
			continue
		}
		ingredientID := line.Ingredient.ID

		if !line.Structured() {
			loose = append(loose, Item{
				IngredientID:   &ingredientID,
				IngredientName: line.Ingredient.Name,
				Amount:         copyFloat(line.Amount),
				Unit:           copyString(line.Unit),
			})
			continue
		}

		key := groupKey{ingredientID: ingredientID, unit: NormalizeUnit(*line.Unit)}
		if i, ok := index[key]; ok {
			*sums[i].Amount += *line.Amount
			continue
		}

		amount := *line.Amount
		unit := key.unit
		index[key] = len(sums)
		sums = append(sums, Item{
			IngredientID:   &ingredientID,
			IngredientName: line.Ingredient.Name,
			Amount:         &amount,
			Unit:           &unit,
		})
	}

	items := append(sums, loose...)
	for i := range items {
		items[i].Position = i
	}
	return items
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
