package shopping

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// ShoppingList is a user's single active list.
type ShoppingList struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Items     []Item    `json:"items"`
}

// Item is either an aggregated ingredient (IngredientID set) or a custom
// entry (CustomName set). Exactly one of the two is present.
type Item struct {
	ID             int64    `json:"id"`
	ListID         int64    `json:"list_id"`
	Position       int      `json:"position"`
	IngredientID   *int64   `json:"ingredient_id,omitempty"`
	IngredientName string   `json:"ingredient_name,omitempty"`
	CustomName     string   `json:"custom_name,omitempty"`
	Amount         *float64 `json:"amount,omitempty"`
	Unit           *string  `json:"unit,omitempty"`
	Purchased      bool     `json:"purchased"`
}

// IsCustom reports whether the item was added by hand.
func (i Item) IsCustom() bool {
	return i.IngredientID == nil
}

// Name is the ingredient name or the custom name.
func (i Item) Name() string {
	if i.IsCustom() {
		return i.CustomName
	}
	return i.IngredientName
}

// Quantity renders amount and unit for display, e.g. "300 g" or "0.33 l".
// Amounts are rounded to two decimals here and nowhere else.
func (i Item) Quantity() string {
	var parts []string
	if i.Amount != nil {
		parts = append(parts, strconv.FormatFloat(math.Round(*i.Amount*100)/100, 'f', -1, 64))
	}
	if i.Unit != nil && strings.TrimSpace(*i.Unit) != "" {
		parts = append(parts, strings.TrimSpace(*i.Unit))
	}
	return strings.Join(parts, " ")
}

// String renders the item as a single checklist line.
func (i Item) String() string {
	if q := i.Quantity(); q != "" {
		return q + " " + i.Name()
	}
	return i.Name()
}

// ItemAt returns the n-th item, counting from 1 as lists are displayed.
func (l *ShoppingList) ItemAt(n int) (Item, bool) {
	if l == nil || n < 1 || n > len(l.Items) {
		return Item{}, false
	}
	return l.Items[n-1], true
}

// Remaining counts the items not yet purchased.
func (l *ShoppingList) Remaining() int {
	n := 0
	for _, it := range l.Items {
		if !it.Purchased {
			n++
		}
	}
	return n
}
