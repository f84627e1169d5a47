package household

import (
	"time"

	"mealmaster/internal/ingredient"
)

// Entry marks an ingredient as already owned by a user. Amount and Unit are
// informational; presence alone keeps the ingredient off shopping lists.
type Entry struct {
	ID         int64                 `json:"id"`
	UserID     string                `json:"user_id"`
	Ingredient ingredient.Ingredient `json:"ingredient"`
	Amount     *float64              `json:"amount,omitempty"`
	Unit       *string               `json:"unit,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}
