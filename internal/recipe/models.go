package recipe

import (
	"strconv"
	"strings"
	"time"

	"mealmaster/internal/ingredient"
)

// Recipe is a user's recipe and its ordered ingredient lines.
type Recipe struct {
	ID           int64      `json:"id"`
	UserID       string     `json:"user_id"`
	Title        string     `json:"title"`
	Instructions string     `json:"instructions"`
	LineItems    []LineItem `json:"line_items,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LineItem is one ingredient of a recipe. Amount and Unit are optional.
type LineItem struct {
	ID         int64                 `json:"id"`
	RecipeID   int64                 `json:"recipe_id"`
	Ingredient ingredient.Ingredient `json:"ingredient"`
	Amount     *float64              `json:"amount,omitempty"`
	Unit       *string               `json:"unit,omitempty"`
	Position   int                   `json:"position"`
}

// Structured reports whether the line has both an amount and a non-blank
// unit. Only structured lines are ever summed together.
func (l LineItem) Structured() bool {
	return l.Amount != nil && l.Unit != nil && strings.TrimSpace(*l.Unit) != ""
}

// LineInput is an ingredient line as entered by a user or scraped from a page.
type LineInput struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Amount *float64 `json:"amount,omitempty"`
	Unit   *string  `json:"unit,omitempty" validate:"omitempty,max=20"`
}

// String renders the line the way ParseLine reads it back, e.g. "200 g Flour".
func (l LineInput) String() string {
	var parts []string
	if l.Amount != nil {
		parts = append(parts, strconv.FormatFloat(*l.Amount, 'f', -1, 64))
	}
	if l.Unit != nil {
		parts = append(parts, *l.Unit)
	}
	return strings.Join(append(parts, l.Name), " ")
}

// NewRecipe is the input for creating or replacing a recipe.
type NewRecipe struct {
	UserID       string      `validate:"required"`
	Title        string      `validate:"required,max=100"`
	Instructions string
	Lines        []LineInput `validate:"dive"`
}

// Draft is a recipe extracted from an external source, not yet owned by a user.
type Draft struct {
	Title        string      `json:"title"`
	Instructions string      `json:"instructions"`
	Lines        []LineInput `json:"lines"`
	SourceURL    string      `json:"source_url,omitempty"`
}

// ForUser turns the draft into creation input for userID.
func (d Draft) ForUser(userID string) NewRecipe {
	instructions := d.Instructions
	if d.SourceURL != "" {
		if instructions != "" {
			instructions += "\n\n"
		}
		instructions += "Source: " + d.SourceURL
	}
	return NewRecipe{
		UserID:       userID,
		Title:        d.Title,
		Instructions: instructions,
		Lines:        d.Lines,
	}
}

// normalize trims text fields and drops lines without a name.
func (in NewRecipe) normalize() NewRecipe {
	out := NewRecipe{
		UserID:       strings.TrimSpace(in.UserID),
		Title:        strings.TrimSpace(in.Title),
		Instructions: strings.TrimSpace(in.Instructions),
	}
	for _, l := range in.Lines {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			continue
		}
		out.Lines = append(out.Lines, LineInput{Name: name, Amount: l.Amount, Unit: cleanUnit(l.Unit)})
	}
	return out
}

func cleanUnit(u *string) *string {
	if u == nil {
		return nil
	}
	s := strings.TrimSpace(*u)
	if s == "" {
		return nil
	}
	return &s
}
