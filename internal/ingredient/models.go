package ingredient

// Ingredient is a canonical ingredient name shared by recipes, household
// entries and shopping list items. Names are trimmed and case-sensitive.
type Ingredient struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
