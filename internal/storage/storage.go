package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"mealmaster/internal/recipe"
)

// ArchivedRecipe is the on-disk form of a recipe. Ingredient lines are kept
// as structured inputs so they import back exactly.
type ArchivedRecipe struct {
	ID           int64              `json:"id"`
	Title        string             `json:"title"`
	Instructions string             `json:"instructions,omitempty"`
	Lines        []recipe.LineInput `json:"lines"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Archive converts a stored recipe to its archived form.
func Archive(rec recipe.Recipe) ArchivedRecipe {
	lines := make([]recipe.LineInput, 0, len(rec.LineItems))
	for _, li := range rec.LineItems {
		lines = append(lines, recipe.LineInput{Name: li.Ingredient.Name, Amount: li.Amount, Unit: li.Unit})
	}
	return ArchivedRecipe{
		ID:           rec.ID,
		Title:        rec.Title,
		Instructions: rec.Instructions,
		Lines:        lines,
		UpdatedAt:    rec.UpdatedAt,
	}
}

// RecipeStore provides a file-based archive of recipes, one JSON file per
// recipe version.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore and ensures the base directory exists.
func NewRecipeStore(basePath string) (*RecipeStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &RecipeStore{basePath: basePath}, nil
}

// versionStamp makes the timestamp safe for filenames.
func versionStamp(t time.Time) string {
	return strings.ReplaceAll(t.UTC().Format(time.RFC3339), ":", "-")
}

// getVersionedPath returns the full path for a given recipe ID and version.
func (s *RecipeStore) getVersionedPath(recipeID int64, updatedAt time.Time) string {
	filename := fmt.Sprintf("%d_%s.json", recipeID, versionStamp(updatedAt))
	return filepath.Join(s.basePath, filename)
}

// Save writes rec, replacing any older version of the same recipe.
func (s *RecipeStore) Save(rec ArchivedRecipe) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := s.RemoveStaleVersions(rec.ID); err != nil {
		return err
	}

	filePath := s.getVersionedPath(rec.ID, rec.UpdatedAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write recipe file: %w", err)
	}
	return nil
}

// Load retrieves a recipe from a specific version file.
func (s *RecipeStore) Load(recipeID int64, updatedAt time.Time) (*ArchivedRecipe, error) {
	return readRecipe(s.getVersionedPath(recipeID, updatedAt))
}

// Exists checks if a specific version of a recipe file exists.
func (s *RecipeStore) Exists(recipeID int64, updatedAt time.Time) bool {
	_, err := os.Stat(s.getVersionedPath(recipeID, updatedAt))
	return !os.IsNotExist(err)
}

// LoadAll reads every archived recipe, ordered by recipe ID.
func (s *RecipeStore) LoadAll() ([]ArchivedRecipe, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list recipe files: %w", err)
	}

	var recipes []ArchivedRecipe
	for _, match := range matches {
		if _, err := strconv.ParseInt(strings.SplitN(filepath.Base(match), "_", 2)[0], 10, 64); err != nil {
			continue
		}
		rec, err := readRecipe(match)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *rec)
	}

	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes, nil
}

// RemoveStaleVersions removes all files associated with a recipeID.
func (s *RecipeStore) RemoveStaleVersions(recipeID int64) error {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%d_*.json", recipeID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob stale files: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove stale file %s: %w", match, err)
		}
	}
	return nil
}

func readRecipe(path string) (*ArchivedRecipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}

	var rec ArchivedRecipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}
