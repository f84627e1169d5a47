package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mealmaster/internal/apperr"
	"mealmaster/internal/clipper"
	"mealmaster/internal/config"
	"mealmaster/internal/database"
	"mealmaster/internal/ghost"
	"mealmaster/internal/household"
	"mealmaster/internal/ingredient"
	"mealmaster/internal/logging"
	"mealmaster/internal/metrics"
	"mealmaster/internal/recipe"
	"mealmaster/internal/shopping"
	"mealmaster/internal/storage"
)

// App holds the application's dependencies. Every front-end (CLI, bot) goes
// through it so they share the same behaviour.
type App struct {
	cfg           *config.Config
	db            *database.DB
	recipeRepo    *recipe.Repository
	inventory     *household.Inventory
	shopping      *shopping.Service
	metricsStore  *metrics.Store
	recipeClipper *clipper.Clipper
	ghostClient   ghost.Client
}

// NewApp wires the repositories and services around db. ghostClient may be
// nil when Ghost is not configured.
func NewApp(cfg *config.Config, db *database.DB, ghostClient ghost.Client) *App {
	catalog := ingredient.NewCatalog(db.SQL)
	recipeRepo := recipe.NewRepository(db.SQL, catalog)
	inventory := household.NewInventory(db.SQL, catalog)

	var publisher ghost.Client
	if ghostClient != nil && cfg.CanPublishToGhost() {
		publisher = ghostClient
	}

	return &App{
		cfg:           cfg,
		db:            db,
		recipeRepo:    recipeRepo,
		inventory:     inventory,
		shopping:      shopping.NewService(shopping.NewRepository(db.SQL), recipeRepo, inventory),
		metricsStore:  metrics.NewStore(db.SQL),
		recipeClipper: clipper.NewClipper(publisher),
		ghostClient:   ghostClient,
	}
}

// CreateRecipe stores a new recipe.
func (a *App) CreateRecipe(ctx context.Context, in recipe.NewRecipe) (*recipe.Recipe, error) {
	rec, err := a.recipeRepo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("user_id", rec.UserID).Int64("recipe_id", rec.ID).Int("lines", len(rec.LineItems)).Msg("recipe created")
	return rec, nil
}

// UpdateRecipe replaces the title, instructions and lines of one of the
// user's recipes. Shopping lists already generated are not touched.
func (a *App) UpdateRecipe(ctx context.Context, id int64, in recipe.NewRecipe) (*recipe.Recipe, error) {
	rec, err := a.recipeRepo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("user_id", rec.UserID).Int64("recipe_id", rec.ID).Int("lines", len(rec.LineItems)).Msg("recipe updated")
	return rec, nil
}

// Recipe returns one of the user's recipes.
func (a *App) Recipe(ctx context.Context, userID string, id int64) (*recipe.Recipe, error) {
	rec, err := a.recipeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.UserID != userID {
		return nil, apperr.NotFound("recipe %d not found", id)
	}
	return rec, nil
}

// ListRecipes returns the user's recipes.
func (a *App) ListRecipes(ctx context.Context, userID string) ([]recipe.Recipe, error) {
	return a.recipeRepo.ListByUser(ctx, userID)
}

// DeleteRecipe removes one of the user's recipes.
func (a *App) DeleteRecipe(ctx context.Context, userID string, id int64) error {
	if err := a.recipeRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	logging.Info().Str("user_id", userID).Int64("recipe_id", id).Msg("recipe deleted")
	return nil
}

// GenerateShoppingList replaces the user's list with one built from the
// selected recipes and records a run metric.
func (a *App) GenerateShoppingList(ctx context.Context, userID string, recipeIDs []int64) (*shopping.ShoppingList, error) {
	start := time.Now()
	list, err := a.shopping.GenerateShoppingList(ctx, userID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate shopping list: %w", err)
	}

	if err := a.metricsStore.Record(metrics.Measure("generate_shopping_list", userID, len(recipeIDs), len(list.Items), start)); err != nil {
		logging.Warn().Err(err).Msg("failed to record metrics")
	}
	return list, nil
}

// CurrentList returns the user's shopping list.
func (a *App) CurrentList(ctx context.Context, userID string) (*shopping.ShoppingList, error) {
	return a.shopping.CurrentList(ctx, userID)
}

// CheckItem marks the n-th item (1-based) of the user's list as purchased
// or, with purchased false, as still needed.
func (a *App) CheckItem(ctx context.Context, userID string, n int, purchased bool) (shopping.Item, error) {
	list, item, err := a.shopping.FindItem(ctx, userID, n)
	if err != nil {
		return shopping.Item{}, err
	}
	if err := a.shopping.TogglePurchased(ctx, list.ID, item.ID, purchased); err != nil {
		return shopping.Item{}, err
	}
	item.Purchased = purchased
	return item, nil
}

// AddCustomItem parses a free-text line such as "2 rolls Tape" and appends
// it to the user's list. A user without a list gets one holding the item;
// a blank line is rejected without creating anything.
func (a *App) AddCustomItem(ctx context.Context, userID, line string) (*shopping.Item, error) {
	in := recipe.ParseLine(line)
	return a.shopping.AppendCustomItemForUser(ctx, userID, in.Name, in.Amount, in.Unit)
}

// ClearList deletes the user's list and reports whether one existed.
func (a *App) ClearList(ctx context.Context, userID string) (bool, error) {
	return a.shopping.DeleteList(ctx, userID)
}

// AddToPantry parses a free-text line and records the ingredient as owned.
func (a *App) AddToPantry(ctx context.Context, userID, line string) (*household.Entry, error) {
	in := recipe.ParseLine(line)
	return a.inventory.AddEntry(ctx, userID, in.Name, in.Amount, in.Unit)
}

// Pantry lists the user's household entries.
func (a *App) Pantry(ctx context.Context, userID string) ([]household.Entry, error) {
	return a.inventory.List(ctx, userID)
}

// RemoveFromPantry deletes one household entry.
func (a *App) RemoveFromPantry(ctx context.Context, userID string, entryID int64) error {
	return a.inventory.Remove(ctx, userID, entryID)
}

// ClipRecipe imports the recipe found at url into the user's recipes.
func (a *App) ClipRecipe(ctx context.Context, userID, url string) (*recipe.Recipe, error) {
	draft, err := a.recipeClipper.ClipURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to clip recipe: %w", err)
	}
	return a.CreateRecipe(ctx, draft.ForUser(userID))
}

// IngestFromGhost imports every Ghost post as a recipe of userID, skipping
// titles the user already has. It returns the number of recipes created.
func (a *App) IngestFromGhost(ctx context.Context, userID string) (int, error) {
	if a.ghostClient == nil {
		return 0, apperr.Invalid("ghost is not configured")
	}

	posts, err := a.ghostClient.FetchRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch recipes from ghost: %w", err)
	}
	logging.Info().Int("posts", len(posts)).Msg("fetched recipe posts from ghost")

	titles, err := a.recipeTitles(ctx, userID)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, post := range posts {
		if _, ok := titles[post.Title]; ok {
			logging.Debug().Str("title", post.Title).Msg("recipe already imported, skipping")
			continue
		}

		draft, err := clipper.ParseHTML(strings.NewReader(post.HTML))
		if err != nil {
			logging.Warn().Err(err).Str("post_id", post.ID).Msg("failed to parse ghost post")
			continue
		}
		draft.Title = post.Title
		draft.SourceURL = post.URL

		if _, err := a.CreateRecipe(ctx, draft.ForUser(userID)); err != nil {
			logging.Warn().Err(err).Str("post_id", post.ID).Msg("failed to save ghost recipe")
			continue
		}
		titles[post.Title] = struct{}{}
		imported++
	}

	logging.Info().Int("imported", imported).Str("user_id", userID).Msg("ghost ingestion complete")
	return imported, nil
}

// ExportRecipes writes every recipe of userID to dir as JSON files and
// returns how many were written.
func (a *App) ExportRecipes(ctx context.Context, userID, dir string) (int, error) {
	store, err := storage.NewRecipeStore(dir)
	if err != nil {
		return 0, err
	}
	recipes, err := a.recipeRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	for _, summary := range recipes {
		rec, err := a.recipeRepo.Get(ctx, summary.ID)
		if err != nil {
			return 0, err
		}
		if err := store.Save(storage.Archive(*rec)); err != nil {
			return 0, err
		}
	}
	logging.Info().Str("user_id", userID).Int("recipes", len(recipes)).Str("dir", dir).Msg("recipes exported")
	return len(recipes), nil
}

// ImportRecipes creates a recipe for every archive in dir whose title the
// user does not have yet. It returns the number of recipes created.
func (a *App) ImportRecipes(ctx context.Context, userID, dir string) (int, error) {
	store, err := storage.NewRecipeStore(dir)
	if err != nil {
		return 0, err
	}
	archived, err := store.LoadAll()
	if err != nil {
		return 0, err
	}

	titles, err := a.recipeTitles(ctx, userID)
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, arc := range archived {
		if _, ok := titles[arc.Title]; ok {
			continue
		}
		_, err := a.CreateRecipe(ctx, recipe.NewRecipe{
			UserID:       userID,
			Title:        arc.Title,
			Instructions: arc.Instructions,
			Lines:        arc.Lines,
		})
		if err != nil {
			return imported, fmt.Errorf("failed to import %q: %w", arc.Title, err)
		}
		titles[arc.Title] = struct{}{}
		imported++
	}
	return imported, nil
}

func (a *App) recipeTitles(ctx context.Context, userID string) (map[string]struct{}, error) {
	existing, err := a.recipeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]struct{}, len(existing))
	for _, rec := range existing {
		titles[rec.Title] = struct{}{}
	}
	return titles, nil
}

// MetricsReport renders process health and recent list generation usage.
func (a *App) MetricsReport(days int) (string, error) {
	usage, err := a.metricsStore.GetDailyUsage(days)
	if err != nil {
		return "", err
	}
	return metrics.Report(metrics.GetSysHealth(a.db.Path), usage), nil
}

// CleanupMetrics deletes run metrics older than days.
func (a *App) CleanupMetrics(days int) (int64, error) {
	return a.metricsStore.Cleanup(days)
}
