// Package cli implements the mealmaster command line.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mealmaster/internal/app"
	"mealmaster/internal/config"
	"mealmaster/internal/database"
	"mealmaster/internal/ghost"
	"mealmaster/internal/logging"
)

const defaultUserID = "local"

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("!")
)

// env is opened before every command and shared by all of them.
type env struct {
	userID string
	dbPath string

	cfg *config.Config
	db  *database.DB
	app *app.App
}

// NewRootCmd builds the mealmaster command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&env{})
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mealmaster",
		Short: "MealMaster - recipes, pantry and shopping lists",
		Long: `MealMaster keeps your recipes and the ingredients you already own,
and turns a selection of recipes into one consolidated shopping list.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&e.userID, "user", "u", defaultUserID, "user whose data to work on")
	rootCmd.PersistentFlags().StringVar(&e.dbPath, "db", "", "database path (overrides DATABASE_PATH)")

	rootCmd.AddCommand(migrateCmd(e))
	rootCmd.AddCommand(recipeCmd(e))
	rootCmd.AddCommand(shopCmd(e))
	rootCmd.AddCommand(listCmd(e))
	rootCmd.AddCommand(checkCmd(e))
	rootCmd.AddCommand(addItemCmd(e))
	rootCmd.AddCommand(clearCmd(e))
	rootCmd.AddCommand(pantryCmd(e))
	rootCmd.AddCommand(clipCmd(e))
	rootCmd.AddCommand(ingestCmd(e))
	rootCmd.AddCommand(metricsCmd(e))

	return rootCmd
}

func (e *env) open() error {
	if e.app != nil {
		return nil
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if e.dbPath != "" {
		cfg.DatabasePath = e.dbPath
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	var ghostClient ghost.Client
	if cfg.GhostEnabled() {
		ghostClient = ghost.NewClient(cfg)
	}

	e.cfg = cfg
	e.db = db
	e.app = app.NewApp(cfg, db, ghostClient)
	return nil
}

func (e *env) close() error {
	if e.db == nil {
		return nil
	}
	err := e.db.Close()
	e.db, e.app = nil, nil
	return err
}
