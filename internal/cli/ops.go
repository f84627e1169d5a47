package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Opening the database already applied pending migrations.
			fmt.Fprintf(cmd.OutOrStdout(), "%s Database ready at %s\n", okMark, e.db.Path)
			return nil
		},
	}
}

func clipCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "clip [url]",
		Short: "Import a recipe from a web page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := e.app.ClipRecipe(cmd.Context(), e.userID, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Saved recipe #%d: %s (%d ingredients)\n", okMark, rec.ID, rec.Title, len(rec.LineItems))
			return nil
		},
	}
}

func ingestCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Import recipe posts from Ghost",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := e.app.IngestFromGhost(cmd.Context(), e.userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d recipes from Ghost\n", okMark, n)
			return nil
		},
	}
}

func metricsCmd(e *env) *cobra.Command {
	var (
		days        int
		cleanupDays int
	)
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Show usage and health, or prune old run metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cleanupDays > 0 {
				n, err := e.app.CleanupMetrics(cleanupDays)
				if err != nil {
					return fmt.Errorf("cleanup failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %d old metric records.\n", okMark, n)
				return nil
			}

			report, err := e.app.MetricsReport(days)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 7, "days of usage to report")
	cmd.Flags().IntVar(&cleanupDays, "cleanup-days", 0, "delete run metrics older than N days instead of reporting")
	return cmd
}
