package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mealmaster/internal/recipe"
)

func pantryCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Manage ingredients you already own",
		Long:  "Ingredients in the pantry are left off every shopping list, whatever the amounts.",
	}
	cmd.AddCommand(pantryAddCmd(e))
	cmd.AddCommand(pantryListCmd(e))
	cmd.AddCommand(pantryRemoveCmd(e))
	return cmd
}

func pantryAddCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "add [ingredient]",
		Short:   "Mark an ingredient as owned",
		Example: "  mealmaster pantry add 1 kg Flour",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := e.app.AddToPantry(cmd.Context(), e.userID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added pantry entry #%d: %s\n", okMark, entry.ID, entry.Ingredient.Name)
			return nil
		},
	}
}

func pantryListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List owned ingredients",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := e.app.Pantry(cmd.Context(), e.userID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Pantry is empty.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tINGREDIENT\tADDED")
			for _, entry := range entries {
				in := recipe.LineInput{Name: entry.Ingredient.Name, Amount: entry.Amount, Unit: entry.Unit}
				fmt.Fprintf(w, "%d\t%s\t%s\n", entry.ID, in.String(), entry.CreatedAt.Local().Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func pantryRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [entry id]",
		Short: "Remove a pantry entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.app.RemoveFromPantry(cmd.Context(), e.userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Removed pantry entry #%d\n", okMark, id)
			return nil
		},
	}
}
