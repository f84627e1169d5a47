package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mealmaster/internal/recipe"
)

func recipeCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Manage recipes",
	}
	cmd.AddCommand(recipeAddCmd(e))
	cmd.AddCommand(recipeEditCmd(e))
	cmd.AddCommand(recipeListCmd(e))
	cmd.AddCommand(recipeShowCmd(e))
	cmd.AddCommand(recipeDeleteCmd(e))
	cmd.AddCommand(recipeExportCmd(e))
	cmd.AddCommand(recipeImportCmd(e))
	return cmd
}

func recipeAddCmd(e *env) *cobra.Command {
	var (
		title        string
		instructions string
		lines        []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a recipe",
		Example: `  mealmaster recipe add --title Pancakes \
    --line "200 g Flour" --line "500 ml Milk" --line Salt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := e.app.CreateRecipe(cmd.Context(), recipe.NewRecipe{
				UserID:       e.userID,
				Title:        title,
				Instructions: instructions,
				Lines:        parseLines(lines),
			})
			if err != nil {
				return fmt.Errorf("failed to create recipe: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Created recipe #%d: %s (%d ingredients)\n", okMark, rec.ID, rec.Title, len(rec.LineItems))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "recipe title")
	cmd.Flags().StringVarP(&instructions, "instructions", "i", "", "cooking instructions")
	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, `ingredient line such as "200 g Flour" (repeatable)`)
	cmd.MarkFlagRequired("title")
	return cmd
}

func recipeEditCmd(e *env) *cobra.Command {
	var (
		title        string
		instructions string
		lines        []string
	)
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Replace a recipe's title, instructions or ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := e.app.Recipe(cmd.Context(), e.userID, id)
			if err != nil {
				return err
			}

			in := recipe.NewRecipe{
				UserID:       e.userID,
				Title:        current.Title,
				Instructions: current.Instructions,
				Lines:        linesOf(current),
			}
			if cmd.Flags().Changed("title") {
				in.Title = title
			}
			if cmd.Flags().Changed("instructions") {
				in.Instructions = instructions
			}
			if cmd.Flags().Changed("line") {
				in.Lines = parseLines(lines)
			}

			rec, err := e.app.UpdateRecipe(cmd.Context(), id, in)
			if err != nil {
				return fmt.Errorf("failed to update recipe: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated recipe #%d: %s (%d ingredients)\n", okMark, rec.ID, rec.Title, len(rec.LineItems))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&instructions, "instructions", "i", "", "new instructions")
	cmd.Flags().StringArrayVarP(&lines, "line", "l", nil, "replacement ingredient lines (repeatable)")
	return cmd
}

func recipeListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		RunE: func(cmd *cobra.Command, args []string) error {
			recipes, err := e.app.ListRecipes(cmd.Context(), e.userID)
			if err != nil {
				return fmt.Errorf("failed to list recipes: %w", err)
			}
			if len(recipes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recipes found.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tUPDATED")
			for _, rec := range recipes {
				fmt.Fprintf(w, "%d\t%s\t%s\n", rec.ID, rec.Title, rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func recipeShowCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rec, err := e.app.Recipe(cmd.Context(), e.userID, id)
			if err != nil {
				return err
			}
			printRecipe(cmd.OutOrStdout(), rec)
			return nil
		},
	}
}

func recipeDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := e.app.DeleteRecipe(cmd.Context(), e.userID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted recipe #%d\n", okMark, id)
			return nil
		},
	}
}

func recipeExportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "export [dir]",
		Short: "Write every recipe to a directory as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := e.app.ExportRecipes(cmd.Context(), e.userID, args[0])
			if err != nil {
				return fmt.Errorf("export failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d recipes to %s\n", okMark, n, args[0])
			return nil
		},
	}
}

func recipeImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import [dir]",
		Short: "Create recipes from a directory written by export",
		Long:  "Recipes whose title already exists are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := e.app.ImportRecipes(cmd.Context(), e.userID, args[0])
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d recipes\n", okMark, n)
			return nil
		},
	}
}

func printRecipe(out io.Writer, rec *recipe.Recipe) {
	fmt.Fprintf(out, "%s (#%d)\n\n", color.New(color.Bold).Sprint(rec.Title), rec.ID)
	for _, in := range linesOf(rec) {
		fmt.Fprintf(out, "  - %s\n", in.String())
	}
	if rec.Instructions != "" {
		fmt.Fprintf(out, "\n%s\n", rec.Instructions)
	}
}

func linesOf(rec *recipe.Recipe) []recipe.LineInput {
	lines := make([]recipe.LineInput, 0, len(rec.LineItems))
	for _, li := range rec.LineItems {
		lines = append(lines, recipe.LineInput{Name: li.Ingredient.Name, Amount: li.Amount, Unit: li.Unit})
	}
	return lines
}

func parseLines(raw []string) []recipe.LineInput {
	lines := make([]recipe.LineInput, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		lines = append(lines, recipe.ParseLine(s))
	}
	return lines
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
