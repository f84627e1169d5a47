package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mealmaster/internal/apperr"
	"mealmaster/internal/recipe"
	"mealmaster/internal/shopping"
)

func shopCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "shop [recipe ids...]",
		Short:   "Build a new shopping list from recipes",
		Long:    "Replaces the current shopping list with one consolidated list of everything the selected recipes need, minus what is in the pantry.",
		Example: "  mealmaster shop 1 3\n  mealmaster shop 1,3",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := recipe.ParseIDs(strings.Join(args, ","))
			if len(ids) == 0 {
				return errors.New("no valid recipe ids given")
			}
			list, err := e.app.GenerateShoppingList(cmd.Context(), e.userID, ids)
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func listCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := e.app.CurrentList(cmd.Context(), e.userID)
			if apperr.IsNotFound(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No shopping list yet. Run 'mealmaster shop' first.")
				return nil
			}
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), list)
			return nil
		},
	}
}

func checkCmd(e *env) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "check [item number]",
		Short: "Mark a shopping list item as purchased",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid item number %q", args[0])
			}
			item, err := e.app.CheckItem(cmd.Context(), e.userID, n, !undo)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", checkbox(item.Purchased), item.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "mark the item as still needed")
	return cmd
}

func addItemCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "add-item [item]",
		Short:   "Add an extra item to the shopping list",
		Example: "  mealmaster add-item 2 rolls Tape",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := e.app.AddCustomItem(cmd.Context(), e.userID, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", okMark, item.String())
			return nil
		},
	}
}

func clearCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the shopping list",
		RunE: func(cmd *cobra.Command, args []string) error {
			existed, err := e.app.ClearList(cmd.Context(), e.userID)
			if err != nil {
				return err
			}
			if !existed {
				fmt.Fprintf(cmd.OutOrStdout(), "%s There was no shopping list to clear.\n", warnMark)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Shopping list cleared.\n", okMark)
			return nil
		},
	}
}

func printList(out io.Writer, list *shopping.ShoppingList) {
	fmt.Fprintf(out, "%s (%d of %d left)\n\n", color.New(color.Bold).Sprint("Shopping List"), list.Remaining(), len(list.Items))
	if len(list.Items) == 0 {
		fmt.Fprintln(out, "  Nothing to buy.")
		return
	}
	for i, item := range list.Items {
		line := item.String()
		if item.Purchased {
			line = color.New(color.Faint).Sprint(line)
		}
		fmt.Fprintf(out, "%3d. %s %s\n", i+1, checkbox(item.Purchased), line)
	}
}

func checkbox(purchased bool) string {
	if purchased {
		return "[x]"
	}
	return "[ ]"
}
