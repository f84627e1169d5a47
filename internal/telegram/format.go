package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"mealmaster/internal/household"
	"mealmaster/internal/recipe"
	"mealmaster/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func checkbox(purchased bool) string {
	if purchased {
		return "✅"
	}
	return "⬜"
}

func formatList(list *shopping.ShoppingList) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *Shopping List* (%d of %d left)\n\n", list.Remaining(), len(list.Items)))
	if len(list.Items) == 0 {
		sb.WriteString("_Nothing to buy._\n")
	}
	for i, item := range list.Items {
		sb.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, checkbox(item.Purchased), escape(item.String())))
	}
	return sb.String()
}

func formatRecipes(recipes []recipe.Recipe) string {
	if len(recipes) == 0 {
		return "No recipes yet. Send a recipe link to save one."
	}
	var sb strings.Builder
	sb.WriteString("📖 *Your Recipes*\n\n")
	for _, rec := range recipes {
		sb.WriteString(fmt.Sprintf("#%d %s\n", rec.ID, escape(rec.Title)))
	}
	return sb.String()
}

func formatRecipe(rec *recipe.Recipe) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📖 *%s* (#%d)\n\n", escape(rec.Title), rec.ID))
	for _, li := range rec.LineItems {
		sb.WriteString("• " + escape(formatLine(li.Amount, li.Unit, li.Ingredient.Name)) + "\n")
	}
	if rec.Instructions != "" {
		sb.WriteString("\n" + escape(rec.Instructions) + "\n")
	}
	return sb.String()
}

func formatPantry(entries []household.Entry) string {
	if len(entries) == 0 {
		return "Your pantry is empty. Use /have to add ingredients."
	}
	var sb strings.Builder
	sb.WriteString("🏠 *Pantry*\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("#%d %s\n", e.ID, escape(formatLine(e.Amount, e.Unit, e.Ingredient.Name))))
	}
	return sb.String()
}

func formatLine(amount *float64, unit *string, name string) string {
	var parts []string
	if amount != nil {
		parts = append(parts, strconv.FormatFloat(*amount, 'f', -1, 64))
	}
	if unit != nil && *unit != "" {
		parts = append(parts, *unit)
	}
	return strings.Join(append(parts, name), " ")
}
