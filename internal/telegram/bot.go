package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"mealmaster/internal/apperr"
	"mealmaster/internal/config"
	"mealmaster/internal/household"
	"mealmaster/internal/logging"
	"mealmaster/internal/recipe"
	"mealmaster/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const commandTimeout = 1 * time.Minute

// Service is the part of the application the bot talks to.
type Service interface {
	ListRecipes(ctx context.Context, userID string) ([]recipe.Recipe, error)
	Recipe(ctx context.Context, userID string, id int64) (*recipe.Recipe, error)
	GenerateShoppingList(ctx context.Context, userID string, recipeIDs []int64) (*shopping.ShoppingList, error)
	CurrentList(ctx context.Context, userID string) (*shopping.ShoppingList, error)
	CheckItem(ctx context.Context, userID string, n int, purchased bool) (shopping.Item, error)
	AddCustomItem(ctx context.Context, userID, line string) (*shopping.Item, error)
	ClearList(ctx context.Context, userID string) (bool, error)
	AddToPantry(ctx context.Context, userID, line string) (*household.Entry, error)
	Pantry(ctx context.Context, userID string) ([]household.Entry, error)
	RemoveFromPantry(ctx context.Context, userID string, entryID int64) error
	ClipRecipe(ctx context.Context, userID, url string) (*recipe.Recipe, error)
	MetricsReport(days int) (string, error)
}

// Sender delivers messages to Telegram. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot turns Telegram messages into shopping list commands.
type Bot struct {
	api Sender
	app Service
	cfg *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, app Service) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logging.Info().Str("account", api.Self.UserName).Msg("authorized on telegram")

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logging.Info().Str("description", resp.Description).Msg("webhook set")

	return newBot(api, app, cfg), nil
}

func newBot(api Sender, app Service, cfg *config.Config) *Bot {
	return &Bot{api: api, app: app, cfg: cfg}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logging.Warn().Err(err).Msg("error parsing update")
		http.Error(w, "bad update", http.StatusBadRequest)
		return
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !b.isAllowed(msg.From.ID) {
		logging.Warn().Int64("user_id", msg.From.ID).Str("username", msg.From.UserName).Msg("unauthorized access attempt")
		return
	}

	go b.processMessage(msg)
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	reply := b.handleCommand(ctx, msg.From.ID, msg.Text)
	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(out); err != nil {
		logging.Error().Err(err).Int64("chat_id", msg.Chat.ID).Msg("failed to send reply")
	}
}

// handleCommand runs one chat command and returns the Markdown reply.
func (b *Bot) handleCommand(ctx context.Context, telegramID int64, text string) string {
	userID := strconv.FormatInt(telegramID, 10)
	cmd, arg := parseCommand(text)

	switch cmd {
	case "/start", "/help":
		return helpText
	case "/recipes":
		recipes, err := b.app.ListRecipes(ctx, userID)
		if err != nil {
			return b.errorReply("listing recipes", err)
		}
		return formatRecipes(recipes)
	case "/recipe":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return "Usage: /recipe <id>"
		}
		rec, err := b.app.Recipe(ctx, userID, id)
		if err != nil {
			return b.errorReply("loading recipe", err)
		}
		return formatRecipe(rec)
	case "/shop":
		ids := recipe.ParseIDs(arg)
		if len(ids) == 0 {
			return "Usage: /shop <recipe ids>, e.g. /shop 1,3"
		}
		list, err := b.app.GenerateShoppingList(ctx, userID, ids)
		if err != nil {
			return b.errorReply("generating shopping list", err)
		}
		return formatList(list)
	case "/list":
		list, err := b.app.CurrentList(ctx, userID)
		if apperr.IsNotFound(err) {
			return "No shopping list yet. Use /shop to create one."
		}
		if err != nil {
			return b.errorReply("loading shopping list", err)
		}
		return formatList(list)
	case "/done", "/undo":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Sprintf("Usage: %s <item number>", cmd)
		}
		item, err := b.app.CheckItem(ctx, userID, n, cmd == "/done")
		if err != nil {
			return b.errorReply("updating item", err)
		}
		return fmt.Sprintf("%s %s", checkbox(item.Purchased), escape(item.String()))
	case "/add":
		if arg == "" {
			return "Usage: /add <item>, e.g. /add 2 rolls Tape"
		}
		item, err := b.app.AddCustomItem(ctx, userID, arg)
		if err != nil {
			return b.errorReply("adding item", err)
		}
		return fmt.Sprintf("➕ Added %s", escape(item.String()))
	case "/clear":
		existed, err := b.app.ClearList(ctx, userID)
		if err != nil {
			return b.errorReply("clearing list", err)
		}
		if !existed {
			return "There was no shopping list to clear."
		}
		return "🗑 Shopping list cleared."
	case "/have":
		if arg == "" {
			return "Usage: /have <ingredient>, e.g. /have 1 kg Flour"
		}
		entry, err := b.app.AddToPantry(ctx, userID, arg)
		if err != nil {
			return b.errorReply("updating pantry", err)
		}
		return fmt.Sprintf("🏠 %s will be left off your shopping lists.", escape(entry.Ingredient.Name))
	case "/pantry":
		entries, err := b.app.Pantry(ctx, userID)
		if err != nil {
			return b.errorReply("loading pantry", err)
		}
		return formatPantry(entries)
	case "/forget":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return "Usage: /forget <pantry entry id>"
		}
		if err := b.app.RemoveFromPantry(ctx, userID, id); err != nil {
			return b.errorReply("updating pantry", err)
		}
		return "🏠 Removed from pantry."
	case "/metrics":
		if telegramID != b.cfg.AdminTelegramID {
			return "⛔ *Access Denied*: Admin only."
		}
		report, err := b.app.MetricsReport(7)
		if err != nil {
			return b.errorReply("fetching metrics", err)
		}
		return "📊 *Usage & Health Report*\n\n" + escape(report)
	case "":
		if isURL(arg) {
			rec, err := b.app.ClipRecipe(ctx, userID, arg)
			if err != nil {
				return b.errorReply("clipping recipe", err)
			}
			return fmt.Sprintf("✅ *Recipe Saved!*\n\n#%d %s (%d ingredients)", rec.ID, escape(rec.Title), len(rec.LineItems))
		}
	}
	return "I didn't understand that. Send /help for the list of commands."
}

// errorReply shows user mistakes verbatim and hides internal failures.
func (b *Bot) errorReply(action string, err error) string {
	if apperr.IsNotFound(err) || apperr.IsValidation(err) {
		return "❌ " + escape(err.Error())
	}
	logging.Error().Err(err).Str("action", action).Msg("bot command failed")
	return fmt.Sprintf("❌ *Error %s.* Please try again later.", action)
}

// parseCommand splits "/shop@MyBot 1,3" into ("/shop", "1,3"). Text that is
// not a command is returned as the argument with an empty command.
func parseCommand(text string) (string, string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd, arg, _ := strings.Cut(text, " ")
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}

func isURL(s string) bool {
	return !strings.ContainsAny(s, " \n") && (strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://"))
}

const helpText = `🛒 *MealMaster*

/recipes - list your recipes
/recipe <id> - show one recipe
/shop 1,3 - build a shopping list from recipes
/list - show the shopping list
/done <n> - tick item n
/undo <n> - untick item n
/add <item> - add an extra item
/clear - delete the shopping list
/have <ingredient> - mark an ingredient as owned
/pantry - show owned ingredients
/forget <id> - remove a pantry entry

Send a recipe link to save it.`
