package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultDatabasePath = "data/mealmaster.db"
	defaultPort         = "8080"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	LogLevel     string
	LogFormat    string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
	Port                   string

	// Ghost Config (optional recipe source)
	GhostURL        string
	GhostContentKey string
	GhostAdminKey   string
}

// NewFromEnv creates a new Config object from environment variables.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func NewFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = defaultDatabasePath
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "console"
	}
	if logFormat != "console" && logFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be 'console' or 'json', got %q", logFormat)
	}

	allowed, err := parseIDList(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
	}

	var adminID int64
	if s := os.Getenv("ADMIN_TELEGRAM_ID"); s != "" {
		adminID, err = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = defaultPort
	}

	ghostContentKey := os.Getenv("GHOST_CONTENT_API_KEY")
	ghostAdminKey := os.Getenv("GHOST_ADMIN_API_KEY")

	return &Config{
		DatabasePath:           databasePath,
		LogLevel:               os.Getenv("LOG_LEVEL"),
		LogFormat:              logFormat,
		TelegramBotToken:       os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowed,
		AdminTelegramID:        adminID,
		Port:                   port,
		GhostURL:               strings.TrimRight(os.Getenv("GHOST_API_URL"), "/"),
		GhostContentKey:        ghostContentKey,
		GhostAdminKey:          ghostAdminKey,
	}, nil
}

// RequireTelegram reports the first missing variable the bot needs.
func (c *Config) RequireTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable not set")
	}
	return nil
}

// GhostEnabled is true when recipes can be read from Ghost.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != "" && c.GhostContentKey != ""
}

// CanPublishToGhost is true when the admin key needed for publishing is set.
func (c *Config) CanPublishToGhost() bool {
	return c.GhostURL != "" && c.GhostAdminKey != ""
}

func parseIDList(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
