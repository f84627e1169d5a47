package config

import (
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		setEnv("DATABASE_PATH", "")
		setEnv("LOG_FORMAT", "")
		setEnv("PORT", "")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "")
		setEnv("ADMIN_TELEGRAM_ID", "")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/mealmaster.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.LogFormat != "console" {
			t.Errorf("Expected default LogFormat 'console', got '%s'", cfg.LogFormat)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default Port '8080', got '%s'", cfg.Port)
		}
	})

	t.Run("Success", func(t *testing.T) {
		setEnv("DATABASE_PATH", "/tmp/mm.db")
		setEnv("LOG_FORMAT", "json")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "12, 34,")
		setEnv("ADMIN_TELEGRAM_ID", "12")
		setEnv("GHOST_API_URL", "http://ghost.test/")
		setEnv("GHOST_CONTENT_API_KEY", "ghost_key")

		cfg, err := NewFromEnv()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "/tmp/mm.db" {
			t.Errorf("Expected DatabasePath '/tmp/mm.db', got '%s'", cfg.DatabasePath)
		}
		if len(cfg.TelegramAllowedUserIDs) != 2 || cfg.TelegramAllowedUserIDs[1] != 34 {
			t.Errorf("Expected allowed IDs [12 34], got %v", cfg.TelegramAllowedUserIDs)
		}
		if cfg.AdminTelegramID != 12 {
			t.Errorf("Expected AdminTelegramID 12, got %d", cfg.AdminTelegramID)
		}
		if cfg.GhostURL != "http://ghost.test" {
			t.Errorf("Expected trailing slash trimmed, got '%s'", cfg.GhostURL)
		}
		if !cfg.GhostEnabled() {
			t.Error("Expected Ghost to be enabled")
		}
		if cfg.CanPublishToGhost() {
			t.Error("Did not expect publishing without an admin key")
		}
	})

	t.Run("InvalidLogFormat", func(t *testing.T) {
		setEnv("LOG_FORMAT", "xml")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for invalid LOG_FORMAT, got nil")
		}
	})

	t.Run("InvalidAllowedIDs", func(t *testing.T) {
		setEnv("LOG_FORMAT", "")
		setEnv("TELEGRAM_ALLOWED_USER_IDS", "12,abc")

		_, err := NewFromEnv()
		if err == nil {
			t.Fatal("Expected an error for a non-numeric user id, got nil")
		}
	})
}

func TestRequireTelegram(t *testing.T) {
	cfg := &Config{TelegramBotToken: "token"}

	err := cfg.RequireTelegram()
	if err == nil {
		t.Fatal("Expected an error for missing webhook URL, got nil")
	}
	expectedError := "TELEGRAM_WEBHOOK_URL environment variable not set"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}

	cfg.TelegramWebhookURL = "https://bot.test/webhook"
	cfg.TelegramAllowedUserIDs = []int64{1}
	if err := cfg.RequireTelegram(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
