package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mealmaster/internal/database"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "metrics.db")
	db, err := database.NewDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db.SQL), dbPath
}

func TestStore_RecordAndUsage(t *testing.T) {
	store, _ := newTestStore(t)

	now := time.Now().UTC()
	metrics := []ExecutionMetric{
		{Operation: "generate", UserID: "u1", Recipes: 2, Items: 5, LatencyMS: 10, Timestamp: now},
		{Operation: "generate", UserID: "u2", Recipes: 1, Items: 3, LatencyMS: 30, Timestamp: now},
		{Operation: "generate", UserID: "u1", Recipes: 4, Items: 9, LatencyMS: 50, Timestamp: now.AddDate(0, 0, -40)},
	}
	for _, m := range metrics {
		if err := store.Record(m); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	usage, err := store.GetDailyUsage(7)
	if err != nil {
		t.Fatalf("GetDailyUsage failed: %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d: %+v", len(usage), usage)
	}
	day := usage[0]
	if day.Date != now.Format("2006-01-02") {
		t.Errorf("Expected date %s, got %s", now.Format("2006-01-02"), day.Date)
	}
	if day.Runs != 2 || day.TotalRecipes != 3 || day.TotalItems != 8 {
		t.Errorf("Unexpected totals: %+v", day)
	}
	if day.AvgLatencyMS != 20 {
		t.Errorf("Expected 20 ms average, got %v", day.AvgLatencyMS)
	}

	t.Run("Cleanup", func(t *testing.T) {
		n, err := store.Cleanup(30)
		if err != nil {
			t.Fatalf("Cleanup failed: %v", err)
		}
		if n != 1 {
			t.Errorf("Expected 1 deleted record, got %d", n)
		}
	})
}

func TestMeasure(t *testing.T) {
	start := time.Now().Add(-25 * time.Millisecond)
	m := Measure("generate", "u1", 2, 4, start)
	if m.LatencyMS < 25 {
		t.Errorf("Expected latency of at least 25 ms, got %d", m.LatencyMS)
	}
	if m.Operation != "generate" || m.Recipes != 2 || m.Items != 4 {
		t.Errorf("Unexpected metric: %+v", m)
	}
}

func TestGetSysHealth(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "app.db")
	if err := os.WriteFile(dbPath, make([]byte, 2048), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	h := GetSysHealth(dbPath)
	if h.Goroutines < 1 {
		t.Errorf("Expected at least one goroutine, got %d", h.Goroutines)
	}
	if h.DatabaseSize != "2.0 KB" {
		t.Errorf("Expected 2.0 KB, got %s", h.DatabaseSize)
	}

	report := Report(h, []DailyUsage{{Date: "2026-01-02", Runs: 3, TotalRecipes: 4, TotalItems: 12, AvgLatencyMS: 7}})
	if !strings.Contains(report, "2026-01-02: 3 runs, 4 recipes, 12 items, 7 ms avg") {
		t.Errorf("Unexpected report:\n%s", report)
	}
	if !strings.Contains(Report(h, nil), "No shopping lists generated recently.") {
		t.Error("Expected empty usage message")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		512:             "512 B",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5.0 MB",
	}
	for in, want := range tests {
		if got := formatBytes(in); got != want {
			t.Errorf("formatBytes(%d) = %s, want %s", in, got, want)
		}
	}
}
