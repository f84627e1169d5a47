package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "mealmaster/internal/metrics/metrics_db"
)

// ExecutionMetric records metadata for a single shopping list generation.
type ExecutionMetric struct {
	Operation string
	UserID    string
	Recipes   int
	Items     int
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	db      *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		db:      db,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(m ExecutionMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	err := s.queries.InsertExecutionMetric(context.Background(), metricsdb.InsertExecutionMetricParams{
		Operation: m.Operation,
		UserID:    m.UserID,
		Recipes:   int64(m.Recipes),
		Items:     int64(m.Items),
		LatencyMs: m.LatencyMS,
		Timestamp: ts.UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert execution metric: %w", err)
	}
	return nil
}

// Measure builds a metric for an operation that started at start.
func Measure(operation, userID string, recipes, items int, start time.Time) ExecutionMetric {
	return ExecutionMetric{
		Operation: operation,
		UserID:    userID,
		Recipes:   recipes,
		Items:     items,
		LatencyMS: time.Since(start).Milliseconds(),
		Timestamp: time.Now().UTC(),
	}
}

// DailyUsage represents totals for a single day.
type DailyUsage struct {
	Date         string
	Runs         int
	TotalRecipes int
	TotalItems   int
	AvgLatencyMS float64
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(days int) ([]DailyUsage, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailyUsage(context.Background(), since)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			Runs: int(r.Runs),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.TotalRecipes.Valid {
			u.TotalRecipes = int(r.TotalRecipes.Float64)
		}
		if r.TotalItems.Valid {
			u.TotalItems = int(r.TotalItems.Float64)
		}
		if r.AvgLatencyMs.Valid {
			u.AvgLatencyMS = r.AvgLatencyMs.Float64
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	n, err := s.queries.CleanupExecutionMetrics(context.Background(), threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up execution metrics: %w", err)
	}
	return n, nil
}
