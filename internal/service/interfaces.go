// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/gulshanb/expenseman/internal/model"
)

// TabFetcher retrieves raw spreadsheet data for the sync engine.
type TabFetcher interface {
	// FetchTab returns every row of the named tab, header row included.
	// Each row is a slice of cell strings and may be shorter than the
	// tab's expected column count.
	FetchTab(ctx context.Context, tab string) ([][]string, error)

	// TestConnection probes the spreadsheet without mutating any state.
	TestConnection(ctx context.Context) TestResult
}

// TestResult is the outcome of a connection probe.
type TestResult struct {
	Message string
	OK      bool
}

// LocalStore owns the Task and Habit collections. They never come from the
// spreadsheet and must survive sync cycles and process restarts.
type LocalStore interface {
	Tasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id string) error

	Habits(ctx context.Context) ([]model.Habit, error)
	CreateHabit(ctx context.Context, habit model.Habit) (model.Habit, error)
	UpdateHabit(ctx context.Context, habit model.Habit) error
	DeleteHabit(ctx context.Context, id string) error
	IncrementHabitStreak(ctx context.Context, id string) (model.Habit, error)

	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
