// Package storage implements the local store for Task and Habit collections.
// These entities never come from the spreadsheet; they live in SQLite and
// survive sync cycles and process restarts.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gulshanb/expenseman/internal/common"
	"github.com/gulshanb/expenseman/internal/model"
	"github.com/gulshanb/expenseman/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements service.LocalStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ service.LocalStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (creating if needed) the local database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		deadline TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'Pending',
		priority TEXT NOT NULL DEFAULT 'Medium',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		frequency TEXT NOT NULL DEFAULT 'Daily',
		streak INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Tasks returns every stored task in creation order.
func (s *SQLiteStore) Tasks(ctx context.Context) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, deadline, status, priority FROM tasks ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Deadline, &t.Status, &t.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CreateTask stores a task, assigning it a generated id.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	task.ID = uuid.NewString()
	if task.Status == "" {
		task.Status = model.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = model.TaskPriorityMedium
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, deadline, status, priority) VALUES (?, ?, ?, ?, ?)`,
		task.ID, task.Title, task.Deadline, task.Status, task.Priority)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to insert task: %w", err)
	}
	return task, nil
}

// UpdateTask replaces a stored task by id.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if task.ID == "" {
		return fmt.Errorf("task id is required: %w", common.ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, deadline = ?, status = ?, priority = ? WHERE id = ?`,
		task.Title, task.Deadline, task.Status, task.Priority, task.ID)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res)
}

// DeleteTask removes a stored task by id.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(res)
}

// Habits returns every stored habit in creation order.
func (s *SQLiteStore) Habits(ctx context.Context) ([]model.Habit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, frequency, streak FROM habits ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var habits []model.Habit
	for rows.Next() {
		var h model.Habit
		if err := rows.Scan(&h.ID, &h.Name, &h.Frequency, &h.Streak); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// CreateHabit stores a habit, assigning it a generated id.
func (s *SQLiteStore) CreateHabit(ctx context.Context, habit model.Habit) (model.Habit, error) {
	habit.ID = uuid.NewString()
	if habit.Frequency == "" {
		habit.Frequency = model.HabitDaily
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO habits (id, name, frequency, streak) VALUES (?, ?, ?, ?)`,
		habit.ID, habit.Name, habit.Frequency, habit.Streak)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to insert habit: %w", err)
	}
	return habit, nil
}

// UpdateHabit replaces a stored habit by id.
func (s *SQLiteStore) UpdateHabit(ctx context.Context, habit model.Habit) error {
	if habit.ID == "" {
		return fmt.Errorf("habit id is required: %w", common.ErrNotFound)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE habits SET name = ?, frequency = ?, streak = ? WHERE id = ?`,
		habit.Name, habit.Frequency, habit.Streak, habit.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	return requireRow(res)
}

// DeleteHabit removes a stored habit by id.
func (s *SQLiteStore) DeleteHabit(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return requireRow(res)
}

// IncrementHabitStreak bumps a habit's streak by one and returns the
// updated habit.
func (s *SQLiteStore) IncrementHabitStreak(ctx context.Context, id string) (model.Habit, error) {
	res, err := s.db.ExecContext(ctx, `UPDATE habits SET streak = streak + 1 WHERE id = ?`, id)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to increment streak: %w", err)
	}
	if err := requireRow(res); err != nil {
		return model.Habit{}, err
	}

	var h model.Habit
	err = s.db.QueryRowContext(ctx,
		`SELECT id, name, frequency, streak FROM habits WHERE id = ?`, id).
		Scan(&h.ID, &h.Name, &h.Frequency, &h.Streak)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Habit{}, common.ErrNotFound
	}
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to reload habit: %w", err)
	}
	return h, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
