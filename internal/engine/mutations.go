package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gulshanb/expenseman/internal/common"
	"github.com/gulshanb/expenseman/internal/model"
)

// Task and Habit mutations write through the local store first; the
// published snapshot is only updated after the store confirms, so a store
// failure leaves published state untouched.

// AddTask creates a task in the local store and publishes it.
func (e *Engine) AddTask(ctx context.Context, task model.Task) (model.Task, error) {
	if e.store == nil {
		return model.Task{}, fmt.Errorf("no local store configured")
	}
	created, err := e.store.CreateTask(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Tasks = append(e.snapshot.Tasks, created)
	e.mu.Unlock()
	return created, nil
}

// UpdateTask updates a task in the local store and republishes it.
func (e *Engine) UpdateTask(ctx context.Context, task model.Task) error {
	if e.store == nil {
		return fmt.Errorf("no local store configured")
	}
	if err := e.store.UpdateTask(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Tasks = replaceTask(e.snapshot.Tasks, task)
	e.mu.Unlock()
	return nil
}

// DeleteTask removes a task from the local store and the snapshot.
func (e *Engine) DeleteTask(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("no local store configured")
	}
	if err := e.store.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Tasks = deleteByID(e.snapshot.Tasks, id, func(t model.Task) string { return t.ID })
	e.mu.Unlock()
	return nil
}

// AddHabit creates a habit in the local store and publishes it.
func (e *Engine) AddHabit(ctx context.Context, habit model.Habit) (model.Habit, error) {
	if e.store == nil {
		return model.Habit{}, fmt.Errorf("no local store configured")
	}
	created, err := e.store.CreateHabit(ctx, habit)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to create habit: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Habits = append(e.snapshot.Habits, created)
	e.mu.Unlock()
	return created, nil
}

// UpdateHabit updates a habit in the local store and republishes it.
func (e *Engine) UpdateHabit(ctx context.Context, habit model.Habit) error {
	if e.store == nil {
		return fmt.Errorf("no local store configured")
	}
	if err := e.store.UpdateHabit(ctx, habit); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Habits = replaceHabit(e.snapshot.Habits, habit)
	e.mu.Unlock()
	return nil
}

// DeleteHabit removes a habit from the local store and the snapshot.
func (e *Engine) DeleteHabit(ctx context.Context, id string) error {
	if e.store == nil {
		return fmt.Errorf("no local store configured")
	}
	if err := e.store.DeleteHabit(ctx, id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Habits = deleteByID(e.snapshot.Habits, id, func(h model.Habit) string { return h.ID })
	e.mu.Unlock()
	return nil
}

// IncrementHabitStreak bumps a habit's streak by one.
func (e *Engine) IncrementHabitStreak(ctx context.Context, id string) (model.Habit, error) {
	if e.store == nil {
		return model.Habit{}, fmt.Errorf("no local store configured")
	}
	updated, err := e.store.IncrementHabitStreak(ctx, id)
	if err != nil {
		return model.Habit{}, fmt.Errorf("failed to increment streak: %w", err)
	}

	e.mu.Lock()
	e.snapshot.Habits = replaceHabit(e.snapshot.Habits, updated)
	e.mu.Unlock()
	return updated, nil
}

// Sheet-derived entities get optimistic in-memory mutations only: they make
// the UI responsive between cycles and are rebuilt from the sheet on the
// next sync.

// AddPayment appends a payment to the published snapshot.
func (e *Engine) AddPayment(_ context.Context, payment model.Payment) model.Payment {
	payment.ID = uuid.NewString()
	e.mu.Lock()
	e.snapshot.Payments = append(e.snapshot.Payments, payment)
	e.mu.Unlock()
	return payment
}

// UpdatePayment replaces a published payment by ID.
func (e *Engine) UpdatePayment(_ context.Context, payment model.Payment) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, p := range e.snapshot.Payments {
		if p.ID == payment.ID {
			e.snapshot.Payments[i] = payment
			return nil
		}
	}
	return common.ErrNotFound
}

// DeletePayment removes a published payment by ID.
func (e *Engine) DeletePayment(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := deleteByID(e.snapshot.Payments, id, func(p model.Payment) string { return p.ID })
	if len(kept) == len(e.snapshot.Payments) {
		return common.ErrNotFound
	}
	e.snapshot.Payments = kept
	return nil
}

// AddExpense appends an expense to the published snapshot.
func (e *Engine) AddExpense(_ context.Context, expense model.Expense) model.Expense {
	expense.ID = uuid.NewString()
	e.mu.Lock()
	e.snapshot.Expenses = append(e.snapshot.Expenses, expense)
	e.mu.Unlock()
	return expense
}

// UpdateExpense replaces a published expense by ID.
func (e *Engine) UpdateExpense(_ context.Context, expense model.Expense) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, x := range e.snapshot.Expenses {
		if x.ID == expense.ID {
			e.snapshot.Expenses[i] = expense
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteExpense removes a published expense by ID.
func (e *Engine) DeleteExpense(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := deleteByID(e.snapshot.Expenses, id, func(x model.Expense) string { return x.ID })
	if len(kept) == len(e.snapshot.Expenses) {
		return common.ErrNotFound
	}
	e.snapshot.Expenses = kept
	return nil
}

// AddSite appends a site to the published snapshot.
func (e *Engine) AddSite(_ context.Context, site model.Site) model.Site {
	site.ID = uuid.NewString()
	e.mu.Lock()
	e.snapshot.Sites = append(e.snapshot.Sites, site)
	e.mu.Unlock()
	return site
}

// UpdateSite replaces a published site by ID.
func (e *Engine) UpdateSite(_ context.Context, site model.Site) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.snapshot.Sites {
		if s.ID == site.ID {
			e.snapshot.Sites[i] = site
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteSite removes a published site by ID.
func (e *Engine) DeleteSite(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := deleteByID(e.snapshot.Sites, id, func(s model.Site) string { return s.ID })
	if len(kept) == len(e.snapshot.Sites) {
		return common.ErrNotFound
	}
	e.snapshot.Sites = kept
	return nil
}

// AddLabour appends a labourer to the published snapshot.
func (e *Engine) AddLabour(_ context.Context, labour model.Labour) model.Labour {
	labour.ID = uuid.NewString()
	e.mu.Lock()
	e.snapshot.Labours = append(e.snapshot.Labours, labour)
	e.mu.Unlock()
	return labour
}

// UpdateLabour replaces a published labourer by ID.
func (e *Engine) UpdateLabour(_ context.Context, labour model.Labour) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, l := range e.snapshot.Labours {
		if l.ID == labour.ID {
			e.snapshot.Labours[i] = labour
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteLabour removes a published labourer by ID.
func (e *Engine) DeleteLabour(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := deleteByID(e.snapshot.Labours, id, func(l model.Labour) string { return l.ID })
	if len(kept) == len(e.snapshot.Labours) {
		return common.ErrNotFound
	}
	e.snapshot.Labours = kept
	return nil
}

// AddClient appends a client to the published snapshot.
func (e *Engine) AddClient(_ context.Context, client model.Client) model.Client {
	client.ID = uuid.NewString()
	e.mu.Lock()
	e.snapshot.Clients = append(e.snapshot.Clients, client)
	e.mu.Unlock()
	return client
}

// UpdateClient replaces a published client by ID.
func (e *Engine) UpdateClient(_ context.Context, client model.Client) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.snapshot.Clients {
		if c.ID == client.ID {
			e.snapshot.Clients[i] = client
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteClient removes a published client by ID.
func (e *Engine) DeleteClient(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := deleteByID(e.snapshot.Clients, id, func(c model.Client) string { return c.ID })
	if len(kept) == len(e.snapshot.Clients) {
		return common.ErrNotFound
	}
	e.snapshot.Clients = kept
	return nil
}

// AddExpenseCategory appends a category to the published snapshot.
func (e *Engine) AddExpenseCategory(_ context.Context, category model.ExpenseCategory) model.ExpenseCategory {
	category.ID = uuid.NewString()
	e.mu.Lock()
	e.snapshot.ExpenseCategories = append(e.snapshot.ExpenseCategories, category)
	e.mu.Unlock()
	return category
}

// UpdateExpenseCategory replaces a published category by ID.
func (e *Engine) UpdateExpenseCategory(_ context.Context, category model.ExpenseCategory) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, c := range e.snapshot.ExpenseCategories {
		if c.ID == category.ID {
			e.snapshot.ExpenseCategories[i] = category
			return nil
		}
	}
	return common.ErrNotFound
}

// DeleteExpenseCategory removes a published category by ID.
func (e *Engine) DeleteExpenseCategory(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	kept := deleteByID(e.snapshot.ExpenseCategories, id, func(c model.ExpenseCategory) string { return c.ID })
	if len(kept) == len(e.snapshot.ExpenseCategories) {
		return common.ErrNotFound
	}
	e.snapshot.ExpenseCategories = kept
	return nil
}

func replaceTask(tasks []model.Task, task model.Task) []model.Task {
	for i, t := range tasks {
		if t.ID == task.ID {
			tasks[i] = task
			break
		}
	}
	return tasks
}

func replaceHabit(habits []model.Habit, habit model.Habit) []model.Habit {
	for i, h := range habits {
		if h.ID == habit.ID {
			habits[i] = habit
			break
		}
	}
	return habits
}

func deleteByID[T any](items []T, id string, key func(T) string) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if key(item) != id {
			kept = append(kept, item)
		}
	}
	return kept
}
