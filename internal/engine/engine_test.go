package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gulshanb/expenseman/internal/common"
	"github.com/gulshanb/expenseman/internal/model"
	"github.com/gulshanb/expenseman/internal/service"
	"github.com/gulshanb/expenseman/internal/sheets"
)

// mockStore is an in-memory service.LocalStore for engine tests.
type mockStore struct {
	mu     sync.Mutex
	tasks  []model.Task
	habits []model.Habit
	nextID int
	err    error
}

var _ service.LocalStore = (*mockStore)(nil)

func (m *mockStore) id() string {
	m.nextID++
	return fmt.Sprintf("id-%d", m.nextID)
}

func (m *mockStore) Tasks(context.Context) ([]model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Task(nil), m.tasks...), nil
}

func (m *mockStore) CreateTask(_ context.Context, task model.Task) (model.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Task{}, m.err
	}
	task.ID = m.id()
	m.tasks = append(m.tasks, task)
	return task, nil
}

func (m *mockStore) UpdateTask(_ context.Context, task model.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, t := range m.tasks {
		if t.ID == task.ID {
			m.tasks[i] = task
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *mockStore) DeleteTask(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, t := range m.tasks {
		if t.ID == id {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *mockStore) Habits(context.Context) ([]model.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]model.Habit(nil), m.habits...), nil
}

func (m *mockStore) CreateHabit(_ context.Context, habit model.Habit) (model.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Habit{}, m.err
	}
	habit.ID = m.id()
	m.habits = append(m.habits, habit)
	return habit, nil
}

func (m *mockStore) UpdateHabit(_ context.Context, habit model.Habit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, h := range m.habits {
		if h.ID == habit.ID {
			m.habits[i] = habit
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *mockStore) DeleteHabit(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for i, h := range m.habits {
		if h.ID == id {
			m.habits = append(m.habits[:i], m.habits[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (m *mockStore) IncrementHabitStreak(_ context.Context, id string) (model.Habit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return model.Habit{}, m.err
	}
	for i, h := range m.habits {
		if h.ID == id {
			m.habits[i].Streak++
			return m.habits[i], nil
		}
	}
	return model.Habit{}, common.ErrNotFound
}

func (m *mockStore) Close() error { return nil }

func (m *mockStore) setError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func fullTabs() map[string][][]string {
	return tabsWith(
		[][]string{
			{"2024-01-05", "Payment", "5000", "", "Initial deposit", "", "SiteA", "ClientX", "Rohit"},
			{"2024-02-01", "Expense", "1200", "Labour Payment", "Weekly wage", "John", "SiteB", "", ""},
		},
		[][]string{{"John", "Mason", "4000", "0", "4000"}},
		[][]string{{"ClientX", "123", "SiteA", "0", "15000"}},
		[][]string{{"SiteA", "60", "Pending", "2024-01-01", "2024-06-30", "250000"}},
	)
}

func TestRefreshPublishesSnapshot(t *testing.T) {
	fetcher := sheets.NewMockFetcher(fullTabs())
	eng := New(fetcher, &mockStore{}, DefaultConfig(), nil)

	require.NoError(t, eng.Refresh(context.Background()))

	assert.Equal(t, model.StatusConnected, eng.ConnectionStatus())
	assert.False(t, eng.LastSync().IsZero())
	assert.Empty(t, eng.Err())

	snap := eng.Snapshot()
	assert.Len(t, snap.Payments, 1)
	assert.Len(t, snap.Expenses, 1)
	assert.Len(t, snap.Labours, 1)
	assert.Len(t, snap.Clients, 1)
	assert.Len(t, snap.Sites, 1)
	assert.Equal(t, 4, fetcher.CallCount(), "one fetch per tab")
}

func TestRefreshTabFailureKeepsPreviousSnapshot(t *testing.T) {
	fetcher := sheets.NewMockFetcher(fullTabs())
	eng := New(fetcher, &mockStore{}, DefaultConfig(), nil)
	ctx := context.Background()

	require.NoError(t, eng.Refresh(ctx))
	before := eng.Snapshot()
	lastSync := eng.LastSync()

	fetcher.SetError(sheets.TabLabour, errors.New("HTTP 500"))
	err := eng.Refresh(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTabFetch)

	assert.Equal(t, model.StatusError, eng.ConnectionStatus())
	assert.Contains(t, eng.Err(), sheets.TabLabour)
	assert.Equal(t, lastSync, eng.LastSync(), "lastSync only moves on success")
	assert.Equal(t, before, eng.Snapshot(), "previous snapshot stays published")
}

func TestRefreshRecoversAfterFailure(t *testing.T) {
	fetcher := sheets.NewMockFetcher(fullTabs())
	eng := New(fetcher, &mockStore{}, DefaultConfig(), nil)
	ctx := context.Background()

	fetcher.SetError(sheets.TabMain, errors.New("HTTP 429"))
	require.Error(t, eng.Refresh(ctx))
	assert.Equal(t, model.StatusError, eng.ConnectionStatus())

	fetcher.SetError(sheets.TabMain, nil)
	require.NoError(t, eng.Refresh(ctx))
	assert.Equal(t, model.StatusConnected, eng.ConnectionStatus())
	assert.Empty(t, eng.Err())
}

func TestRefreshWithoutFetcher(t *testing.T) {
	eng := New(nil, &mockStore{}, DefaultConfig(), nil)

	err := eng.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrNotSyncable)
	assert.Equal(t, model.StatusIdle, eng.ConnectionStatus())
}

func TestLocalCollectionsSurviveSync(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()
	task, err := store.CreateTask(ctx, model.Task{Title: "order cement"})
	require.NoError(t, err)
	habit, err := store.CreateHabit(ctx, model.Habit{Name: "site visit"})
	require.NoError(t, err)

	eng := New(sheets.NewMockFetcher(fullTabs()), store, DefaultConfig(), nil)
	require.NoError(t, eng.Refresh(ctx))

	snap := eng.Snapshot()
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, task.ID, snap.Tasks[0].ID)
	require.Len(t, snap.Habits, 1)
	assert.Equal(t, habit.ID, snap.Habits[0].ID)
}

func TestLocalStoreFailureCarriesForward(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()
	_, err := store.CreateTask(ctx, model.Task{Title: "order cement"})
	require.NoError(t, err)

	eng := New(sheets.NewMockFetcher(fullTabs()), store, DefaultConfig(), nil)
	require.NoError(t, eng.Refresh(ctx))
	require.Len(t, eng.Snapshot().Tasks, 1)

	store.setError(errors.New("disk full"))
	require.NoError(t, eng.Refresh(ctx), "sheet sync still succeeds")
	assert.Len(t, eng.Snapshot().Tasks, 1, "previous tasks carried forward")
}

func TestStartAndClose(t *testing.T) {
	fetcher := sheets.NewMockFetcher(fullTabs())
	eng := New(fetcher, &mockStore{}, Config{PollInterval: 10 * time.Millisecond}, nil)

	eng.Start(context.Background())

	require.Eventually(t, func() bool {
		return fetcher.CallCount() >= 8
	}, time.Second, 5*time.Millisecond, "poll loop should keep fetching")

	eng.Close()
	settled := fetcher.CallCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, fetcher.CallCount(), "no fetches after Close")

	eng.Close() // idempotent
}

func TestCloseWithoutStart(t *testing.T) {
	eng := New(sheets.NewMockFetcher(nil), &mockStore{}, DefaultConfig(), nil)
	eng.Close() // must not block
}

func TestStartWithoutFetcherServesLocalData(t *testing.T) {
	store := &mockStore{}
	ctx := context.Background()
	_, err := store.CreateTask(ctx, model.Task{Title: "order cement"})
	require.NoError(t, err)

	eng := New(nil, store, DefaultConfig(), nil)
	eng.Start(ctx)
	defer eng.Close()

	assert.Equal(t, model.StatusIdle, eng.ConnectionStatus())
	assert.Len(t, eng.Snapshot().Tasks, 1)
}

func TestTestConnection(t *testing.T) {
	fetcher := sheets.NewMockFetcher(nil)
	fetcher.TestResult = service.TestResult{OK: true, Message: "Connection successful!"}
	eng := New(fetcher, nil, DefaultConfig(), nil)

	result := eng.TestConnection(context.Background())
	assert.True(t, result.OK)
	assert.Equal(t, "Connection successful!", result.Message)

	unconfigured := New(nil, nil, DefaultConfig(), nil)
	result = unconfigured.TestConnection(context.Background())
	assert.False(t, result.OK)
}

func TestSnapshotIsACopy(t *testing.T) {
	eng := New(sheets.NewMockFetcher(fullTabs()), &mockStore{}, DefaultConfig(), nil)
	require.NoError(t, eng.Refresh(context.Background()))

	snap := eng.Snapshot()
	require.NotEmpty(t, snap.Payments)
	snap.Payments[0].Amount = -1
	snap.Clients[0].PaymentHistory[0].Amount = -1

	fresh := eng.Snapshot()
	assert.InDelta(t, 5000.0, fresh.Payments[0].Amount, 0.001)
	assert.InDelta(t, 5000.0, fresh.Clients[0].PaymentHistory[0].Amount, 0.001)
}
