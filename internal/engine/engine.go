// Package engine implements the sheet-to-domain synchronization engine: it
// drives the fetch, parse, classify, reconcile, aggregate pipeline and
// publishes complete snapshots to consumers.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gulshanb/expenseman/internal/common"
	"github.com/gulshanb/expenseman/internal/model"
	"github.com/gulshanb/expenseman/internal/service"
	"github.com/gulshanb/expenseman/internal/sheets"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration options for the sync engine.
type Config struct {
	// PollInterval is how often the engine refreshes on its own.
	PollInterval time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		PollInterval: 30 * time.Second,
	}
}

// Engine owns the published snapshot. It is the single writer; consumers get
// read-only copies. A nil fetcher means no credentials are configured and
// the engine stays idle.
type Engine struct {
	fetcher      service.TabFetcher
	store        service.LocalStore
	logger       *slog.Logger
	pollInterval time.Duration

	mu       sync.RWMutex
	snapshot model.Snapshot
	status   model.ConnectionStatus
	lastSync time.Time
	lastErr  string

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
	polling  bool
}

// New creates a sync engine. fetcher may be nil when sheet credentials are
// absent; the engine then serves only the local Task/Habit collections.
func New(fetcher service.TabFetcher, store service.LocalStore, config Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultConfig().PollInterval
	}
	return &Engine{
		fetcher:      fetcher,
		store:        store,
		logger:       logger,
		pollInterval: config.PollInterval,
		status:       model.StatusIdle,
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start loads the local collections, runs an initial sync when credentials
// are present, and launches the polling loop. Callers must Close the engine
// to stop the loop.
func (e *Engine) Start(ctx context.Context) {
	e.loadLocal(ctx)

	if e.fetcher == nil {
		e.logger.Info("no sheet credentials configured, staying idle")
		return
	}

	e.mu.Lock()
	e.polling = true
	e.mu.Unlock()

	go e.pollLoop(ctx)
}

// Close stops the polling loop. Safe to call more than once. An in-flight
// cycle is not cancelled; it finishes and publishes normally.
func (e *Engine) Close() {
	e.stopOnce.Do(func() {
		close(e.stop)
	})

	e.mu.RLock()
	polling := e.polling
	e.mu.RUnlock()
	if polling {
		<-e.done
	}
}

func (e *Engine) pollLoop(ctx context.Context) {
	defer close(e.done)

	if err := e.Refresh(ctx); err != nil {
		e.logger.Error("initial sync failed", "error", err)
	}

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stop:
			return
		case <-ticker.C:
			if err := e.Refresh(ctx); err != nil {
				e.logger.Error("periodic sync failed", "error", err)
			}
		}
	}
}

// Refresh runs one full sync cycle: fetch all tabs concurrently, rebuild
// every sheet-derived collection, merge in the local Task/Habit collections,
// and swap the complete snapshot in atomically. On failure the previous
// snapshot stays published.
func (e *Engine) Refresh(ctx context.Context) error {
	if e.fetcher == nil {
		return common.ErrNotSyncable
	}

	e.setLoading()

	tabs, err := e.fetchAllTabs(ctx)
	if err != nil {
		e.setError(err)
		return err
	}

	snapshot := BuildSnapshot(tabs)
	snapshot.Tasks, snapshot.Habits = e.localCollections(ctx)

	e.mu.Lock()
	e.snapshot = snapshot
	e.status = model.StatusConnected
	e.lastSync = time.Now()
	e.lastErr = ""
	e.mu.Unlock()

	e.logger.Info("sync cycle complete",
		"payments", len(snapshot.Payments),
		"expenses", len(snapshot.Expenses),
		"labours", len(snapshot.Labours),
		"clients", len(snapshot.Clients),
		"sites", len(snapshot.Sites))

	return nil
}

// fetchAllTabs fans out one fetch per tab and waits for all to settle. A
// single tab's failure does not cancel the others; failures are aggregated
// into one cycle-level error naming every failing tab.
func (e *Engine) fetchAllTabs(ctx context.Context) (map[string][][]string, error) {
	tabs := sheets.RequiredTabs
	results := make([][][]string, len(tabs))
	errs := make([]error, len(tabs))

	var g errgroup.Group
	for i, tab := range tabs {
		g.Go(func() error {
			results[i], errs[i] = e.fetcher.FetchTab(ctx, tab)
			return nil
		})
	}
	_ = g.Wait()

	var failing []string
	out := make(map[string][][]string, len(tabs))
	for i, tab := range tabs {
		if errs[i] != nil {
			e.logger.Warn("tab fetch failed", "tab", tab, "error", errs[i])
			failing = append(failing, fmt.Sprintf("%s (%v)", tab, errs[i]))
			continue
		}
		out[tab] = results[i]
	}

	if len(failing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrTabFetch, strings.Join(failing, "; "))
	}
	return out, nil
}

// TestConnection probes the configured spreadsheet without touching the
// published snapshot.
func (e *Engine) TestConnection(ctx context.Context) service.TestResult {
	if e.fetcher == nil {
		return service.TestResult{OK: false, Message: "configure the sheet URL and API key first"}
	}
	return e.fetcher.TestConnection(ctx)
}

// Snapshot returns a copy of the currently published snapshot, always fully
// formed; readers never observe a cycle mid-publish.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot.Clone()
}

// ConnectionStatus returns the engine's current state.
func (e *Engine) ConnectionStatus() model.ConnectionStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.status
}

// LastSync returns when the last successful cycle published, zero if never.
func (e *Engine) LastSync() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastSync
}

// Err returns the last cycle-level error message, empty when healthy.
func (e *Engine) Err() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

func (e *Engine) setLoading() {
	e.mu.Lock()
	e.status = model.StatusLoading
	e.mu.Unlock()
}

func (e *Engine) setError(err error) {
	e.mu.Lock()
	e.status = model.StatusError
	e.lastErr = err.Error()
	e.mu.Unlock()
}

// loadLocal seeds the snapshot with whatever the local store holds, so Task
// and Habit data is visible even before (or without) a first sync.
func (e *Engine) loadLocal(ctx context.Context) {
	tasks, habits := e.localCollections(ctx)
	e.mu.Lock()
	e.snapshot.Tasks = tasks
	e.snapshot.Habits = habits
	e.mu.Unlock()
}

// localCollections reads tasks and habits from the store. On a read failure
// the previous snapshot's collections are carried forward rather than
// dropping local-only data.
func (e *Engine) localCollections(ctx context.Context) ([]model.Task, []model.Habit) {
	e.mu.RLock()
	tasks := e.snapshot.Tasks
	habits := e.snapshot.Habits
	e.mu.RUnlock()

	if e.store == nil {
		return tasks, habits
	}

	if loaded, err := e.store.Tasks(ctx); err != nil {
		e.logger.Warn("failed to load tasks, keeping previous", "error", err)
	} else {
		tasks = loaded
	}

	if loaded, err := e.store.Habits(ctx); err != nil {
		e.logger.Warn("failed to load habits, keeping previous", "error", err)
	} else {
		habits = loaded
	}

	return tasks, habits
}
