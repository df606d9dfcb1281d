package main

import (
	"context"
	"log/slog"

	"github.com/gulshanb/expenseman/internal/common"
	"github.com/gulshanb/expenseman/internal/config"
	"github.com/gulshanb/expenseman/internal/engine"
	"github.com/gulshanb/expenseman/internal/service"
	"github.com/gulshanb/expenseman/internal/sheets"
	"github.com/gulshanb/expenseman/internal/storage"
)

// newFetcher builds the Sheets client, or returns nil when credentials are
// absent so the engine stays idle. An invalid sheet URL is a hard error.
func newFetcher(ctx context.Context) (service.TabFetcher, error) {
	sheetsConfig := config.LoadSheetsConfig()
	if !sheetsConfig.Configured() {
		return nil, nil
	}

	client, err := sheets.NewClient(ctx, sheetsConfig, slog.Default())
	if err != nil {
		return nil, common.NewUserError("check the sheet URL and API key in your configuration", err)
	}
	return client, nil
}

// newStore opens the local Task/Habit database.
func newStore() (*storage.SQLiteStore, error) {
	syncConfig, err := config.LoadSyncConfig()
	if err != nil {
		return nil, err
	}
	return storage.NewSQLiteStore(syncConfig.DBPath)
}

// newEngine wires fetcher and store into a sync engine. The returned cleanup
// closes the store.
func newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	fetcher, err := newFetcher(ctx)
	if err != nil {
		return nil, nil, err
	}

	store, err := newStore()
	if err != nil {
		return nil, nil, err
	}

	syncConfig, err := config.LoadSyncConfig()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	eng := engine.New(fetcher, store, engine.Config{PollInterval: syncConfig.PollInterval}, slog.Default())
	cleanup := func() { _ = store.Close() }
	return eng, cleanup, nil
}
