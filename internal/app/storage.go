package app

import (
	"context"

	"github.com/adanyl0v/go-todo-json/internal/config"
	"github.com/adanyl0v/go-todo-json/internal/storage"
	"github.com/adanyl0v/go-todo-json/internal/storage/file"
	"github.com/adanyl0v/go-todo-json/internal/storage/postgres"
)

var globalTodoStore storage.TodoStore

func MustOpenStore() {
	cfg := config.Global()

	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		globalTodoStore = mustOpenFileStore(cfg.Storage)
	case config.StorageDriverPostgres:
		store := postgres.New(globalLogger, mustConnectPostgres())
		err := store.Migrate(context.Background())
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to migrate postgres")
			panic(err)
		}
		globalTodoStore = store
	}
	globalLogger.Info().
		Str("driver", cfg.Storage.Driver).
		Msg("opened todo store")
}

func mustOpenFileStore(cfg config.StorageConfig) storage.TodoStore {
	if cfg.InitFile {
		created, err := file.EnsureDocument(cfg.FilePath)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.FilePath).
				Msg("failed to initialize todo document")
			panic(err)
		}
		if created {
			globalLogger.Info().
				Str("path", cfg.FilePath).
				Msg("created empty todo document")
		}
	}

	store := file.New(globalLogger, cfg.FilePath)
	// A missing or corrupt document is not fatal at startup: every
	// request re-reads it and answers 500 until it is fixed.
	_, err := store.List(context.Background())
	if err != nil {
		globalLogger.Warn().
			Err(err).
			Str("path", cfg.FilePath).
			Msg("todo document is not readable")
	}
	return store
}

func CloseStore() {
	disconnectPostgres()
}
