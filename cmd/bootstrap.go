package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"task-board.com/task-board/internal/auth"
	config "task-board.com/task-board/internal/configs"
	"task-board.com/task-board/internal/locks"
	repository "task-board.com/task-board/internal/repositories"
)

// loadConfig reads .env, then the config file and environment.
func loadConfig() (config.Config, *log.Logger, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger, err := config.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}
	return cfg, logger, nil
}

func loadCredentials(ctx context.Context, cfg config.Config) (*auth.CredentialStore, error) {
	store, err := repository.NewFileDocumentStore(cfg.UsersFilePath)
	if err != nil {
		return nil, err
	}
	admins, err := repository.LoadAdmins(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("load administrators from %s: %w", cfg.UsersFilePath, err)
	}
	return auth.NewCredentialStore(admins), nil
}

type taskBackend struct {
	store  repository.DocumentStore
	writer locks.WriterLock
	close  func()
}

// openTaskBackend connects the configured task store. The writer lock is
// nil unless mutations are serialized; with the redis driver it is shared
// across processes, otherwise it only covers this one.
func openTaskBackend(ctx context.Context, cfg config.Config) (*taskBackend, error) {
	lockTimeout := time.Duration(cfg.LockTimeoutSeconds) * time.Second
	b := &taskBackend{close: func() {}}
	if cfg.SerializeMutations {
		b.writer = locks.NewMutexLock(lockTimeout)
	}

	switch cfg.TaskStoreDriver {
	case config.DriverFile:
		store, err := repository.NewFileDocumentStore(cfg.TodosFilePath)
		if err != nil {
			return nil, err
		}
		b.store = store

	case config.DriverSQLite:
		db, err := config.NewDatabaseClient(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		store, err := repository.NewSQLDocumentStore(db, cfg.TaskSnapshotKey)
		if err != nil {
			closeDB()
			return nil, err
		}
		b.store, b.close = store, closeDB

	case config.DriverPostgres:
		db, err := config.NewPostgresClient(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store, err := repository.NewPostgresDocumentStore(db, cfg.TaskSnapshotKey)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		b.store, b.close = store, func() { _ = db.Close() }

	case config.DriverRedis:
		client, err := config.NewRedisClient(cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		store, err := repository.NewRedisDocumentStore(client, cfg.TaskSnapshotKey)
		if err != nil {
			client.Close()
			return nil, err
		}
		if cfg.SerializeMutations {
			b.writer = locks.NewRedisLeaseLock(client, cfg.TaskSnapshotKey+":writer", lockTimeout, locks.DefaultLease)
		}
		b.store, b.close = store, client.Close

	default:
		return nil, fmt.Errorf("unknown task store driver %q", cfg.TaskStoreDriver)
	}

	return b, nil
}
