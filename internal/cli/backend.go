package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/stagedup/internal/config"
	"github.com/aretw0/stagedup/pkg/adapters/file"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/adapters/redis"
	"github.com/aretw0/stagedup/pkg/adapters/sqlite"
	"github.com/aretw0/stagedup/pkg/persistence/middleware"
	"github.com/aretw0/stagedup/pkg/ports"
)

// Backend is the persistence selected by the configuration.
type Backend struct {
	Store ports.StageStore
	// Locker is set when the store is shared between processes.
	Locker ports.DistributedLocker

	closers []func() error
}

// Close releases the backend connections.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// OpenBackend builds the stage store named by cfg.Store, wrapped with
// encryption when a key is configured and with operation logging.
func OpenBackend(cfg config.Config, logger *slog.Logger) (*Backend, error) {
	b := &Backend{}

	switch cfg.Store {
	case config.StoreMemory:
		b.Store = memory.NewStore()
	case config.StoreFile, "":
		b.Store = file.New(cfg.StoreDir)
	case config.StoreRedis:
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.RedisTTL))
		b.Store = store
		b.Locker = redis.NewLocker(store.Client(), "stagedup:")
		b.closers = append(b.closers, store.Close)
	case config.StoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.Store = store
		b.closers = append(b.closers, store.Close)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	active, fallbacks, err := cfg.Keys()
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	// Logging sits outside encryption so it sees every call.
	mws := []middleware.Middleware{middleware.NewLoggingMiddleware(logger)}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallbacks,
		}))
	}
	b.Store = middleware.Chain(b.Store, mws...)

	logger.Debug("stage store ready", "store", cfg.Store, "encrypted", active != nil)
	return b, nil
}
