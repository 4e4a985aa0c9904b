package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/stagedup"
	"github.com/aretw0/stagedup/internal/logging"
	"github.com/aretw0/stagedup/pkg/adapters/memory"
	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed replica can hold a stage.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Outcome is the result of one stored duplication.
type Outcome struct {
	Result domain.Result     `json:"result"`
	Diff   *domain.StageDiff `json:"diff,omitempty"`
}

// Manager orchestrates stage access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.StageStore
	dup   *stagedup.Duplicator

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDuplicator replaces the default duplicator, e.g. to attach hooks.
func WithDuplicator(dup *stagedup.Duplicator) Option {
	return func(m *Manager) {
		m.dup = dup
	}
}

// NewManager creates a Manager over the given store.
func NewManager(store ports.StageStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.dup == nil {
		m.dup = stagedup.New(stagedup.WithLogger(m.logger))
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(stageID) after unlocking.
func (m *Manager) acquire(stageID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[stageID]
	if !ok {
		entry = &lockEntry{}
		m.locks[stageID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(stageID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[stageID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, stageID)
	}
}

// Duplicate runs one trigger against the stored stage and persists the
// result if anything was created. Rejected triggers and runs that created
// nothing leave the store untouched.
func (m *Manager) Duplicate(ctx context.Context, stageID string, selection []string, raw map[string]any) (Outcome, error) {
	var out Outcome
	err := m.WithLock(ctx, stageID, func(ctx context.Context) error {
		before, err := m.store.Load(ctx, stageID)
		if err != nil {
			return err
		}

		stage, err := memory.FromSnapshot(before)
		if err != nil {
			return fmt.Errorf("failed to materialise stage %s: %w", stageID, err)
		}

		out.Result = m.dup.Trigger(ctx, stage, selection, raw)
		if out.Result.Err != nil || out.Result.Created == 0 {
			return nil
		}

		after := stage.Snapshot()
		if err := m.store.Save(ctx, stageID, after); err != nil {
			return fmt.Errorf("failed to save stage %s: %w", stageID, err)
		}
		out.Diff = domain.DiffSnapshots(before, after)

		m.logger.Info("stage updated",
			"stage_id", stageID,
			"created", out.Result.Created,
		)
		return nil
	})
	return out, err
}

// Load retrieves a stored stage.
func (m *Manager) Load(ctx context.Context, stageID string) (*domain.StageSnapshot, error) {
	var snap *domain.StageSnapshot
	err := m.WithLock(ctx, stageID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, stageID)
		return err
	})
	return snap, err
}

// Save validates snap by materialising it, then persists it.
func (m *Manager) Save(ctx context.Context, stageID string, snap *domain.StageSnapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if _, err := memory.FromSnapshot(snap); err != nil {
		return fmt.Errorf("invalid stage: %w", err)
	}
	return m.WithLock(ctx, stageID, func(ctx context.Context) error {
		return m.store.Save(ctx, stageID, snap)
	})
}

// Delete removes the stage from the store.
func (m *Manager) Delete(ctx context.Context, stageID string) error {
	return m.WithLock(ctx, stageID, func(ctx context.Context) error {
		return m.store.Delete(ctx, stageID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying stage store.
func (m *Manager) Store() ports.StageStore {
	return m.store
}

// WithLock executes fn while holding the lock for the stage.
func (m *Manager) WithLock(ctx context.Context, stageID string, fn func(context.Context) error) error {
	entry := m.acquire(stageID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(stageID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, stageID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"stage_id", stageID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
