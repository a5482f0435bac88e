package store

import (
	"context"
	"errors"
	"sync"

	"novares-ledger-go/internal/models"
)

// Sentinel errors shared across all backend implementations.
var (
	ErrBackendClosed = errors.New("persistence backend closed")
	ErrCorruptState  = errors.New("persisted state is inconsistent")
)

// PersistenceBackend is the write-through contract of the ledger. Load returns
// the last saved state (empty on first run); Save replaces it atomically.
type PersistenceBackend interface {
	Load(ctx context.Context) (*models.State, error)
	Save(ctx context.Context, state *models.State) error

	// --- Lifecycle ---
	Close()
}

// MemoryBackend keeps the state in process. Tests use FailNextSave to
// exercise the rollback path of the ledger.
type MemoryBackend struct {
	mu       sync.Mutex
	state    *models.State
	saves    int
	failWith error
	closed   bool
}

var _ PersistenceBackend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{state: &models.State{}}
}

// NewMemoryBackendFrom starts the backend with a pre-existing state
func NewMemoryBackendFrom(state *models.State) *MemoryBackend {
	return &MemoryBackend{state: state.Clone()}
}

func (m *MemoryBackend) Load(ctx context.Context) (*models.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrBackendClosed
	}
	return m.state.Clone(), nil
}

func (m *MemoryBackend) Save(ctx context.Context, state *models.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrBackendClosed
	}
	if m.failWith != nil {
		err := m.failWith
		m.failWith = nil
		return err
	}
	m.state = state.Clone()
	m.saves++
	return nil
}

// FailNextSave makes the next Save return err without storing anything
func (m *MemoryBackend) FailNextSave(err error) {
	m.mu.Lock()
	m.failWith = err
	m.mu.Unlock()
}

// Saves counts successful saves
func (m *MemoryBackend) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

func (m *MemoryBackend) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}
