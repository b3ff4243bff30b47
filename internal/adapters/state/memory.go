package state

import (
	"context"
	"sync"

	"github.com/selimk/drivefeed/internal/core/domain"
)

// Memory is an in-process StateStore used by tests and local runs.
type Memory struct {
	mu    sync.RWMutex
	state domain.SyncState
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (domain.SyncState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, nil
}

func (m *Memory) Save(ctx context.Context, state domain.SyncState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}
