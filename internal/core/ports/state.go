package ports

import (
	"context"

	"github.com/selimk/drivefeed/internal/core/domain"
)

// StateStore persists the sync cursor across restarts and instances.
type StateStore interface {
	Load(ctx context.Context) (domain.SyncState, error)
	Save(ctx context.Context, state domain.SyncState) error
}
