package ports

import "context"

// SyncService is what the HTTP layer needs from the sync core.
type SyncService interface {
	// Pull runs one change-processing pass from the stored cursor.
	// Returns domain.ErrNoPageToken when the cursor was never initialized.
	Pull(ctx context.Context) error
	// InitWatch bootstraps watching: stores a fresh cursor and registers the
	// push channel. Returns the channel ID and the start page token.
	InitWatch(ctx context.Context) (channelID string, startPageToken string, err error)
}
