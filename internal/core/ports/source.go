package ports

import (
	"context"

	"github.com/selimk/drivefeed/internal/core/domain"
)

// ChangeSource defines the operations we need from the document origin.
// This interface keeps the sync logic independent of Google Drive, so a
// different origin (Dropbox, S3 events, ...) could be plugged in without
// touching the core.
type ChangeSource interface {
	// StartPageToken returns a fresh cursor pointing at "now" in the change feed.
	StartPageToken(ctx context.Context) (string, error)
	// Watch registers a push-notification channel for changes after pageToken.
	Watch(ctx context.Context, pageToken string, ch domain.WatchChannel) error
	// Changes lists one page of the change feed starting at pageToken.
	Changes(ctx context.Context, pageToken string) (domain.ChangePage, error)
	// FileMeta fetches the sync-relevant metadata for a single file.
	FileMeta(ctx context.Context, fileID string) (domain.File, error)
	// Fetch returns the uploadable content for a file, exporting native
	// formats to portable ones where needed.
	Fetch(ctx context.Context, file domain.File) (domain.Content, error)
}
