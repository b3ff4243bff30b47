package ports

import (
	"context"

	"github.com/selimk/drivefeed/internal/core/domain"
)

// KnowledgeBase defines the destination for synced documents.
type KnowledgeBase interface {
	// UploadDocument pushes one file into the knowledge base and returns the
	// created document payload.
	UploadDocument(ctx context.Context, content domain.Content) (domain.Document, error)
}
