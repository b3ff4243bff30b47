package state

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/selimk/drivefeed/internal/core/domain"
)

const (
	collection = "state"
	document   = "drive"
)

// Firestore implements ports.StateStore on a single Firestore document.
// The client is created lazily on first use so the service can start
// without reachable Google credentials.
type Firestore struct {
	projectID string

	mu     sync.Mutex
	client *firestore.Client
}

// NewFirestore creates the store. An empty projectID means detect it from
// the environment (metadata server on Cloud Run).
func NewFirestore(projectID string) *Firestore {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}
	return &Firestore{projectID: projectID}
}

func (s *Firestore) get(ctx context.Context) (*firestore.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.client != nil {
		return s.client, nil
	}
	client, err := firestore.NewClient(ctx, s.projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	s.client = client
	return client, nil
}

// Load reads the sync cursor. A missing document is not an error: it just
// means /init has never run, so an empty state comes back.
func (s *Firestore) Load(ctx context.Context) (domain.SyncState, error) {
	client, err := s.get(ctx)
	if err != nil {
		return domain.SyncState{}, err
	}
	snap, err := client.Collection(collection).Doc(document).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return domain.SyncState{}, nil
	}
	if err != nil {
		return domain.SyncState{}, fmt.Errorf("failed to read sync state: %w", err)
	}
	var st domain.SyncState
	if err := snap.DataTo(&st); err != nil {
		return domain.SyncState{}, fmt.Errorf("failed to decode sync state: %w", err)
	}
	return st, nil
}

// Save merges the cursor into the state document, leaving any other fields
// stored there untouched.
func (s *Firestore) Save(ctx context.Context, state domain.SyncState) error {
	client, err := s.get(ctx)
	if err != nil {
		return err
	}
	_, err = client.Collection(collection).Doc(document).Set(ctx, map[string]any{
		"pageToken": state.PageToken,
	}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to write sync state: %w", err)
	}
	return nil
}
