package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/selimk/drivefeed/internal/core/domain"
	"github.com/selimk/drivefeed/internal/core/ports"
)

// Options carries the sync policy knobs sourced from configuration.
type Options struct {
	// WebhookURL is the public https base URL of this service. Drive posts
	// notifications to WebhookURL + "/drive-webhook".
	WebhookURL string
	// ChannelToken is the shared secret attached to the watch channel.
	ChannelToken string
	// TargetFolderID, when set, restricts syncing to files whose Drive
	// parents include this folder.
	TargetFolderID string
}

// Service orchestrates one-way sync from a ChangeSource into a KnowledgeBase,
// advancing a persisted page-token cursor after each processed page.
type Service struct {
	source ports.ChangeSource
	kb     ports.KnowledgeBase
	state  ports.StateStore
	opts   Options
	log    *zap.SugaredLogger
}

// New wires the sync service from its ports.
func New(source ports.ChangeSource, kb ports.KnowledgeBase, state ports.StateStore, opts Options, log *zap.SugaredLogger) *Service {
	return &Service{source: source, kb: kb, state: state, opts: opts, log: log}
}

// Pull loads the stored cursor and processes one page of changes from it.
func (s *Service) Pull(ctx context.Context) error {
	st, err := s.state.Load(ctx)
	if err != nil {
		return fmt.Errorf("load sync state: %w", err)
	}
	if st.PageToken == "" {
		return domain.ErrNoPageToken
	}
	return s.ProcessChanges(ctx, st.PageToken)
}

// ProcessChanges pulls one page of changes from pageToken, uploads every
// changed file that passes the filters, then advances the stored cursor.
// An upload failure aborts the pass without advancing, so the page is
// retried on the next notification.
func (s *Service) ProcessChanges(ctx context.Context, pageToken string) error {
	page, err := s.source.Changes(ctx, pageToken)
	if err != nil {
		return fmt.Errorf("list changes: %w", err)
	}

	for _, ch := range page.Changes {
		if ch.Removed || ch.FileID == "" {
			continue
		}

		file, err := s.source.FileMeta(ctx, ch.FileID)
		if err != nil {
			return fmt.Errorf("file metadata for %s: %w", ch.FileID, err)
		}
		if file.Trashed {
			continue
		}
		if !s.inTargetFolder(file) {
			s.log.Infow("skipping file outside target folder", "name", file.Name, "id", file.ID)
			continue
		}

		content, err := s.source.Fetch(ctx, file)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", file.ID, err)
		}

		s.log.Infow("uploading to knowledge base", "filename", content.Filename, "id", file.ID)
		if _, err := s.kb.UploadDocument(ctx, content); err != nil {
			return fmt.Errorf("upload %s: %w", content.Filename, err)
		}
	}

	// newStartPageToken is set on the last page, nextPageToken otherwise.
	// If neither came back, keep the old cursor.
	token := page.NewStartPageToken
	if token == "" {
		token = page.NextPageToken
	}
	if token != "" {
		if err := s.state.Save(ctx, domain.SyncState{PageToken: token}); err != nil {
			return fmt.Errorf("save sync state: %w", err)
		}
	}
	return nil
}

// InitWatch fetches a fresh start token, persists it, and registers the push
// channel pointing back at this service.
func (s *Service) InitWatch(ctx context.Context) (string, string, error) {
	if !strings.HasPrefix(s.opts.WebhookURL, "https://") {
		return "", "", fmt.Errorf("WEBHOOK_URL missing or invalid (must be an https URL)")
	}

	token, err := s.source.StartPageToken(ctx)
	if err != nil {
		return "", "", fmt.Errorf("get start page token: %w", err)
	}
	if err := s.state.Save(ctx, domain.SyncState{PageToken: token}); err != nil {
		return "", "", fmt.Errorf("save sync state: %w", err)
	}

	ch := domain.WatchChannel{
		ID:      uuid.NewString(),
		Address: strings.TrimSuffix(s.opts.WebhookURL, "/") + "/drive-webhook",
		Token:   s.opts.ChannelToken,
	}
	if err := s.source.Watch(ctx, token, ch); err != nil {
		return "", "", fmt.Errorf("register watch channel: %w", err)
	}
	return ch.ID, token, nil
}

func (s *Service) inTargetFolder(file domain.File) bool {
	if s.opts.TargetFolderID == "" {
		return true
	}
	for _, p := range file.Parents {
		if p == s.opts.TargetFolderID {
			return true
		}
	}
	return false
}
