package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/selimk/drivefeed/internal/core/domain"
)

const (
	mimeGoogleApps = "application/vnd.google-apps"
	mimeDocx       = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeXlsx       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF        = "application/pdf"
)

// Adapter implements ports.ChangeSource on the Google Drive v3 API.
// The underlying client is built lazily with application-default
// credentials so startup succeeds even before credentials exist.
type Adapter struct {
	log *zap.SugaredLogger

	mu  sync.Mutex
	svc *drive.Service
}

// NewAdapter creates a new Drive adapter instance.
func NewAdapter(log *zap.SugaredLogger) *Adapter {
	return &Adapter{log: log}
}

func (a *Adapter) service(ctx context.Context) (*drive.Service, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.svc != nil {
		return a.svc, nil
	}
	svc, err := drive.NewService(ctx, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	a.svc = svc
	return svc, nil
}

// StartPageToken returns a cursor pointing at the current head of the change feed.
func (a *Adapter) StartPageToken(ctx context.Context) (string, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return "", err
	}
	resp, err := svc.Changes.GetStartPageToken().Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get start page token: %w", err)
	}
	return resp.StartPageToken, nil
}

// Watch registers a web_hook push channel for changes after pageToken.
func (a *Adapter) Watch(ctx context.Context, pageToken string, ch domain.WatchChannel) error {
	svc, err := a.service(ctx)
	if err != nil {
		return err
	}
	_, err = svc.Changes.Watch(pageToken, &drive.Channel{
		Id:      ch.ID,
		Type:    "web_hook",
		Address: ch.Address,
		Token:   ch.Token,
	}).SupportsAllDrives(true).IncludeItemsFromAllDrives(true).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to register watch channel: %w", err)
	}
	return nil
}

// Changes lists one page of the change feed, including shared drives.
func (a *Adapter) Changes(ctx context.Context, pageToken string) (domain.ChangePage, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return domain.ChangePage{}, err
	}
	list, err := svc.Changes.List(pageToken).
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true).
		Context(ctx).Do()
	if err != nil {
		return domain.ChangePage{}, fmt.Errorf("failed to list changes: %w", err)
	}

	page := domain.ChangePage{
		NewStartPageToken: list.NewStartPageToken,
		NextPageToken:     list.NextPageToken,
	}
	for _, ch := range list.Changes {
		page.Changes = append(page.Changes, domain.Change{
			FileID:  ch.FileId,
			Removed: ch.Removed,
		})
	}
	return page, nil
}

// FileMeta fetches the metadata fields the sync pass filters on.
func (a *Adapter) FileMeta(ctx context.Context, fileID string) (domain.File, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return domain.File{}, err
	}
	f, err := svc.Files.Get(fileID).
		Fields("id, name, mimeType, trashed, parents").
		Context(ctx).Do()
	if err != nil {
		return domain.File{}, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return domain.File{
		ID:       f.Id,
		Name:     f.Name,
		MimeType: f.MimeType,
		Trashed:  f.Trashed,
		Parents:  f.Parents,
	}, nil
}

// Fetch exports Google-native files to portable formats and downloads
// everything else as-is.
func (a *Adapter) Fetch(ctx context.Context, file domain.File) (domain.Content, error) {
	svc, err := a.service(ctx)
	if err != nil {
		return domain.Content{}, err
	}

	if exportMime, ext, ok := ExportTarget(file.MimeType); ok {
		name := file.Name
		if name == "" {
			name = file.ID
		}
		resp, err := svc.Files.Export(file.ID, exportMime).Context(ctx).Download()
		if err != nil {
			return domain.Content{}, fmt.Errorf("failed to export %s: %w", file.ID, err)
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return domain.Content{}, fmt.Errorf("failed to read export of %s: %w", file.ID, err)
		}
		return domain.Content{Filename: name + ext, Data: data}, nil
	}

	resp, err := svc.Files.Get(file.ID).Context(ctx).Download()
	if err != nil {
		return domain.Content{}, fmt.Errorf("failed to download %s: %w", file.ID, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Content{}, fmt.Errorf("failed to read download of %s: %w", file.ID, err)
	}
	name := file.Name
	if name == "" {
		name = file.ID
	}
	return domain.Content{Filename: name, Data: data}, nil
}

// ExportTarget maps a Google-native mime type to the export mime type and
// filename extension. ok is false for regular files, which download as-is.
// Docs become .docx, Sheets become .xlsx, everything else native (Slides,
// Drawings, ...) becomes .pdf.
func ExportTarget(mimeType string) (exportMime, ext string, ok bool) {
	if !strings.HasPrefix(mimeType, mimeGoogleApps) {
		return "", "", false
	}
	switch {
	case strings.HasSuffix(mimeType, ".document"):
		return mimeDocx, ".docx", true
	case strings.HasSuffix(mimeType, ".spreadsheet"):
		return mimeXlsx, ".xlsx", true
	default:
		return mimePDF, ".pdf", true
	}
}
