package dify

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/selimk/drivefeed/internal/core/domain"
)

const uploadURL = "https://api.dify.ai/v1/datasets/ds-1/document/create-by-file"

func newTestClient() *Client {
	return NewClient("https://api.dify.ai", "ds-1", "key-1", zap.NewNop().Sugar())
}

func testContent() domain.Content {
	return domain.Content{Filename: "notes.docx", Data: []byte("file body")}
}

func TestUploadDocument(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", uploadURL,
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, req.ParseMultipartForm(1<<20))
			auth := req.Header.Get("Authorization")
			assert.Equal(t, "Bearer key-1", auth)

			file, header, err := req.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "notes.docx", header.Filename)
			assert.Equal(t, "application/octet-stream", header.Header.Get("Content-Type"))

			return httpmock.NewJsonResponse(200, map[string]any{
				"document": map[string]any{"id": "doc-7"},
			})
		},
	)

	doc, err := client.UploadDocument(context.Background(), testContent())
	require.NoError(t, err)
	assert.Contains(t, doc, "document")
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestUploadDocumentRetriesOn400WithIndexingOptions(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	defer httpmock.DeactivateAndReset()

	calls := 0
	httpmock.RegisterResponder("POST", uploadURL,
		func(req *http.Request) (*http.Response, error) {
			calls++
			require.NoError(t, req.ParseMultipartForm(1<<20))
			if calls == 1 {
				assert.Empty(t, req.FormValue("data"))
				return httpmock.NewJsonResponse(400, map[string]any{"message": "data required"})
			}
			assert.True(t, strings.Contains(req.FormValue("data"), "high_quality"))
			return httpmock.NewJsonResponse(200, map[string]any{"document": map[string]any{"id": "doc-8"}})
		},
	)

	doc, err := client.UploadDocument(context.Background(), testContent())
	require.NoError(t, err)
	assert.Contains(t, doc, "document")
	assert.Equal(t, 2, calls)
}

func TestUploadDocumentServerError(t *testing.T) {
	client := newTestClient()
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", uploadURL,
		httpmock.NewStringResponder(500, "internal error"))

	_, err := client.UploadDocument(context.Background(), testContent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestUploadDocumentMissingCredentials(t *testing.T) {
	client := NewClient("https://api.dify.ai", "", "", zap.NewNop().Sugar())
	httpmock.ActivateNonDefault(client.HTTPClient().GetClient())
	defer httpmock.DeactivateAndReset()

	_, err := client.UploadDocument(context.Background(), testContent())
	require.Error(t, err)
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}
