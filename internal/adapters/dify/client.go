package dify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/selimk/drivefeed/internal/core/domain"
)

// indexingOptions is the processing hint sent on the retry path. Some Dify
// versions reject the bare multipart upload with a 400 and want it.
const indexingOptions = `{"indexing_technique":"high_quality"}`

// Client implements ports.KnowledgeBase against the Dify dataset API.
type Client struct {
	http      *resty.Client
	datasetID string
	apiKey    string
	log       *zap.SugaredLogger
}

// NewClient builds a Dify client for one dataset. baseURL is the API root,
// e.g. https://api.dify.ai.
func NewClient(baseURL, datasetID, apiKey string, log *zap.SugaredLogger) *Client {
	return &Client{
		http:      resty.New().SetBaseURL(baseURL),
		datasetID: datasetID,
		apiKey:    apiKey,
		log:       log,
	}
}

// HTTPClient exposes the underlying client for tests.
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// UploadDocument creates a dataset document from a file. The first attempt
// sends the minimal multipart payload; on a 400 it retries once with the
// indexing options form field.
func (c *Client) UploadDocument(ctx context.Context, content domain.Content) (domain.Document, error) {
	if c.apiKey == "" || c.datasetID == "" {
		return nil, fmt.Errorf("missing DIFY_API_KEY or DIFY_DATASET_ID")
	}

	path := fmt.Sprintf("/v1/datasets/%s/document/create-by-file", c.datasetID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.apiKey).
		SetMultipartField("file", content.Filename, "application/octet-stream", bytes.NewReader(content.Data)).
		Post(path)
	if err != nil {
		return nil, fmt.Errorf("dify upload failed: %w", err)
	}

	if resp.StatusCode() == 400 {
		resp, err = c.http.R().
			SetContext(ctx).
			SetAuthToken(c.apiKey).
			SetMultipartField("file", content.Filename, "application/octet-stream", bytes.NewReader(content.Data)).
			SetMultipartFormData(map[string]string{"data": indexingOptions}).
			Post(path)
		if err != nil {
			return nil, fmt.Errorf("dify upload failed: %w", err)
		}
	}

	if !resp.IsSuccess() {
		body := resp.Body()
		if len(body) > 1000 {
			body = body[:1000]
		}
		c.log.Errorw("dify upload failed", "status", resp.StatusCode(), "body", string(body))
		return nil, fmt.Errorf("dify upload failed: status %d", resp.StatusCode())
	}

	var doc domain.Document
	if err := json.Unmarshal(resp.Body(), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dify response: %w", err)
	}
	return doc, nil
}
