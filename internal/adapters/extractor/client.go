// Package extractor is the HTTP adapter for the remote action-extraction
// service.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/example/minutes/internal/core/extraction"
	"github.com/example/minutes/internal/ports/secondary"
)

const extractPath = "/api/v1/extract-actions"

// Client calls the extraction endpoint over HTTP. It implements
// secondary.RemoteExtractor: non-2xx responses come back as
// *extraction.RemoteError so the orchestrator can classify them; transport
// and decode failures come back as plain wrapped errors.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   secondary.CredentialSource
	log     *zap.Logger
}

// NewClient creates a client for the service at baseURL. creds may be nil
// for unauthenticated requests; log may be nil.
func NewClient(baseURL string, creds secondary.CredentialSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
		creds:   creds,
		log:     log,
	}
}

// errorBody is the error shape the service returns on non-2xx responses.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// ExtractActions posts the request payload and decodes the result.
func (c *Client) ExtractActions(ctx context.Context, req *secondary.ExtractionRequest) (*secondary.ExtractionResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+extractPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.creds != nil {
		// Either header may be absent; unauthenticated trial requests are
		// legal.
		key, installID := c.creds.Credentials(ctx)
		if key != "" {
			httpReq.Header.Set("X-License-Key", key)
		}
		if installID != "" {
			httpReq.Header.Set("X-Installation-Id", installID)
		}
	}

	c.log.Debug("calling extraction service",
		zap.String("url", httpReq.URL.String()),
		zap.Int("notes", len(req.MeetingDetails.MeetingInstance.Notes)))

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.remoteError(resp)
	}

	var result secondary.ExtractionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}
	return &result, nil
}

func (c *Client) remoteError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	msg := ""
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err == nil {
		if eb.Detail != "" {
			msg = eb.Detail
		} else if eb.Error != "" {
			msg = eb.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	c.log.Warn("extraction service error",
		zap.Int("status", resp.StatusCode),
		zap.String("message", msg))

	return &extraction.RemoteError{StatusCode: resp.StatusCode, Message: msg}
}
