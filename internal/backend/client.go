// Package backend is the HTTP client for the SmartSight inference backend.
// The backend is an external collaborator: this package only assembles
// submissions, moves bytes, and decodes the reply envelope. Interpretation of
// the answer itself lives in the answer package.
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/smartsight-ai/sightchat/internal/domain"
)

// AskResponse mirrors the backend's JSON reply to an upload. The image and
// caption lists are optional and parallel by index; llm_response carries the
// primary answer, possibly fenced as ```json ... ```.
type AskResponse struct {
	Message           string   `json:"message"`
	SimilarImages     []string `json:"similar_images"`
	RetrievedCaptions []string `json:"retrieved_captions"`
	LLMResponse       string   `json:"llm_response"`
	SessionID         string   `json:"session_id"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
	logger    *slog.Logger
}

// NewClient returns a client for the backend at baseURL. sessionID is echoed
// on every upload so the backend can keep per-session conversation memory.
func NewClient(baseURL, sessionID string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		sessionID: sessionID,
		// Uploads block on embedding generation and an LLM round trip.
		client: &http.Client{Timeout: 120 * time.Second},
		logger: logger,
	}
}

// Ask submits a query and zero or more images to POST {base}/upload/ and
// returns the decoded reply. A non-2xx status is a transport failure.
func (c *Client) Ask(ctx context.Context, query string, images []domain.ImageData) (*AskResponse, error) {
	body, contentType, err := BuildForm(query, c.sessionID, images)
	if err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload/", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call backend: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("backend returned status %d: %s", resp.StatusCode, errBody)
	}

	var reply AskResponse
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &reply, nil
}

// Reset tells the backend to discard its server-held session context via
// POST {base}/reset/. The returned message is diagnostic only.
func (c *Client) Reset(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reset/", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call backend: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var reply struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return reply.Message, nil
}

// Ping probes GET {base}/test/ and reports reachability.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/test/", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer c.closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) closeBody(body io.Closer) {
	if err := body.Close(); err != nil {
		c.logger.Error("failed to close response body", "error", err)
	}
}
