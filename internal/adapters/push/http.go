// Package push contains PushDispatcher implementations.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/RobotsBuildingEducation/life-assistant-sub000/internal/ports/secondary"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// HTTPDispatcher posts notifications to a push gateway.
type HTTPDispatcher struct {
	endpoint  string
	authToken string
	client    *http.Client
	newID     func() string
}

type gatewayRequest struct {
	ID    string `json:"id"`
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// NewHTTPDispatcher creates a dispatcher for the gateway at endpoint.
// authToken is sent as a bearer token when non-empty.
func NewHTTPDispatcher(endpoint, authToken string, timeout time.Duration) *HTTPDispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPDispatcher{
		endpoint:  endpoint,
		authToken: authToken,
		client:    &http.Client{Timeout: timeout},
		newID:     uuid.NewString,
	}
}

// Send makes one delivery attempt. Any failure wraps secondary.ErrDispatchFailed.
func (d *HTTPDispatcher) Send(ctx context.Context, msg secondary.PushMessage) error {
	if msg.Token == "" {
		return fmt.Errorf("no destination token: %w", secondary.ErrDispatchFailed)
	}

	body, err := json.Marshal(gatewayRequest{
		ID:    d.newID(),
		To:    msg.Token,
		Title: msg.Title,
		Body:  msg.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w: %w", secondary.ErrDispatchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if d.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.authToken)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w: %w", secondary.ErrDispatchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push gateway returned %d: %s: %w", resp.StatusCode, bytes.TrimSpace(respBody), secondary.ErrDispatchFailed)
	}

	return nil
}

// Ensure HTTPDispatcher implements the interface
var _ secondary.PushDispatcher = (*HTTPDispatcher)(nil)
