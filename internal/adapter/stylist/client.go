// Package stylist provides chat.Stylist implementations: an HTTP client for
// the stylist and booking endpoints, and an in-process adapter.
package stylist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xiaot623/neuralthreads/internal/chat"
	"github.com/xiaot623/neuralthreads/internal/domain"
)

// StatusError is returned for non-200 answers.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, e.Message)
}

// Client is an HTTP client for the stylist backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Ensure Client implements chat.Stylist.
var _ chat.Stylist = (*Client)(nil)

// Ask calls POST /ai-stylist. A 429 is reported as chat.ErrRateLimited.
func (c *Client) Ask(ctx context.Context, req domain.StylistRequest) (*domain.StylistResponse, error) {
	var resp domain.StylistResponse
	if err := c.post(ctx, "/ai-stylist", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateBooking calls POST /create-booking.
func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error) {
	var resp struct {
		Data *domain.Booking `json:"data"`
	}
	if err := c.post(ctx, "/create-booking", req, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("booking response has no data")
	}
	return resp.Data, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%s: %w", path, chat.ErrRateLimited)
		}
		var errResp domain.ErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &StatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
