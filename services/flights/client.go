// File: services/flights/client.go
package flights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flynext/models"
)

// ErrNotConfigured is returned when no AFS API key is set.
var ErrNotConfigured = fmt.Errorf("AFS API key not configured")

// FlightProvider is the subset of the Advanced Flight System used by the app.
type FlightProvider interface {
	Configured() bool
	Search(ctx context.Context, origin, destination, date string) (json.RawMessage, error)
	GetFlight(ctx context.Context, flightID string) (*models.AFSFlight, error)
	Book(ctx context.Context, req models.AFSBookingRequest) (*models.AFSBookingResponse, error)
}

// AFSClient talks to AFS over HTTP with the x-api-key header.
type AFSClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewAFSClient(baseURL, apiKey string) *AFSClient {
	return &AFSClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// StatusError is a non-2xx AFS answer.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AFS responded %d: %s", e.Status, e.Body)
}

func (c *AFSClient) Configured() bool {
	return c.APIKey != ""
}

func (c *AFSClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if !c.Configured() {
		return ErrNotConfigured
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode AFS request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build AFS request: %w", err)
	}
	req.Header.Set("x-api-key", c.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("AFS request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("read AFS response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Body: string(raw)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode AFS response: %w", err)
	}
	return nil
}

// Search proxies GET /api/flights and returns the body untouched.
func (c *AFSClient) Search(ctx context.Context, origin, destination, date string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("origin", origin)
	q.Set("destination", destination)
	q.Set("date", date)

	var out json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/flights", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *AFSClient) GetFlight(ctx context.Context, flightID string) (*models.AFSFlight, error) {
	var f models.AFSFlight
	if err := c.do(ctx, http.MethodGet, "/api/flights/"+url.PathEscape(flightID), nil, nil, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (c *AFSClient) Book(ctx context.Context, req models.AFSBookingRequest) (*models.AFSBookingResponse, error) {
	var out models.AFSBookingResponse
	if err := c.do(ctx, http.MethodPost, "/api/bookings", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
