// Package enrich calls the optional AI sidecar that augments local
// analysis with model-generated commentary.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 10 * time.Second

// Insight is one piece of model-generated commentary.
type Insight struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
}

// ForecastNote is the sidecar's read on the forward outlook.
type ForecastNote struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
}

// RiskNote is the sidecar's read on current risks.
type RiskNote struct {
	Summary  string   `json:"summary"`
	Warnings []string `json:"warnings,omitempty"`
}

// Client talks to the sidecar. A zero base URL is a configuration error;
// use Enabled to decide whether to construct one.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a sidecar client with the given base URL. A zero
// timeout falls back to 10 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Insights fetches model commentary for the user's recent activity.
func (c *Client) Insights(ctx context.Context, userID string) ([]Insight, error) {
	var out []Insight
	if err := c.get(ctx, "/api/insights", userID, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// Forecast fetches the sidecar's forward-looking note.
func (c *Client) Forecast(ctx context.Context, userID string) (*ForecastNote, error) {
	out := new(ForecastNote)
	if err := c.get(ctx, "/api/forecast", userID, out); err != nil {
		return nil, err
	}

	return out, nil
}

// Risks fetches the sidecar's risk note.
func (c *Client) Risks(ctx context.Context, userID string) (*RiskNote, error) {
	out := new(RiskNote)
	if err := c.get(ctx, "/api/risks", userID, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (c *Client) get(ctx context.Context, path, userID string, out any) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("building url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("X-User-ID", userID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling sidecar: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sidecar returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding sidecar response: %w", err)
	}

	return nil
}
