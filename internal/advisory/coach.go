// Package advisory fetches a short coaching tip from an external
// text-generation service. The tip is decoration: every failure mode —
// unconfigured endpoint, network error, bad status, unparseable body,
// empty content — degrades to a canned tip, and nothing here is ever on
// the critical path of recording a trip.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

// maxResponseSize bounds the response body read; a tip is a sentence, not
// a download.
const maxResponseSize = 1 << 20 // 1MB

// DefaultTimeout bounds the whole tip request.
const DefaultTimeout = 6 * time.Second

// fallbackTips are served whenever the external service cannot.
var fallbackTips = []string{
	"Head towards Spintex for steady afternoon bookings.",
	"Stick to East Legon for higher-value card payments today.",
	"Kotoka Airport arrivals peak in the evening — position early.",
	"Osu night traffic pays: short hops, quick turnover.",
}

// Context is the aggregate input handed to the service. Only today's
// numbers are shared; the ledger itself never leaves the device.
type Context struct {
	GrossToday    float64
	ExpensesToday float64
}

// Coach produces a short advisory tip. Implementations must always return
// a usable string; degrading to a canned tip is expected, failing is not.
type Coach interface {
	Tip(ctx context.Context, tc Context) string
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(cl *Client) { cl.log = log }
}

// NewClient builds a Client. An empty endpoint is valid and yields a client
// that always serves canned tips.
func NewClient(endpoint, apiKey, model string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Tip returns a short coaching string for today's numbers. Never errors;
// the caller always has something to show.
func (c *Client) Tip(ctx context.Context, tc Context) string {
	tip, err := c.fetch(ctx, tc)
	if err != nil {
		c.log.Debug("advisory unavailable, serving canned tip", "error", err)
		return CannedTip()
	}
	return tip
}

// CannedTip returns one of the static fallback strings.
func CannedTip() string {
	return fallbackTips[rand.Intn(len(fallbackTips))]
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *Client) fetch(ctx context.Context, tc Context) (string, error) {
	if c.endpoint == "" {
		return "", fmt.Errorf("no advisory endpoint configured")
	}

	prompt := fmt.Sprintf(
		"Act as an expert Ghana ride-hailing consultant. Current location: Accra/Kumasi area. "+
			"Context: Earnings GHS %.2f, Expenses GHS %.2f. "+
			"Provide ONE high-value profitable insight for a driver today, naming a specific "+
			"real-world hotspot in Ghana. Keep it under 15 words.",
		tc.GrossToday, tc.ExpensesToday,
	)

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("advisory endpoint returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("advisory response had no choices")
	}
	tip := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if tip == "" {
		return "", fmt.Errorf("advisory response was empty")
	}
	return tip, nil
}
