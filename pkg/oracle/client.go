package oracle

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
)

// DefaultRequestTimeout caps a single chatbot call, streaming included. On
// expiry the caller gets a timeout error instead of a hung flow; there are no
// automatic retries, the user re-asks if they want to.
const DefaultRequestTimeout = 20 * time.Second

// Config holds the chatbot endpoint settings.
type Config struct {
	Endpoint       string        `env:"ORACLE_ENDPOINT,required"`
	RequestTimeout time.Duration `env:"ORACLE_REQUEST_TIMEOUT" envDefault:"20s"`
}

// Client calls the external chatbot endpoint. All calls go through a circuit
// breaker so a flapping upstream is cut off quickly and the mock fallback
// takes over instead of every question waiting out the full timeout.
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
	breaker    *gobreaker.CircuitBreaker[string]
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBreaker supplies a caller-configured circuit breaker, useful in tests
// that need tight trip thresholds.
func WithBreaker(cb *gobreaker.CircuitBreaker[string]) ClientOption {
	return func(c *Client) {
		if cb != nil {
			c.breaker = cb
		}
	}
}

// NewClient creates a chatbot client for the given endpoint.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	c := &Client{
		httpClient: &http.Client{},
		endpoint:   endpoint,
		timeout:    DefaultRequestTimeout,
		breaker: gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "oracle-chatbot",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 5
			},
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Ask posts the question and returns the answer text. The endpoint may
// answer either as a newline-delimited token stream ("data: {token}" frames)
// or as a single JSON object; both transports produce the same result.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.breaker.Execute(func() (string, error) {
		return c.ask(ctx, question)
	})
}

func (c *Client) ask(ctx context.Context, question string) (string, error) {
	body, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream, application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return readStream(resp)
	}
	return readJSON(resp)
}

// readStream accumulates newline-delimited "data: ..." frames. Each frame
// carries either a JSON object with a token field or a raw token.
func readStream(resp *http.Response) (string, error) {
	var sb strings.Builder

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		data, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "" || data == "[DONE]" {
			continue
		}

		var frame struct {
			Token string `json:"token"`
		}
		if err := json.Unmarshal([]byte(data), &frame); err == nil && frame.Token != "" {
			sb.WriteString(frame.Token)
			continue
		}
		sb.WriteString(data)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", ErrEmptyResponse
	}
	return answer, nil
}

// readJSON extracts the answer from a single JSON object, accepting the
// first non-empty of the known field spellings.
func readJSON(resp *http.Response) (string, error) {
	var payload struct {
		Text     string `json:"text"`
		Answer   string `json:"answer"`
		Response string `json:"response"`
		Message  string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	for _, candidate := range []string{payload.Text, payload.Answer, payload.Response, payload.Message} {
		if answer := strings.TrimSpace(candidate); answer != "" {
			return answer, nil
		}
	}
	return "", ErrEmptyResponse
}
