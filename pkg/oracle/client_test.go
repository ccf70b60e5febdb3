package oracle_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealmind/nutrikit/pkg/oracle"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...oracle.ClientOption) *oracle.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := oracle.NewClient(server.URL, opts...)
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := oracle.NewClient("")
	assert.ErrorIs(t, err, oracle.ErrMissingEndpoint)
}

func TestClient_Ask_JSON(t *testing.T) {
	t.Parallel()

	t.Run("posts question and reads text field", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "what is fiber?", body["question"])

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"text": "fiber is indigestible carbohydrate"})
		})

		answer, err := client.Ask(context.Background(), "what is fiber?")
		require.NoError(t, err)
		assert.Equal(t, "fiber is indigestible carbohydrate", answer)
	})

	t.Run("accepts alternate answer fields", func(t *testing.T) {
		t.Parallel()

		for _, field := range []string{"answer", "response", "message"} {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(map[string]string{field: "via " + field})
			})

			answer, err := client.Ask(context.Background(), "q")
			require.NoError(t, err, "field %q", field)
			assert.Equal(t, "via "+field, answer)
		}
	})

	t.Run("empty object is an error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{}`))
		})

		_, err := client.Ask(context.Background(), "q")
		assert.ErrorIs(t, err, oracle.ErrEmptyResponse)
	})
}

func TestClient_Ask_Stream(t *testing.T) {
	t.Parallel()

	t.Run("accumulates token frames", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte("data: {\"token\":\"eat \"}\n"))
			_, _ = w.Write([]byte("data: {\"token\":\"more \"}\n"))
			_, _ = w.Write([]byte("\n"))
			_, _ = w.Write([]byte("data: {\"token\":\"greens\"}\n"))
			_, _ = w.Write([]byte("data: [DONE]\n"))
		})

		answer, err := client.Ask(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, "eat more greens", answer)
	})

	t.Run("raw token frames", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			_, _ = w.Write([]byte("data: hello\n"))
		})

		answer, err := client.Ask(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, "hello", answer)
	})

	t.Run("stream with no frames is an error", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
		})

		_, err := client.Ask(context.Background(), "q")
		assert.ErrorIs(t, err, oracle.ErrEmptyResponse)
	})
}

func TestClient_Ask_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty question", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := client.Ask(context.Background(), "   ")
		assert.ErrorIs(t, err, oracle.ErrEmptyQuestion)
	})

	t.Run("upstream error status", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Ask(context.Background(), "q")
		assert.ErrorIs(t, err, oracle.ErrUpstreamStatus)
	})

	t.Run("timeout is reported, not hung", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(5 * time.Second):
			}
		}, oracle.WithTimeout(50*time.Millisecond))

		start := time.Now()
		_, err := client.Ask(context.Background(), "q")
		require.Error(t, err)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("breaker opens after consecutive failures", func(t *testing.T) {
		t.Parallel()

		breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
			Name:        "test",
			MaxRequests: 1,
			Timeout:     time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 2
			},
		})

		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}, oracle.WithBreaker(breaker))

		for range 4 {
			_, err := client.Ask(context.Background(), "q")
			require.Error(t, err)
		}

		// Once open, calls stop reaching the upstream.
		assert.Equal(t, 2, calls)
	})
}
