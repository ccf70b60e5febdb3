package oracle

import (
	"context"
	"log/slog"
)

// AnswerSource tells the UI where an answer came from.
type AnswerSource string

const (
	SourceCache    AnswerSource = "cache"
	SourceLive     AnswerSource = "live"
	SourceFallback AnswerSource = "fallback"
)

// Answer is the result of an Ask call.
type Answer struct {
	Text   string
	Source AnswerSource
}

// Service ties the cache, the live client and the mock fallback together.
// Ask never fails from the caller's point of view: upstream errors and
// timeouts are logged here and replaced with a deterministic local answer.
type Service struct {
	cache  *ResponseCache
	client *Client
	mock   *MockResponder
	log    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger used for upstream failures.
func WithLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCache replaces the default response cache.
func WithCache(cache *ResponseCache) ServiceOption {
	return func(s *Service) {
		if cache != nil {
			s.cache = cache
		}
	}
}

// WithMockResponder replaces the embedded fallback rule table.
func WithMockResponder(mock *MockResponder) ServiceOption {
	return func(s *Service) {
		if mock != nil {
			s.mock = mock
		}
	}
}

// NewService creates the oracle service around a live client. Panics if
// client is nil to fail fast during initialization.
func NewService(client *Client, opts ...ServiceOption) *Service {
	if client == nil {
		panic("oracle: Client is required")
	}

	s := &Service{
		cache:  NewResponseCache(),
		client: client,
		mock:   NewMockResponder(),
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers the question from the cache when possible, the live endpoint
// otherwise, and the local mock when the endpoint fails. Only live answers
// are cached; fallback answers are synthetic and must not mask a recovered
// upstream for the next five minutes.
func (s *Service) Ask(ctx context.Context, question string) Answer {
	if cached, ok := s.cache.Get(question); ok {
		return Answer{Text: cached, Source: SourceCache}
	}

	text, err := s.client.Ask(ctx, question)
	if err != nil {
		s.log.Warn("chatbot call failed, using local fallback",
			slog.String("error", err.Error()))
		return Answer{Text: s.mock.Respond(question), Source: SourceFallback}
	}

	s.cache.Set(question, text)
	return Answer{Text: text, Source: SourceLive}
}
