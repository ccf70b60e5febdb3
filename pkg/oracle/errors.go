package oracle

import "errors"

var (
	// ErrEmptyQuestion is returned when the question is blank after trimming.
	ErrEmptyQuestion = errors.New("oracle: question is empty")

	// ErrMissingEndpoint is returned when the client is built without an endpoint URL.
	ErrMissingEndpoint = errors.New("oracle: endpoint URL is required")

	// ErrUpstreamStatus is returned when the chatbot endpoint answers with a
	// non-2xx status.
	ErrUpstreamStatus = errors.New("oracle: upstream returned error status")

	// ErrEmptyResponse is returned when the endpoint answers successfully
	// but carries no recognizable answer text.
	ErrEmptyResponse = errors.New("oracle: upstream response contained no answer")
)
