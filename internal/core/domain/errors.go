package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable indicates an external capability call
	// (embedding, completion, calendar, mail) failed or timed out.
	// Handlers convert it into a user-facing advisory; it is never
	// fatal to the process.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrEmptyIndex indicates a query was issued before any successful
	// ingest. Distinct from "zero matches above threshold" so callers
	// can message the two situations differently.
	ErrEmptyIndex = errors.New("empty index")

	// ErrUnsupportedInput indicates ingestion was given empty or
	// unreadable content.
	ErrUnsupportedInput = errors.New("unsupported input")

	// ErrMissingRecipient indicates an email could not be sent because
	// no recipient address was determined. Surfaced as a request for
	// the missing information, not as a failure.
	ErrMissingRecipient = errors.New("missing recipient")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Retrieval is disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionUnavailable indicates the completion service is not
	// configured. Classification and response generation are disabled.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrCalendarUnavailable indicates calendar integration is not configured.
	ErrCalendarUnavailable = errors.New("calendar service unavailable")

	// ErrMailUnavailable indicates mail integration is not configured.
	ErrMailUnavailable = errors.New("mail service unavailable")
)
