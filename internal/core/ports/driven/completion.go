package driven

import "context"

// CompletionService provides black-box text completion for intent
// classification and response generation.
//
// Responses may be non-deterministic and wrapped in arbitrary prose;
// callers that need structure (the intent parser, the email composer)
// must tolerate verbose output.
type CompletionService interface {
	// Complete sends the system instructions and ordered messages to
	// the model and returns the completion text.
	Complete(ctx context.Context, system string, messages []ChatMessage) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "user" or "assistant".
	Role string

	// Content is the message text.
	Content string
}
