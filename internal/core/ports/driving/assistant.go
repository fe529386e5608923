package driving

import (
	"context"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// Assistant is the conversational entry point: it classifies a message
// and routes it to the matching handler.
type Assistant interface {
	// Chat processes one user message end to end and returns the
	// assistant's reply. Upstream failures are converted into advisory
	// replies; Chat only errors on misconfiguration.
	Chat(ctx context.Context, message string) (string, error)

	// Classify determines the intent of a message without handling it.
	Classify(ctx context.Context, message string) domain.Intent
}
