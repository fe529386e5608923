package driven

import "context"

// MailService creates drafts and sends messages through the user's
// mail account. This is an optional service - when nil, the email
// handler replies with a configuration advisory instead.
//
// Send is not safely retryable (a retry risks a double-sent email), so
// callers must confirm the recipient before invoking it.
type MailService interface {
	// CreateDraft creates a draft and returns its ID. The recipient
	// may be empty; the user can fill it in later.
	CreateDraft(ctx context.Context, to, subject, body string) (string, error)

	// Send sends a message and returns its ID. The recipient is required.
	Send(ctx context.Context, to, subject, body string) (string, error)
}
