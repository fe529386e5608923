package google

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
)

// Ensure MailAdapter implements the interface.
var _ driven.MailService = (*MailAdapter)(nil)

// authenticatedUser addresses the account the token belongs to.
const authenticatedUser = "me"

// MailAdapter creates drafts and sends mail through the Gmail API.
type MailAdapter struct {
	service *gmail.Service
	limiter *RateLimiter
}

// NewMailAdapter creates a mail adapter using the provided TokenSource
// for authentication.
func NewMailAdapter(ctx context.Context, ts oauth2.TokenSource) (*MailAdapter, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	return &MailAdapter{
		service: service,
		limiter: NewRateLimiter(ServiceGmail),
	}, nil
}

// CreateDraft saves a draft and returns its ID. The recipient may be
// empty; Gmail accepts recipient-less drafts.
func (a *MailAdapter) CreateDraft(ctx context.Context, to, subject, body string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	draft, err := a.service.Users.Drafts.Create(authenticatedUser, &gmail.Draft{
		Message: &gmail.Message{Raw: encodeMessage(to, subject, body)},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create draft: %w", err)
	}
	return draft.Id, nil
}

// Send sends a message and returns its ID.
func (a *MailAdapter) Send(ctx context.Context, to, subject, body string) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", err
	}

	msg, err := a.service.Users.Messages.Send(authenticatedUser, &gmail.Message{
		Raw: encodeMessage(to, subject, body),
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return msg.Id, nil
}

// encodeMessage builds a base64url-encoded RFC 2822 message, the format
// the Gmail API expects in the Raw field.
func encodeMessage(to, subject, body string) string {
	var b strings.Builder
	if to != "" {
		fmt.Fprintf(&b, "To: %s\r\n", to)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)

	return base64.URLEncoding.EncodeToString([]byte(b.String()))
}
