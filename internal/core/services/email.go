package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
	"github.com/quill-labs/aide-cli/internal/logger"
)

const emailSystem = `You are a professional email assistant. Analyze the user's request and generate a well-structured email.

Extract or infer:
1. Recipient email address (if not provided, ask for it)
2. Subject line
3. Email body content

Format your response as:
TO: [email address or "MISSING - Please provide recipient email"]
SUBJECT: [subject line]
BODY:
[email content]

Make the email professional, clear, and appropriate for business communication.`

// missingMarker is the token the composer emits when it cannot
// determine the recipient.
const missingMarker = "MISSING"

// draftKeywords mark a request as draft-creation rather than send.
var draftKeywords = []string{"draft", "drafts", "save draft", "create draft"}

// EmailDraft is a parsed composition.
type EmailDraft struct {
	To      string
	Subject string
	Body    string
}

// HasRecipient reports whether a usable recipient was determined.
func (d EmailDraft) HasRecipient() bool {
	return d.To != "" && !strings.Contains(strings.ToUpper(d.To), missingMarker)
}

// ParseEmailDraft extracts the TO/SUBJECT/BODY sections from a
// composition response. Lines before BODY: that are not TO: or
// SUBJECT: are ignored; everything after BODY: is the body.
func ParseEmailDraft(text string) EmailDraft {
	var draft EmailDraft
	var bodyLines []string
	bodyStarted := false

	for _, line := range strings.Split(text, "\n") {
		switch {
		case bodyStarted:
			bodyLines = append(bodyLines, line)
		case strings.HasPrefix(line, "TO:"):
			draft.To = strings.TrimSpace(strings.TrimPrefix(line, "TO:"))
		case strings.HasPrefix(line, "SUBJECT:"):
			draft.Subject = strings.TrimSpace(strings.TrimPrefix(line, "SUBJECT:"))
		case strings.HasPrefix(line, "BODY:"):
			bodyStarted = true
		}
	}

	draft.Body = strings.TrimSpace(strings.Join(bodyLines, "\n"))
	return draft
}

// isDraftRequest reports whether the user asked for a draft rather
// than a send.
func isDraftRequest(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range draftKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// EmailHandler composes emails via the completion service and creates
// drafts or sends them through the mail port.
//
// Sending is the one side-effecting operation that is not safely
// retryable, so it is only attempted once a recipient is confirmed;
// otherwise the prepared draft is returned with a request for the
// missing address.
type EmailHandler struct {
	mail       driven.MailService
	completion driven.CompletionService
	session    *Session
}

var _ IntentHandler = (*EmailHandler)(nil)

// NewEmailHandler creates the email handler. The mail service may be
// nil; Handle then reports the integration as unconfigured.
func NewEmailHandler(mail driven.MailService, completion driven.CompletionService, session *Session) *EmailHandler {
	return &EmailHandler{mail: mail, completion: completion, session: session}
}

// Handle composes an email for the request and either saves it as a
// draft or sends it.
func (h *EmailHandler) Handle(ctx context.Context, message string) (string, error) {
	if h.mail == nil {
		return "", domain.ErrMailUnavailable
	}

	prompt := fmt.Sprintf("%s\n\nEmail Request: %s\n\nPlease compose a professional email based on this request.",
		h.session.Context(), message)

	composed, err := complete(ctx, h.completion, emailSystem, prompt)
	if err != nil {
		return "", err
	}

	draft := ParseEmailDraft(composed)
	if draft.Subject == "" && draft.Body == "" {
		// Unparseable composition: hand the raw draft back rather than fail
		logger.Warn("Email composition did not match the expected format")
		return fmt.Sprintf("I prepared the following draft, but could not process it automatically:\n\n%s", composed), nil
	}

	if isDraftRequest(message) {
		return h.createDraft(ctx, draft)
	}
	return h.send(ctx, draft)
}

func (h *EmailHandler) createDraft(ctx context.Context, draft EmailDraft) (string, error) {
	// Drafts may be recipient-less; the user can fill that in later
	to := draft.To
	if !draft.HasRecipient() {
		to = ""
	}

	id, err := h.mail.CreateDraft(ctx, to, draft.Subject, draft.Body)
	if err != nil {
		return "", fmt.Errorf("%w: create draft: %v", domain.ErrUpstreamUnavailable, err)
	}

	toDisplay := to
	if toDisplay == "" {
		toDisplay = "(no recipient - you can add one later)"
	}
	return fmt.Sprintf("Draft created.\n\nTo: %s\nSubject: %s\nDraft ID: %s\n\nYou can find and edit this draft in your mail client.",
		toDisplay, draft.Subject, id), nil
}

func (h *EmailHandler) send(ctx context.Context, draft EmailDraft) (string, error) {
	if !draft.HasRecipient() {
		// Not an error: surface the draft and ask for the address
		return fmt.Sprintf("I've drafted your email, but I need the recipient's address to send it:\n\nSubject: %s\n\n%s\n\nPlease provide the recipient's email address.",
			draft.Subject, draft.Body), nil
	}

	id, err := h.mail.Send(ctx, draft.To, draft.Subject, draft.Body)
	if err != nil {
		return "", fmt.Errorf("%w: send email: %v", domain.ErrUpstreamUnavailable, err)
	}

	return fmt.Sprintf("Email sent to %s.\n\nSubject: %s\nMessage ID: %s", draft.To, draft.Subject, id), nil
}
