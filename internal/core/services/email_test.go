package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

func TestParseEmailDraft(t *testing.T) {
	text := `TO: alice@example.com
SUBJECT: Quarterly review
BODY:
Hi Alice,

Please find the review attached.

Best,
Bob`

	draft := ParseEmailDraft(text)
	assert.Equal(t, "alice@example.com", draft.To)
	assert.Equal(t, "Quarterly review", draft.Subject)
	assert.Equal(t, "Hi Alice,\n\nPlease find the review attached.\n\nBest,\nBob", draft.Body)
	assert.True(t, draft.HasRecipient())
}

func TestParseEmailDraftMissingRecipient(t *testing.T) {
	text := `TO: MISSING - Please provide recipient email
SUBJECT: Follow up
BODY:
Following up on our call.`

	draft := ParseEmailDraft(text)
	assert.False(t, draft.HasRecipient())
	assert.Equal(t, "Follow up", draft.Subject)
}

func TestParseEmailDraftUnstructured(t *testing.T) {
	draft := ParseEmailDraft("Sorry, I can't compose that email.")
	assert.Empty(t, draft.To)
	assert.Empty(t, draft.Subject)
	assert.Empty(t, draft.Body)
}

func TestParseEmailDraftIgnoresPreamble(t *testing.T) {
	text := `Here is the email you asked for:
TO: team@example.com
SUBJECT: Standup moved
BODY:
Standup is at 10 tomorrow.
TO: this line is body, not a header`

	draft := ParseEmailDraft(text)
	assert.Equal(t, "team@example.com", draft.To)
	assert.Contains(t, draft.Body, "TO: this line is body, not a header")
}

func TestIsDraftRequest(t *testing.T) {
	assert.True(t, isDraftRequest("please draft an email to bob"))
	assert.True(t, isDraftRequest("save a DRAFT for later"))
	assert.False(t, isDraftRequest("send an email to bob"))
}

func TestEmailHandlerNilService(t *testing.T) {
	h := NewEmailHandler(nil, &mockCompletion{}, NewSession())

	_, err := h.Handle(context.Background(), "email bob")
	assert.ErrorIs(t, err, domain.ErrMailUnavailable)
}

func TestEmailHandlerSend(t *testing.T) {
	mail := &mockMail{msgID: "msg-123"}
	completion := &mockCompletion{response: "TO: bob@example.com\nSUBJECT: Lunch\nBODY:\nLunch at noon?"}

	h := NewEmailHandler(mail, completion, NewSession())

	reply, err := h.Handle(context.Background(), "send bob an email about lunch")
	require.NoError(t, err)
	assert.Contains(t, reply, "Email sent to bob@example.com.")
	assert.Contains(t, reply, "Message ID: msg-123")
	assert.Equal(t, []string{"bob@example.com|Lunch"}, mail.sends)
	assert.Empty(t, mail.drafts)
	assert.Equal(t, emailSystem, completion.systems[0])
}

func TestEmailHandlerSendWithoutRecipientAsksForAddress(t *testing.T) {
	mail := &mockMail{}
	completion := &mockCompletion{response: "TO: MISSING - Please provide recipient email\nSUBJECT: Lunch\nBODY:\nLunch at noon?"}

	h := NewEmailHandler(mail, completion, NewSession())

	reply, err := h.Handle(context.Background(), "send an email about lunch")
	require.NoError(t, err)
	assert.Contains(t, reply, "I need the recipient's address")
	assert.Contains(t, reply, "Subject: Lunch")
	assert.Empty(t, mail.sends)
	assert.Empty(t, mail.drafts)
}

func TestEmailHandlerCreateDraft(t *testing.T) {
	mail := &mockMail{draftID: "draft-9"}
	completion := &mockCompletion{response: "TO: carol@example.com\nSUBJECT: Offer\nBODY:\nWe'd like to extend an offer."}

	h := NewEmailHandler(mail, completion, NewSession())

	reply, err := h.Handle(context.Background(), "create a draft offer email for carol")
	require.NoError(t, err)
	assert.Contains(t, reply, "Draft created.")
	assert.Contains(t, reply, "Draft ID: draft-9")
	assert.Equal(t, []string{"carol@example.com|Offer"}, mail.drafts)
	assert.Empty(t, mail.sends)
}

func TestEmailHandlerDraftWithoutRecipient(t *testing.T) {
	mail := &mockMail{draftID: "draft-10"}
	completion := &mockCompletion{response: "TO: MISSING - Please provide recipient email\nSUBJECT: Offer\nBODY:\nOffer details."}

	h := NewEmailHandler(mail, completion, NewSession())

	reply, err := h.Handle(context.Background(), "draft an offer email")
	require.NoError(t, err)
	assert.Contains(t, reply, "(no recipient - you can add one later)")
	assert.Equal(t, []string{"|Offer"}, mail.drafts)
}

func TestEmailHandlerUnparseableComposition(t *testing.T) {
	mail := &mockMail{}
	completion := &mockCompletion{response: "I'm not able to write that email."}

	h := NewEmailHandler(mail, completion, NewSession())

	reply, err := h.Handle(context.Background(), "send something")
	require.NoError(t, err)
	assert.Contains(t, reply, "could not process it automatically")
	assert.Contains(t, reply, "I'm not able to write that email.")
	assert.Empty(t, mail.sends)
	assert.Empty(t, mail.drafts)
}

func TestEmailHandlerMailFailure(t *testing.T) {
	mail := &mockMail{err: errors.New("smtp down")}
	completion := &mockCompletion{response: "TO: bob@example.com\nSUBJECT: Hi\nBODY:\nHello."}

	h := NewEmailHandler(mail, completion, NewSession())

	_, err := h.Handle(context.Background(), "send bob a hello email")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestEmailHandlerCompletionFailure(t *testing.T) {
	h := NewEmailHandler(&mockMail{}, &mockCompletion{err: errors.New("overloaded")}, NewSession())

	_, err := h.Handle(context.Background(), "send an email")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
