package services

import (
	"context"
	"strings"
	"time"

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
)

// vocabEmbedder is a deterministic embedding stub: each dimension
// counts occurrences of one vocabulary word. Texts sharing vocabulary
// score high against each other, disjoint texts score zero.
type vocabEmbedder struct {
	vocab []string
	err   error
}

func newVocabEmbedder(vocab ...string) *vocabEmbedder {
	return &vocabEmbedder{vocab: vocab}
}

func (e *vocabEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	lower := strings.ToLower(text)
	v := make([]float32, len(e.vocab))
	for i, word := range e.vocab {
		v[i] = float32(strings.Count(lower, word))
	}
	return v, nil
}

func (e *vocabEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *vocabEmbedder) Dimensions() int   { return len(e.vocab) }
func (e *vocabEmbedder) ModelName() string { return "vocab-stub" }
func (e *vocabEmbedder) Close() error      { return nil }

var _ driven.EmbeddingService = (*vocabEmbedder)(nil)

// mockCompletion returns a canned response and records the calls.
type mockCompletion struct {
	response string
	err      error

	systems []string
	prompts []string
}

func (m *mockCompletion) Complete(_ context.Context, system string, messages []driven.ChatMessage) (string, error) {
	m.systems = append(m.systems, system)
	if len(messages) > 0 {
		m.prompts = append(m.prompts, messages[len(messages)-1].Content)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockCompletion) ModelName() string { return "completion-stub" }
func (m *mockCompletion) Close() error      { return nil }

var _ driven.CompletionService = (*mockCompletion)(nil)

// mockCalendar serves a fixed event list.
type mockCalendar struct {
	events []domain.Event
	err    error

	gotMin, gotMax time.Time
}

func (m *mockCalendar) ListEvents(_ context.Context, timeMin, timeMax time.Time) ([]domain.Event, error) {
	m.gotMin, m.gotMax = timeMin, timeMax
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

var _ driven.CalendarService = (*mockCalendar)(nil)

// mockMail records draft/send calls.
type mockMail struct {
	draftID string
	msgID   string
	err     error

	drafts []string // "to|subject" per CreateDraft call
	sends  []string // "to|subject" per Send call
}

func (m *mockMail) CreateDraft(_ context.Context, to, subject, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.drafts = append(m.drafts, to+"|"+subject)
	return m.draftID, nil
}

func (m *mockMail) Send(_ context.Context, to, subject, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sends = append(m.sends, to+"|"+subject)
	return m.msgID, nil
}

var _ driven.MailService = (*mockMail)(nil)

// stubHandler records routed messages.
type stubHandler struct {
	reply string
	err   error
	got   []string
}

func (h *stubHandler) Handle(_ context.Context, message string) (string, error) {
	h.got = append(h.got, message)
	if h.err != nil {
		return "", h.err
	}
	return h.reply, nil
}

var _ IntentHandler = (*stubHandler)(nil)
