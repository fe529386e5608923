package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
	"github.com/quill-labs/aide-cli/internal/logger"
)

// Ensure Dispatcher implements the interface.
var _ driving.Assistant = (*Dispatcher)(nil)

// IntentHandler processes a message routed to it by the dispatcher.
// Each handler owns its own downstream calls (retrieval, calendar,
// mail, completion); the dispatcher performs no domain logic beyond
// routing.
type IntentHandler interface {
	Handle(ctx context.Context, message string) (string, error)
}

// classifySystem is the fixed instruction set for intent classification.
const classifySystem = `You are an expert intent classification system for a professional business assistant.
Analyze the user's message and conversation context to determine their primary intent.

Return EXACTLY ONE of these intents:
- CALENDAR: User wants to check calendar, schedule, appointments, meetings, or interviews
- EMAIL: User wants to compose, send, or draft an email
- KNOWLEDGE: User is asking questions about company information, policies, or documents
- ANALYSIS: User wants analysis of candidates, documents, or business information

Consider the full conversation context when making your decision.`

// Dispatcher classifies incoming messages into a fixed set of intents
// and routes each to its handler. Classification is stateless per call
// but reads the session tail (chat history, recent searches) as
// context.
type Dispatcher struct {
	completion driven.CompletionService
	session    *Session
	handlers   map[domain.Intent]IntentHandler
}

// NewDispatcher creates a dispatcher over the given handler set.
// Missing handlers fall back to the KNOWLEDGE handler; a missing
// KNOWLEDGE handler is a configuration error surfaced by Chat.
func NewDispatcher(
	completion driven.CompletionService,
	session *Session,
	handlers map[domain.Intent]IntentHandler,
) *Dispatcher {
	return &Dispatcher{
		completion: completion,
		session:    session,
		handlers:   handlers,
	}
}

// Classify determines the intent of a message. The completion response
// is parsed by ordered substring matching; any malformed or verbose
// response degrades to KNOWLEDGE, never to an error.
func (d *Dispatcher) Classify(ctx context.Context, message string) domain.Intent {
	logger.Section("Intent Classification")

	if d.completion == nil {
		logger.Warn("Completion service unavailable, defaulting to KNOWLEDGE")
		return domain.IntentKnowledge
	}

	prompt := fmt.Sprintf("%sCurrent message: '%s'\n\nWhat is the user's primary intent?",
		d.session.Context(), message)

	response, err := d.completion.Complete(ctx, classifySystem, []driven.ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		logger.Warn("Classification call failed: %v, defaulting to KNOWLEDGE", err)
		return domain.IntentKnowledge
	}

	intent := domain.ParseIntent(response)
	logger.Info("Classified as %s", intent)
	return intent
}

// Chat processes one user message end to end: classify, route, handle,
// and record the exchange on the session. Handler failures against
// upstream services are converted into user-facing advisories.
func (d *Dispatcher) Chat(ctx context.Context, message string) (string, error) {
	intent := d.Classify(ctx, message)

	handler, ok := d.handlers[intent]
	if !ok {
		handler, ok = d.handlers[domain.IntentKnowledge]
		if !ok {
			// The KNOWLEDGE handler exists whenever an embedding
			// service was configured, so its absence is an
			// embedding problem, not a completion one.
			return "", domain.ErrEmbeddingUnavailable
		}
	}

	d.session.AddTurn("user", message)

	reply, err := handler.Handle(ctx, message)
	if err != nil {
		reply = advisoryFor(err)
		logger.Warn("Handler for %s failed: %v", intent, err)
	}

	d.session.AddTurn("assistant", reply)
	return reply, nil
}

// advisoryFor converts a handler error into a user-facing message.
// No handler failure is fatal to the process.
func advisoryFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyIndex):
		return "Knowledge base is empty. Please add some documents first."
	case errors.Is(err, domain.ErrCalendarUnavailable):
		return "Calendar integration is not available. Please configure calendar access."
	case errors.Is(err, domain.ErrMailUnavailable):
		return "Mail integration is not available. Please configure mail access."
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return "I apologize, but an external service is currently unavailable. Please try again in a moment."
	default:
		return fmt.Sprintf("I apologize, but I encountered an error processing your request: %v", err)
	}
}
