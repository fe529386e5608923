package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
	"github.com/quill-labs/aide-cli/internal/logger"
)

// Per-intent retrieval depths. Analysis pulls a wider net than a plain
// knowledge question.
const (
	knowledgeTopK = 12
	analysisTopK  = 15

	// maxCalendarEvents caps a single event listing.
	maxCalendarEvents = 20
)

const knowledgeSystem = `You are a professional business assistant with access to a comprehensive knowledge base.
Provide accurate, helpful, and well-structured responses based on the available information.

Guidelines:
- Be professional and concise
- Cite specific sources when referencing information
- If information is insufficient, acknowledge limitations
- Provide actionable advice when appropriate
- Maintain conversation continuity`

const calendarSystem = `You are a professional scheduling assistant. Analyze the user's calendar query and provide helpful, organized information about their upcoming events. Be concise and actionable.`

const analysisSystem = `You are a professional business analyst. Provide thorough, insightful analysis based on available information. Structure your analysis clearly with key findings, implications, and recommendations when appropriate.`

// FormatResults renders retrieval hits for inclusion in a prompt.
func FormatResults(results []domain.SearchResult) string {
	if len(results) == 0 {
		return "No relevant information found in the knowledge base."
	}

	var b strings.Builder
	b.WriteString("Relevant Information Found:\n\n")
	for i, r := range results {
		fmt.Fprintf(&b, "Source %d: %s\n", i+1, r.Title)
		fmt.Fprintf(&b, "Content: %s\n", r.Content)
		fmt.Fprintf(&b, "Relevance: %.3f\n\n", r.RelevanceScore)
	}
	return b.String()
}

// KnowledgeHandler answers questions from the knowledge base.
type KnowledgeHandler struct {
	retrieval  *Retrieval
	completion driven.CompletionService
	session    *Session
}

var _ IntentHandler = (*KnowledgeHandler)(nil)

// NewKnowledgeHandler creates the knowledge handler.
func NewKnowledgeHandler(retrieval *Retrieval, completion driven.CompletionService, session *Session) *KnowledgeHandler {
	return &KnowledgeHandler{retrieval: retrieval, completion: completion, session: session}
}

// Handle searches the knowledge base and asks the completion service to
// answer from the retrieved fragments.
func (h *KnowledgeHandler) Handle(ctx context.Context, message string) (string, error) {
	searchBlock, err := retrieveBlock(ctx, h.retrieval, message, knowledgeTopK)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`%s

User Question: %s

Available Information:
%s

Please provide a comprehensive, professional response based on the available information and conversation context.`,
		h.session.Context(), message, searchBlock)

	return complete(ctx, h.completion, knowledgeSystem, prompt)
}

// AnalysisHandler produces analyses backed by the knowledge base.
type AnalysisHandler struct {
	retrieval  *Retrieval
	completion driven.CompletionService
	session    *Session
}

var _ IntentHandler = (*AnalysisHandler)(nil)

// NewAnalysisHandler creates the analysis handler.
func NewAnalysisHandler(retrieval *Retrieval, completion driven.CompletionService, session *Session) *AnalysisHandler {
	return &AnalysisHandler{retrieval: retrieval, completion: completion, session: session}
}

// Handle retrieves a wider result set and asks for a structured analysis.
func (h *AnalysisHandler) Handle(ctx context.Context, message string) (string, error) {
	searchBlock, err := retrieveBlock(ctx, h.retrieval, message, analysisTopK)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`%s

Analysis Request: %s

Available Information:
%s

Please provide a comprehensive analysis based on the available information.`,
		h.session.Context(), message, searchBlock)

	return complete(ctx, h.completion, analysisSystem, prompt)
}

// CalendarHandler answers schedule queries over the calendar port.
type CalendarHandler struct {
	calendar   driven.CalendarService
	completion driven.CompletionService
	session    *Session
	now        func() time.Time
}

var _ IntentHandler = (*CalendarHandler)(nil)

// NewCalendarHandler creates the calendar handler. The calendar service
// may be nil; Handle then reports the integration as unconfigured.
func NewCalendarHandler(calendar driven.CalendarService, completion driven.CompletionService, session *Session) *CalendarHandler {
	return &CalendarHandler{
		calendar:   calendar,
		completion: completion,
		session:    session,
		now:        time.Now,
	}
}

// Handle infers the time window from the message, lists events in it,
// and asks the completion service to summarise them.
func (h *CalendarHandler) Handle(ctx context.Context, message string) (string, error) {
	if h.calendar == nil {
		return "", domain.ErrCalendarUnavailable
	}

	days := domain.InferWindow(message)
	logger.Debug("Calendar window: %d days", days)

	from := h.now()
	to := from.AddDate(0, 0, days)

	events, err := h.calendar.ListEvents(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("%w: list events: %v", domain.ErrUpstreamUnavailable, err)
	}
	if len(events) > maxCalendarEvents {
		events = events[:maxCalendarEvents]
	}

	if len(events) == 0 {
		return fmt.Sprintf("No upcoming events found for the next %d days.", days), nil
	}

	var b strings.Builder
	b.WriteString("Upcoming Events:\n\n")
	for _, event := range events {
		summary := event.Summary
		if summary == "" {
			summary = "No title"
		}
		fmt.Fprintf(&b, "• %s - %s\n", summary, event.Start)
	}

	prompt := fmt.Sprintf("%s\n\nUser Query: %s\n\n%s\nProvide a helpful response about their calendar.",
		h.session.Context(), message, b.String())

	return complete(ctx, h.completion, calendarSystem, prompt)
}

// retrieveBlock runs a retrieval query and formats the hits for a
// prompt. An empty knowledge base propagates domain.ErrEmptyIndex so
// the dispatcher can message it distinctly; zero matches above the
// threshold formats as an explicit "nothing found" block instead.
func retrieveBlock(ctx context.Context, retrieval *Retrieval, message string, topK int) (string, error) {
	results, err := retrieval.Query(ctx, message, topK, domain.DefaultMinScore)
	if err != nil {
		return "", err
	}
	return FormatResults(results), nil
}

// complete wraps a completion call, tagging failures as upstream errors.
func complete(ctx context.Context, svc driven.CompletionService, system, prompt string) (string, error) {
	if svc == nil {
		return "", domain.ErrCompletionUnavailable
	}
	response, err := svc.Complete(ctx, system, []driven.ChatMessage{{Role: "user", Content: prompt}})
	if err != nil {
		return "", fmt.Errorf("%w: completion: %v", domain.ErrUpstreamUnavailable, err)
	}
	return response, nil
}
