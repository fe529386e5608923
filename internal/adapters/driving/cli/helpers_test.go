package cli

import (
	"context"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// fakeRetrieval is a canned RetrievalService for command tests.
type fakeRetrieval struct {
	results  []domain.SearchResult
	chunks   int
	err      error
	ingested []string
}

func (f *fakeRetrieval) Ingest(_ context.Context, title, _, _ string, _ domain.Metadata) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.ingested = append(f.ingested, title)
	return f.chunks, nil
}

func (f *fakeRetrieval) Query(_ context.Context, _ string, _ int, _ float64) ([]domain.SearchResult, error) {
	return f.results, f.err
}

func (f *fakeRetrieval) IndexSize() int { return f.chunks }

// fakeAssistant is a canned Assistant for command tests.
type fakeAssistant struct {
	reply string
	err   error
	got   []string
}

func (f *fakeAssistant) Chat(_ context.Context, message string) (string, error) {
	f.got = append(f.got, message)
	return f.reply, f.err
}

func (f *fakeAssistant) Classify(_ context.Context, _ string) domain.Intent {
	return domain.IntentKnowledge
}

// setupTestServices injects fakes and returns a cleanup restoring the
// previous wiring.
func setupTestServices() func() {
	return setupServicesWith(
		&fakeRetrieval{
			chunks: 2,
			results: []domain.SearchResult{
				{Title: "Travel Policy", Source: "manual", Content: "Economy for short haul.", RelevanceScore: 0.91},
			},
		},
		&fakeAssistant{reply: "canned reply"},
	)
}

func setupServicesWith(retrieval *fakeRetrieval, assistant *fakeAssistant) func() {
	prev := Services{
		Retrieval: retrievalService,
		Assistant: assistantService,
		Config:    configStore,
	}
	SetServices(Services{Retrieval: retrieval, Assistant: assistant})
	return func() { SetServices(prev) }
}
