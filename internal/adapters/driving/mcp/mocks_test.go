package mcp

import (
	"context"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	results []domain.SearchResult
	err     error

	gotQuery    string
	gotTopK     int
	gotMinScore float64
}

func (m *mockRetrievalService) Ingest(_ context.Context, _, _, _ string, _ domain.Metadata) (int, error) {
	return 0, m.err
}

func (m *mockRetrievalService) Query(_ context.Context, text string, topK int, minScore float64) ([]domain.SearchResult, error) {
	m.gotQuery = text
	m.gotTopK = topK
	m.gotMinScore = minScore
	return m.results, m.err
}

func (m *mockRetrievalService) IndexSize() int {
	return len(m.results)
}

// mockAssistant is a mock implementation of driving.Assistant.
type mockAssistant struct {
	reply  string
	intent domain.Intent
	err    error

	gotMessage string
}

func (m *mockAssistant) Chat(_ context.Context, message string) (string, error) {
	m.gotMessage = message
	return m.reply, m.err
}

func (m *mockAssistant) Classify(_ context.Context, _ string) domain.Intent {
	return m.intent
}
