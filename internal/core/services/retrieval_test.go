package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-labs/aide-cli/internal/adapters/driven/storage/memory"
	"github.com/quill-labs/aide-cli/internal/core/domain"
)

func TestIngestRejectsEmptyContent(t *testing.T) {
	ctx := context.Background()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("word"), NewSession())

	_, err := svc.Ingest(ctx, "Empty", "", "manual", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)

	_, err = svc.Ingest(ctx, "Blank", "   \n\t ", "manual", nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)
}

func TestIngestRejectsInvalidMetadata(t *testing.T) {
	ctx := context.Background()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("word"), NewSession())

	_, err := svc.Ingest(ctx, "Doc", "content here.", "manual", domain.Metadata{"bad": map[string]int{}})
	assert.ErrorIs(t, err, domain.ErrUnsupportedInput)
}

func TestIngestChunksAndIndexes(t *testing.T) {
	ctx := context.Background()
	store := memory.NewChunkStore()
	svc := NewRetrieval(store, newVocabEmbedder("onboarding"), NewSession())

	// ~3000 characters of short sentences
	var b strings.Builder
	for b.Len() < 3000 {
		b.WriteString("The onboarding guide covers security policy and equipment setup for new hires. ")
	}

	n, err := svc.Ingest(ctx, "Onboarding", b.String(), "manual", domain.Metadata{"team": "people"})
	require.NoError(t, err)

	assert.GreaterOrEqual(t, n, 3)
	assert.Equal(t, n, store.Len())
	assert.Equal(t, n, svc.IndexSize())
}

func TestQueryBeforeIngest(t *testing.T) {
	ctx := context.Background()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("word"), NewSession())

	_, err := svc.Query(ctx, "anything", 10, 0.2)
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestQueryFindsVerbatimTerm(t *testing.T) {
	ctx := context.Background()
	embedder := newVocabEmbedder("zephyr", "holiday", "expense", "security")
	session := NewSession()
	svc := NewRetrieval(memory.NewChunkStore(), embedder, session)

	_, err := svc.Ingest(ctx, "Holiday Policy", "Employees accrue holiday allowance monthly.", "manual", nil)
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "Project Zephyr", "Project zephyr launches in the third quarter.", "manual", domain.Metadata{"status": "active"})
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "Expenses", "Submit expense reports within thirty days.", "manual", nil)
	require.NoError(t, err)

	results, err := svc.Query(ctx, "what is zephyr", 10, 0.2)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	top := results[0]
	assert.Equal(t, "Project Zephyr", top.Title)
	assert.Greater(t, top.RelevanceScore, 0.2)
	assert.Equal(t, "active", top.Metadata["status"])
	assert.Contains(t, top.Content, "zephyr")

	// Only the matching document clears the relevance floor
	for _, r := range results {
		assert.Greater(t, r.RelevanceScore, 0.2)
	}
}

func TestQueryIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("alpha", "beta"), NewSession())

	_, err := svc.Ingest(ctx, "A", "Alpha document body.", "manual", nil)
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "B", "Beta document body with alpha mention.", "manual", nil)
	require.NoError(t, err)

	first, err := svc.Query(ctx, "alpha", 10, 0.1)
	require.NoError(t, err)
	second, err := svc.Query(ctx, "alpha", 10, 0.1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestQueryDescendingScores(t *testing.T) {
	ctx := context.Background()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("budget", "travel"), NewSession())

	_, err := svc.Ingest(ctx, "Budget", "Budget budget budget.", "manual", nil)
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "Travel", "Travel policy mentions budget once.", "manual", nil)
	require.NoError(t, err)

	results, err := svc.Query(ctx, "budget", 10, 0.0)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(results), 2)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].RelevanceScore, results[i].RelevanceScore)
	}
}

func TestQueryRecordsRecentSearches(t *testing.T) {
	ctx := context.Background()
	session := NewSession()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("policy"), session)

	_, err := svc.Ingest(ctx, "Policy", "The policy document.", "manual", nil)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, err := svc.Query(ctx, "policy", 5, 0.1)
		require.NoError(t, err)
	}

	searches := session.RecentSearches()
	assert.Len(t, searches, 10)
	assert.Equal(t, "policy", searches[0].Query)
	assert.Equal(t, 1, searches[0].Results)
}

func TestQueryNoMatchesRecordsNothing(t *testing.T) {
	ctx := context.Background()
	session := NewSession()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("alpha", "omega"), session)

	_, err := svc.Ingest(ctx, "A", "Alpha only document.", "manual", nil)
	require.NoError(t, err)

	results, err := svc.Query(ctx, "omega", 10, 0.2)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Empty(t, session.RecentSearches())
}

func TestQueryEmbedderFailure(t *testing.T) {
	ctx := context.Background()
	embedder := newVocabEmbedder("word")
	svc := NewRetrieval(memory.NewChunkStore(), embedder, NewSession())

	_, err := svc.Ingest(ctx, "Doc", "A word document.", "manual", nil)
	require.NoError(t, err)

	embedder.err = errors.New("connection refused")
	_, err = svc.Query(ctx, "word", 10, 0.2)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestIngestEmbedderFailure(t *testing.T) {
	ctx := context.Background()
	embedder := newVocabEmbedder("word")
	embedder.err = errors.New("connection refused")
	svc := NewRetrieval(memory.NewChunkStore(), embedder, NewSession())

	_, err := svc.Ingest(ctx, "Doc", "A word document.", "manual", nil)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestRebuildFromExistingStore(t *testing.T) {
	ctx := context.Background()
	store := memory.NewChunkStore()

	_, err := store.InsertChunk(ctx, "Preexisting", "manual", 0, "A policy chunk.", nil)
	require.NoError(t, err)

	svc := NewRetrieval(store, newVocabEmbedder("policy"), NewSession())
	require.Equal(t, 0, svc.IndexSize())

	require.NoError(t, svc.Rebuild(ctx))
	assert.Equal(t, 1, svc.IndexSize())

	results, err := svc.Query(ctx, "policy", 5, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Preexisting", results[0].Title)
}

func TestIngestAssignsSharedDocumentID(t *testing.T) {
	ctx := context.Background()
	svc := NewRetrieval(memory.NewChunkStore(), newVocabEmbedder("alpha", "beta"), NewSession())

	_, err := svc.Ingest(ctx, "A", "Alpha document body.", "manual", nil)
	require.NoError(t, err)
	_, err = svc.Ingest(ctx, "B", "Beta document body.", "manual", nil)
	require.NoError(t, err)

	alphaResults, err := svc.Query(ctx, "alpha", 10, 0.1)
	require.NoError(t, err)
	require.NotEmpty(t, alphaResults)
	betaResults, err := svc.Query(ctx, "beta", 10, 0.1)
	require.NoError(t, err)
	require.NotEmpty(t, betaResults)

	alphaID, ok := alphaResults[0].Metadata["document_id"].(string)
	require.True(t, ok)
	betaID, ok := betaResults[0].Metadata["document_id"].(string)
	require.True(t, ok)

	assert.NotEmpty(t, alphaID)
	assert.NotEqual(t, alphaID, betaID)
}
