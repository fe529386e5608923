package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query    string  `json:"query" jsonschema:"the text to search the knowledge base for"`
	Limit    int     `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
	MinScore float64 `json:"min_score,omitempty" jsonschema:"relevance floor, results at or below are excluded (default 0.2)"`
}

// QueryOutput is the output schema for the query tool.
type QueryOutput struct {
	Results []QueryResultOutput `json:"results"`
	Count   int                 `json:"count"`
}

// QueryResultOutput represents a single retrieval hit.
type QueryResultOutput struct {
	Title    string         `json:"title"`
	Source   string         `json:"source"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Message string `json:"message" jsonschema:"the message for the assistant"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Reply string `json:"reply"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Semantic search over the local knowledge base",
	}, s.handleQuery)

	if s.ports.Assistant != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Ask the assistant a question (knowledge, calendar, email, analysis)",
		}, s.handleAsk)
	}
}

// handleQuery handles the query tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	minScore := input.MinScore
	if minScore == 0 {
		// An omitted min_score decodes as zero; zero is a legal floor,
		// so the documented default has to be applied here.
		minScore = domain.DefaultMinScore
	}

	results, err := s.ports.Retrieval.Query(ctx, input.Query, input.Limit, minScore)
	if err != nil {
		// An empty knowledge base is a valid state, not a tool failure
		if errors.Is(err, domain.ErrEmptyIndex) {
			return nil, QueryOutput{Results: []QueryResultOutput{}}, nil
		}
		return nil, QueryOutput{}, err
	}

	output := QueryOutput{
		Results: make([]QueryResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		output.Results[i] = QueryResultOutput{
			Title:    results[i].Title,
			Source:   results[i].Source,
			Content:  results[i].Content,
			Score:    results[i].RelevanceScore,
			Metadata: results[i].Metadata,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	reply, err := s.ports.Assistant.Chat(ctx, input.Message)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Reply: reply}, nil
}
