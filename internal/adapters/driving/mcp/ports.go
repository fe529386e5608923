package mcp

import (
	"github.com/quill-labs/aide-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval answers similarity queries over the knowledge base.
	Retrieval driving.RetrievalService

	// Assistant routes conversational messages by intent. Optional; the
	// ask tool is only registered when it is set.
	Assistant driving.Assistant
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	// Assistant is optional
	return nil
}
