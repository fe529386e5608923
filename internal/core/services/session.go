package services

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// Session bounds for context building.
const (
	// maxRecentSearches caps the recent-searches log; oldest entries
	// are evicted first.
	maxRecentSearches = 10

	// historyTurns is how many trailing conversation turns go into a
	// classification or handler prompt.
	historyTurns = 10

	// contextSearches is how many trailing searches go into a
	// classification or handler prompt.
	contextSearches = 3
)

// Session holds the mutable conversation state for one assistant
// session: the turn history and the bounded recent-searches log.
// It is purely in-memory and process-lifetime scoped.
//
// Session is an explicit object owned by the caller and shared between
// the retrieval service (which records searches) and the dispatcher
// (which reads context); there are no process-wide singletons.
type Session struct {
	mu       sync.Mutex
	turns    []domain.Turn
	searches []domain.RecentSearch
	now      func() time.Time
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// AddTurn appends a conversation turn.
func (s *Session) AddTurn(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, domain.Turn{Role: role, Content: content})
}

// Turns returns a copy of the full turn history.
func (s *Session) Turns() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// RecordSearch appends to the recent-searches log, evicting the oldest
// entry beyond the cap.
func (s *Session) RecordSearch(query string, results int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, domain.RecentSearch{
		Query:   query,
		Results: results,
		At:      s.now(),
	})
	if len(s.searches) > maxRecentSearches {
		s.searches = s.searches[len(s.searches)-maxRecentSearches:]
	}
}

// RecentSearches returns a copy of the recent-searches log.
func (s *Session) RecentSearches() []domain.RecentSearch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RecentSearch, len(s.searches))
	copy(out, s.searches)
	return out
}

// Context renders the session tail (last 10 turns, last 3 searches)
// for inclusion in classification and handler prompts. Returns an
// empty string for a fresh session.
func (s *Session) Context() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var parts []string

	if len(s.turns) > 0 {
		recent := s.turns
		if len(recent) > historyTurns {
			recent = recent[len(recent)-historyTurns:]
		}
		parts = append(parts, "Recent Conversation:")
		for _, turn := range recent {
			parts = append(parts, fmt.Sprintf("%s: %s", titleCase(turn.Role), turn.Content))
		}
		parts = append(parts, "")
	}

	if len(s.searches) > 0 {
		recent := s.searches
		if len(recent) > contextSearches {
			recent = recent[len(recent)-contextSearches:]
		}
		parts = append(parts, "Recent Knowledge Base Searches:")
		for _, search := range recent {
			parts = append(parts, fmt.Sprintf("Query: %s", search.Query))
			parts = append(parts, fmt.Sprintf("Found %d relevant documents", search.Results))
		}
		parts = append(parts, "")
	}

	return strings.Join(parts, "\n")
}

// titleCase upper-cases the first byte of an ASCII role name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
