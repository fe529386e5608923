package domain

import "time"

// Turn is a single exchange in a conversation.
type Turn struct {
	// Role is "user" or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// RecentSearch records a knowledge-base query that returned results.
// A bounded log of these is fed back into classification as context.
type RecentSearch struct {
	// Query is the original query text.
	Query string

	// Results is the number of chunks returned.
	Results int

	// At is when the search completed.
	At time.Time
}

// Event is a calendar entry as seen through the calendar port.
type Event struct {
	// Summary is the event title.
	Summary string

	// Start is the event start as reported by the provider; either an
	// RFC 3339 timestamp or a bare date for all-day events.
	Start string
}
