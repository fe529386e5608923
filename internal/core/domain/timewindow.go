package domain

import "strings"

// DefaultWindowDays is returned when no time keyword matches.
const DefaultWindowDays = 7

// windowRule maps a keyword set to a look-ahead window in days.
// Rules are evaluated in order; the first match wins. "next week" is
// checked before the bare "week" set so it does not collapse into the
// seven-day window.
var windowRules = []struct {
	keywords []string
	days     int
}{
	{[]string{"today", "this morning", "this afternoon"}, 1},
	{[]string{"tomorrow", "next day"}, 2},
	{[]string{"next week"}, 14},
	{[]string{"this week", "week"}, 7},
	{[]string{"month", "this month"}, 30},
}

// InferWindow extracts a calendar look-ahead window in days from a
// free-text message. Matching is case-insensitive substring containment.
func InferWindow(message string) int {
	lower := strings.ToLower(message)
	for _, rule := range windowRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.days
			}
		}
	}
	return DefaultWindowDays
}
