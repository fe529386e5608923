package domain

import "strings"

// Intent is the closed set of request categories the dispatcher routes on.
type Intent string

const (
	// IntentKnowledge covers questions about company information,
	// policies, or documents. It is also the fallback.
	IntentKnowledge Intent = "KNOWLEDGE"

	// IntentCalendar covers schedule, appointment, meeting, and
	// interview queries.
	IntentCalendar Intent = "CALENDAR"

	// IntentEmail covers compose, send, and draft requests.
	IntentEmail Intent = "EMAIL"

	// IntentAnalysis covers candidate, document, and business
	// analysis requests.
	IntentAnalysis Intent = "ANALYSIS"
)

// ParseIntent extracts an intent from a completion response. The
// response may contain surrounding prose, so this scans the upper-cased
// text for substring containment in a fixed priority order: CALENDAR,
// then EMAIL, then ANALYSIS. Anything else falls back to KNOWLEDGE.
//
// The priority order is a behavioural contract; changing the tie-break
// changes which handler wins when the model returns multiple labels.
func ParseIntent(response string) Intent {
	upper := strings.ToUpper(response)
	switch {
	case strings.Contains(upper, string(IntentCalendar)):
		return IntentCalendar
	case strings.Contains(upper, string(IntentEmail)):
		return IntentEmail
	case strings.Contains(upper, string(IntentAnalysis)):
		return IntentAnalysis
	default:
		return IntentKnowledge
	}
}
