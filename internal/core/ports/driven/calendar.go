package driven

import (
	"context"
	"time"

	"github.com/quill-labs/aide-cli/internal/core/domain"
)

// CalendarService lists events from the user's calendar.
// This is an optional service - when nil, the calendar handler replies
// with a configuration advisory instead.
type CalendarService interface {
	// ListEvents returns events starting within [timeMin, timeMax),
	// ordered by start time.
	ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.Event, error)
}
