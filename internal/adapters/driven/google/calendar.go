package google

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/quill-labs/aide-cli/internal/core/domain"
	"github.com/quill-labs/aide-cli/internal/core/ports/driven"
)

// Ensure CalendarAdapter implements the interface.
var _ driven.CalendarService = (*CalendarAdapter)(nil)

// primaryCalendar is the user's default calendar.
const primaryCalendar = "primary"

// maxEventResults caps a single listing request.
const maxEventResults = 20

// CalendarAdapter serves schedule queries from the Google Calendar API.
type CalendarAdapter struct {
	service *calendar.Service
	limiter *RateLimiter
}

// NewCalendarAdapter creates a calendar adapter using the provided
// TokenSource for authentication.
func NewCalendarAdapter(ctx context.Context, ts oauth2.TokenSource) (*CalendarAdapter, error) {
	service, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}

	return &CalendarAdapter{
		service: service,
		limiter: NewRateLimiter(ServiceCalendar),
	}, nil
}

// ListEvents returns the events on the primary calendar within the
// window, ordered by start time. Recurring events are expanded to
// their instances.
func (a *CalendarAdapter) ListEvents(ctx context.Context, timeMin, timeMax time.Time) ([]domain.Event, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	listing, err := a.service.Events.List(primaryCalendar).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxEventResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	events := make([]domain.Event, 0, len(listing.Items))
	for _, item := range listing.Items {
		events = append(events, domain.Event{
			Summary: item.Summary,
			Start:   eventStart(item),
		})
	}
	return events, nil
}

// eventStart extracts the start time, falling back to the all-day date.
func eventStart(event *calendar.Event) string {
	if event.Start == nil {
		return ""
	}
	if event.Start.DateTime != "" {
		return event.Start.DateTime
	}
	return event.Start.Date
}
