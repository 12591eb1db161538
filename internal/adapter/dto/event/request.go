package event

import "time"

// CreateEventRequest represents the request to create an event
type CreateEventRequest struct {
	Title           string     `json:"title" validate:"required,min=1,max=255"`
	EventType       string     `json:"event_type" validate:"omitempty,max=50"`
	DurationMinutes int        `json:"duration_minutes" validate:"required,min=1,max=1440"`
	StartTime       *time.Time `json:"start_time,omitempty"`
}
