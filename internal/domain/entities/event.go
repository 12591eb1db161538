package entities

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus represents where an event sits in the content pipeline
type EventStatus string

const (
	EventStatusDraft       EventStatus = "draft"
	EventStatusLayoutReady EventStatus = "layout_ready"
	EventStatusScripting   EventStatus = "scripting"
	EventStatusScriptReady EventStatus = "script_ready"
)

// Event represents a scheduled event whose program and narration are generated
type Event struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title     string      `gorm:"type:varchar(255);not null" json:"title"`
	EventType string      `gorm:"type:varchar(50);not null;default:'general';index" json:"event_type"`
	Status    EventStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	// DurationMinutes is the requested total program length. The allocated
	// layout may diverge from it (floors, template slack).
	DurationMinutes int `gorm:"not null;default:60" json:"duration_minutes"`
	StartTime *time.Time  `gorm:"index" json:"start_time,omitempty"`
	CreatedAt time.Time   `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time   `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Event
func (Event) TableName() string {
	return "events"
}

// HasLayout reports whether the pipeline has produced a layout for this event
func (e *Event) HasLayout() bool {
	return e.Status != EventStatusDraft
}

// MarkLayoutReady advances the event after layout generation
func (e *Event) MarkLayoutReady() {
	e.Status = EventStatusLayoutReady
}

// MarkScripting advances the event after script generation
func (e *Event) MarkScripting() {
	e.Status = EventStatusScripting
}

// MarkScriptReady advances the event after all segments are chunked
func (e *Event) MarkScriptReady() {
	e.Status = EventStatusScriptReady
}
