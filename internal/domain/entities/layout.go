package entities

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// EventLayout is the normalized representation of an event's program timeline
type EventLayout struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EventID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"event_id"`
	TotalDuration int             `gorm:"not null;default:0" json:"total_duration"` // minutes
	LayoutVersion int             `gorm:"not null;default:1" json:"layout_version"`
	UpdatedAt     time.Time       `gorm:"default:now()" json:"updated_at"`
	Segments      []LayoutSegment `gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE" json:"segments"`
}

// TableName specifies the table name for EventLayout
func (EventLayout) TableName() string {
	return "event_layouts"
}

// RecomputeTotal sets TotalDuration to the sum of segment durations.
// Used on full batch regeneration; single-segment mutations maintain the
// aggregate incrementally instead.
func (l *EventLayout) RecomputeTotal() {
	total := 0
	for _, s := range l.Segments {
		total += s.Duration
	}
	l.TotalDuration = total
}

// LayoutSegment is one named span of the program with a type and a duration
type LayoutSegment struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LayoutID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"layout_id"`
	Name             string         `gorm:"type:varchar(255);not null" json:"name"`
	Type             string         `gorm:"type:varchar(50);not null" json:"type"`
	Description      string         `gorm:"type:text" json:"description"`
	Duration         int            `gorm:"not null;check:duration >= 0" json:"duration"` // minutes
	Order            int            `gorm:"column:position;not null" json:"order"`
	StartTime        *string        `gorm:"type:varchar(20)" json:"start_time,omitempty"`
	EndTime          *string        `gorm:"type:varchar(20)" json:"end_time,omitempty"`
	CustomProperties datatypes.JSON `gorm:"type:jsonb" json:"custom_properties,omitempty"`
}

// TableName specifies the table name for LayoutSegment
func (LayoutSegment) TableName() string {
	return "layout_segments"
}

// ReindexSegments rewrites Order values to be contiguous 1..N, preserving
// the current relative order. Invoked after a segment is deleted.
func ReindexSegments(segments []LayoutSegment) {
	for i := range segments {
		segments[i].Order = i + 1
	}
}

// LayoutDocument is the embedded-document representation of a layout: one
// JSON blob per event with its own version counter. It is NOT kept in sync
// with the normalized tables; it exists as a write fallback and a read
// fallback when the normalized representation is absent.
type LayoutDocument struct {
	EventID   uuid.UUID      `gorm:"type:uuid;primary_key" json:"event_id"`
	Document  datatypes.JSON `gorm:"type:jsonb;not null" json:"document"`
	UpdatedAt time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for LayoutDocument
func (LayoutDocument) TableName() string {
	return "layout_documents"
}

// DocumentPayload is the decoded shape of LayoutDocument.Document
type DocumentPayload struct {
	Segments      []DocumentSegment `json:"segments"`
	TotalDuration int               `json:"totalDuration"`
	LastUpdated   time.Time         `json:"lastUpdated"`
	Version       int               `json:"version"`
}

// DocumentSegment mirrors LayoutSegment with camelCase field naming
type DocumentSegment struct {
	ID               uuid.UUID              `json:"id"`
	Name             string                 `json:"name"`
	Type             string                 `json:"type"`
	Description      string                 `json:"description"`
	Duration         int                    `json:"duration"`
	Order            int                    `json:"order"`
	StartTime        *string                `json:"startTime,omitempty"`
	EndTime          *string                `json:"endTime,omitempty"`
	CustomProperties map[string]interface{} `json:"customProperties,omitempty"`
}

// EmptyDocument synthesizes a fresh payload for an event that has no
// embedded document yet
func EmptyDocument() DocumentPayload {
	return DocumentPayload{
		Segments:      []DocumentSegment{},
		TotalDuration: 0,
		LastUpdated:   time.Now().UTC(),
		Version:       0,
	}
}

// ToDocumentSegment converts a normalized segment into the embedded shape
func (s LayoutSegment) ToDocumentSegment() DocumentSegment {
	doc := DocumentSegment{
		ID:          s.ID,
		Name:        s.Name,
		Type:        s.Type,
		Description: s.Description,
		Duration:    s.Duration,
		Order:       s.Order,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
	}
	if len(s.CustomProperties) > 0 {
		var props map[string]interface{}
		if err := json.Unmarshal(s.CustomProperties, &props); err == nil {
			doc.CustomProperties = props
		}
	}
	return doc
}

// ToLayoutSegment converts an embedded segment back into the normalized shape
func (d DocumentSegment) ToLayoutSegment() LayoutSegment {
	seg := LayoutSegment{
		ID:          d.ID,
		Name:        d.Name,
		Type:        d.Type,
		Description: d.Description,
		Duration:    d.Duration,
		Order:       d.Order,
		StartTime:   d.StartTime,
		EndTime:     d.EndTime,
	}
	if len(d.CustomProperties) > 0 {
		if raw, err := json.Marshal(d.CustomProperties); err == nil {
			seg.CustomProperties = datatypes.JSON(raw)
		}
	}
	return seg
}
