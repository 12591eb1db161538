package entities

import (
	"github.com/google/uuid"
)

// ScriptStatus represents the editing state of a script segment
type ScriptStatus string

const (
	ScriptStatusDraft      ScriptStatus = "draft"
	ScriptStatusEditing    ScriptStatus = "editing"
	ScriptStatusGenerating ScriptStatus = "generating"
	ScriptStatusGenerated  ScriptStatus = "generated"
)

// ScriptSegment is the narration counterpart of a layout segment: synthesized
// text with prosody markup and a timing budget for speech synthesis. Chunks
// produced by splitting a segment are stored as script segments themselves.
type ScriptSegment struct {
	ID              uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EventID         uuid.UUID    `gorm:"type:uuid;not null;index" json:"event_id"`
	LayoutSegmentID uuid.UUID    `gorm:"type:uuid;not null;index" json:"layout_segment_id"`
	SegmentType     string       `gorm:"type:varchar(50);not null" json:"segment_type"`
	Content         string       `gorm:"type:text;not null" json:"content"`
	Status          ScriptStatus `gorm:"type:varchar(20);not null;default:'draft'" json:"status"`
	Timing          int          `gorm:"not null;default:0" json:"timing"` // seconds
	Order           int          `gorm:"column:position;not null" json:"order"`
}

// TableName specifies the table name for ScriptSegment
func (ScriptSegment) TableName() string {
	return "script_segments"
}

// Key decodes the stored position back into its hierarchical form
func (s *ScriptSegment) Key() SegmentKey {
	return DecodePosition(s.Order)
}
