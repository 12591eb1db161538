package entities

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func TestSegmentConvertersRoundTrip(t *testing.T) {
	start := "9:00 AM"
	end := "9:45 AM"
	seg := LayoutSegment{
		ID:               uuid.New(),
		Name:             "Keynote",
		Type:             "presentation",
		Description:      "Opening talk",
		Duration:         45,
		Order:            2,
		StartTime:        &start,
		EndTime:          &end,
		CustomProperties: datatypes.JSON(`{"speaker":"Dana","recorded":true}`),
	}

	doc := seg.ToDocumentSegment()

	want := map[string]interface{}{"speaker": "Dana", "recorded": true}
	if !reflect.DeepEqual(doc.CustomProperties, want) {
		t.Errorf("CustomProperties = %v, want %v", doc.CustomProperties, want)
	}

	back := doc.ToLayoutSegment()
	if back.ID != seg.ID || back.Name != seg.Name || back.Type != seg.Type ||
		back.Duration != seg.Duration || back.Order != seg.Order {
		t.Errorf("round trip changed scalar fields: %+v", back)
	}
	if back.StartTime == nil || *back.StartTime != start {
		t.Errorf("round trip lost start time")
	}

	// datatypes.JSON key order is not stable; compare through the map form
	if !reflect.DeepEqual(back.ToDocumentSegment().CustomProperties, want) {
		t.Errorf("round trip lost custom properties: %s", back.CustomProperties)
	}
}

func TestSegmentConvertersOmitEmptyProperties(t *testing.T) {
	seg := LayoutSegment{ID: uuid.New(), Name: "Break", Type: "networking", Duration: 15, Order: 3}

	doc := seg.ToDocumentSegment()
	if doc.CustomProperties != nil {
		t.Errorf("expected nil properties, got %v", doc.CustomProperties)
	}
	if back := doc.ToLayoutSegment(); back.CustomProperties != nil {
		t.Errorf("expected nil JSON, got %s", back.CustomProperties)
	}
}

func TestReindexSegments(t *testing.T) {
	segments := []LayoutSegment{{Order: 1}, {Order: 3}, {Order: 4}}
	ReindexSegments(segments)
	for i, s := range segments {
		if s.Order != i+1 {
			t.Errorf("segment %d has order %d", i, s.Order)
		}
	}
}
