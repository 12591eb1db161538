package layout

// AddSegmentRequest represents the request to append a segment to a layout
type AddSegmentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Type        string `json:"type" validate:"required,min=1,max=50"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Duration    int    `json:"duration" validate:"min=0,max=1440"`
}

// UpdateSegmentRequest represents the request to update a segment in place
type UpdateSegmentRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Type        string `json:"type" validate:"required,min=1,max=50"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Duration    int    `json:"duration" validate:"min=0,max=1440"`
}
