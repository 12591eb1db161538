package entities

import "errors"

// Domain errors
var (
	// Event errors
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidEventID = errors.New("invalid event id")

	// Layout errors
	ErrLayoutNotFound   = errors.New("layout not found")
	ErrSegmentNotFound  = errors.New("layout segment not found")
	ErrInvalidDuration  = errors.New("segment duration must be non-negative")
	ErrDocumentNotFound = errors.New("layout document not found")

	// Script errors
	ErrScriptSegmentNotFound = errors.New("script segment not found")
	ErrEmptyContent          = errors.New("script segment has no content")
)
