package script

// ChunkRequest represents the request to chunk all script segments of an
// event. TargetWords of zero means the configured default.
type ChunkRequest struct {
	TargetWords int `json:"target_words" validate:"min=0,max=500"`
}
