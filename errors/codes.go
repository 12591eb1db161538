package errors

// ErrorCode identifies the failure class of an AppError
type ErrorCode int

const (
	ErrorCode_UNKNOWN ErrorCode = iota
	ErrorCode_HTTP_OK
	ErrorCode_INTERNAL
	ErrorCode_INVALID_ARGUMENT
	ErrorCode_NOT_FOUND
	ErrorCode_ALREADY_EXISTS

	// Pipeline
	ErrorCode_EVENT_NOT_FOUND
	ErrorCode_LAYOUT_NOT_FOUND
	ErrorCode_SEGMENT_NOT_FOUND
	ErrorCode_SCRIPT_NOT_FOUND
	ErrorCode_GENERATION_FAILED
	ErrorCode_CHUNKING_FAILED

	// Persistence
	ErrorCode_DB_QUERY_FAILED
	ErrorCode_DB_TRANSACTION_FAILED
	ErrorCode_FALLBACK_FAILED

	// Integration
	ErrorCode_CACHE_FAILED
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNKNOWN:               "UNKNOWN",
	ErrorCode_HTTP_OK:               "OK",
	ErrorCode_INTERNAL:              "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:      "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:             "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:        "ALREADY_EXISTS",
	ErrorCode_EVENT_NOT_FOUND:       "EVENT_NOT_FOUND",
	ErrorCode_LAYOUT_NOT_FOUND:      "LAYOUT_NOT_FOUND",
	ErrorCode_SEGMENT_NOT_FOUND:     "SEGMENT_NOT_FOUND",
	ErrorCode_SCRIPT_NOT_FOUND:      "SCRIPT_NOT_FOUND",
	ErrorCode_GENERATION_FAILED:     "GENERATION_FAILED",
	ErrorCode_CHUNKING_FAILED:       "CHUNKING_FAILED",
	ErrorCode_DB_QUERY_FAILED:       "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED: "DB_TRANSACTION_FAILED",
	ErrorCode_FALLBACK_FAILED:       "FALLBACK_FAILED",
	ErrorCode_CACHE_FAILED:          "CACHE_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
