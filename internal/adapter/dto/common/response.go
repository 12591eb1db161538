package common

// Result is the uniform shape every pipeline workflow resolves to. No
// workflow lets an error escape past its boundary: failures are folded into
// this envelope.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK builds a successful result
func OK(data interface{}, message string) Result {
	return Result{Success: true, Data: data, Message: message}
}

// Fail builds a failed result
func Fail(errMsg, message string) Result {
	return Result{Success: false, Error: errMsg, Message: message}
}
