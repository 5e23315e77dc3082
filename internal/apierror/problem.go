// Package apierror provides RFC 9457 Problem Details responses for the
// kreativium API.
package apierror

// ProblemDetails is an RFC 9457 Problem Details body.
// See https://www.rfc-editor.org/rfc/rfc9457.html
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions
	RequestID   string       `json:"request_id,omitempty"`
	UserMessage string       `json:"user_message,omitempty"` // safe to show to a child or teacher
	RetryAfter  *int         `json:"retry_after,omitempty"`  // seconds
	Action      string       `json:"action,omitempty"`       // client hint, e.g. "authenticate"
	Errors      []FieldError `json:"errors,omitempty"`
}

// FieldError describes one invalid request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
