package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes problem with the problem+json content type and, for
// throttled responses, a Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	c.Render(problem.Status, problemRender{problem: problem})
}

// GetRequestID extracts the request ID set by the request logger middleware,
// falling back to the inbound header.
func GetRequestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError reports every invalid field at once
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

func NewInvalidIDError(requestID, field, value string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidID,
		Title:       TitleInvalidID,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Invalid identifier for field '%s': '%s'", field, value),
		RequestID:   requestID,
		UserMessage: "Invalid identifier format",
		Errors: []FieldError{
			{Field: field, Message: "must be a valid UUID", Code: "invalid_id"},
		},
	}
}

func NewNotFoundError(requestID, resource, id string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s with ID '%s' was not found", resource, id),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("The requested %s could not be found", resource),
	}
}

// NewOwnershipMismatchError is returned when a link would join an
// observation and an activity result recorded for different users.
func NewOwnershipMismatchError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeOwnershipMismatch,
		Title:       TitleOwnershipMismatch,
		Status:      http.StatusConflict,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "The feeling and the activity belong to different people",
	}
}

func NewConflictError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeConflict,
		Title:       TitleConflict,
		Status:      http.StatusConflict,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "This action conflicts with existing data",
	}
}

func NewUnauthorizedError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnauthorized,
		Title:       TitleUnauthorized,
		Status:      http.StatusUnauthorized,
		Detail:      "Authentication is required to access this resource",
		RequestID:   requestID,
		UserMessage: "Please sign in to continue",
		Action:      "authenticate",
	}
}

func NewForbiddenError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeForbidden,
		Title:       TitleForbidden,
		Status:      http.StatusForbidden,
		Detail:      "You do not have permission to access this resource",
		RequestID:   requestID,
		UserMessage: "You don't have permission to perform this action",
	}
}

// NewRateLimitError asks the client to back off for retryAfter seconds
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      fmt.Sprintf("Rate limit exceeded. Please retry after %d seconds", retryAfter),
		RequestID:   requestID,
		UserMessage: "Too many requests. Please wait before trying again.",
		RetryAfter:  &retryAfter,
	}
}

// NewInternalError never carries the underlying error; log it instead.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}
