package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/whoamaiii/kreativium/backend/internal/apierror"
	"github.com/whoamaiii/kreativium/backend/internal/logger"
	"github.com/whoamaiii/kreativium/backend/internal/middleware"
	"github.com/whoamaiii/kreativium/backend/internal/models"
	"github.com/whoamaiii/kreativium/backend/internal/service"
)

// actorOrAbort returns the authenticated caller, writing a 401 when Auth
// did not run.
func actorOrAbort(c *gin.Context) (models.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
	}
	return actor, ok
}

// writeServiceError maps service errors onto problem details. Anything
// unrecognized is logged and reported as a 500 without details.
func writeServiceError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	var (
		notFound   *service.NotFoundError
		mismatch   *service.OwnershipMismatchError
		validation *service.ValidationError
		conflict   *service.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, notFound.Entity, notFound.ID))
	case errors.As(err, &mismatch):
		apierror.WriteProblem(c, apierror.NewOwnershipMismatchError(requestID, mismatch.Error()))
	case errors.As(err, &validation):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{{
			Field:   validation.Field,
			Message: validation.Message,
			Code:    "invalid",
		}}))
	case errors.As(err, &conflict):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, conflict.Error()))
	case errors.Is(err, service.ErrForbidden):
		apierror.WriteProblem(c, apierror.NewForbiddenError(requestID))
	default:
		logger.Ctx(c.Request.Context()).Error("request failed",
			logger.Err(err),
			logger.String("path", c.FullPath()),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// pathID reads the :id parameter, rejecting anything that is not a UUID
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		apierror.WriteProblem(c, apierror.NewInvalidIDError(apierror.GetRequestID(c), "id", id))
		return "", false
	}
	return id, true
}

// writeBindError reports field-level validation failures together, and
// anything else (malformed JSON, wrong types) as a bad request.
func writeBindError(c *gin.Context, err error) {
	requestID := apierror.GetRequestID(c)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	fields := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apierror.FieldError{
			Field:   jsonFieldName(fe),
			Message: fieldMessage(fe),
			Code:    fe.Tag(),
		})
	}
	apierror.WriteProblem(c, apierror.NewValidationError(requestID, fields))
}

func jsonFieldName(fe validator.FieldError) string {
	// Namespace is Struct.field once RegisterTagNameFunc maps json names
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case tagEmotion:
		return "must be one of " + joinValues(models.AllEmotions[:])
	case tagActivityType:
		return "must be one of " + joinValues(models.AllActivityTypes[:])
	case tagContextType:
		return "must be before or after"
	case tagRole:
		return "must be child or teacher"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
