package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/whoamaiii/kreativium/backend/internal/apierror"
	"github.com/whoamaiii/kreativium/backend/internal/models"
)

// parseFilters reads correlation filters from the query string, collecting
// every invalid parameter rather than stopping at the first.
func parseFilters(c *gin.Context) (models.CorrelationFilters, []apierror.FieldError) {
	var filters models.CorrelationFilters
	var fieldErrors []apierror.FieldError

	filters.UserID = c.Query("user_id")

	if v := c.Query("activity_type"); v != "" {
		t, err := models.ParseActivityType(v)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{Field: "activity_type", Message: err.Error(), Code: "invalid_enum"})
		} else {
			filters.ActivityType = &t
		}
	}

	if v := c.Query("emotion"); v != "" {
		e, err := models.ParseEmotion(v)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{Field: "emotion", Message: err.Error(), Code: "invalid_enum"})
		} else {
			filters.Emotion = &e
		}
	}

	if v := c.Query("context"); v != "" {
		ct, err := models.ParseContextType(v)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{Field: "context", Message: err.Error(), Code: "invalid_enum"})
		} else {
			filters.ContextType = &ct
		}
	}

	dateRange, errs := parseDateRange(c)
	filters.DateRange = dateRange
	fieldErrors = append(fieldErrors, errs...)

	minStr, maxStr := c.Query("min_performance"), c.Query("max_performance")
	if minStr != "" || maxStr != "" {
		r := models.PerformanceRange{Min: 0, Max: 100}
		if minStr != "" {
			if f, err := strconv.ParseFloat(minStr, 64); err != nil {
				fieldErrors = append(fieldErrors, apierror.FieldError{Field: "min_performance", Message: "must be a number", Code: "invalid_type"})
			} else {
				r.Min = f
			}
		}
		if maxStr != "" {
			if f, err := strconv.ParseFloat(maxStr, 64); err != nil {
				fieldErrors = append(fieldErrors, apierror.FieldError{Field: "max_performance", Message: "must be a number", Code: "invalid_type"})
			} else {
				r.Max = f
			}
		}
		if r.Min > r.Max {
			fieldErrors = append(fieldErrors, apierror.FieldError{Field: "min_performance", Message: "must not exceed max_performance", Code: "invalid_range"})
		}
		filters.PerformanceRange = &r
	}

	return filters, fieldErrors
}

// parseDateRange reads the optional RFC3339 from/to parameters. Either side
// may be omitted to leave it open.
func parseDateRange(c *gin.Context) (*models.DateRange, []apierror.FieldError) {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr == "" && toStr == "" {
		return nil, nil
	}

	var r models.DateRange
	var fieldErrors []apierror.FieldError
	if fromStr != "" {
		t, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{Field: "from", Message: "must be a valid RFC3339 timestamp", Code: "invalid_format"})
		}
		r.Start = t
	}
	if toStr != "" {
		t, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			fieldErrors = append(fieldErrors, apierror.FieldError{Field: "to", Message: "must be a valid RFC3339 timestamp", Code: "invalid_format"})
		}
		r.End = t
	}
	if len(fieldErrors) == 0 && !r.Start.IsZero() && !r.End.IsZero() && r.End.Before(r.Start) {
		fieldErrors = append(fieldErrors, apierror.FieldError{Field: "to", Message: "must not be before from", Code: "invalid_range"})
	}
	return &r, fieldErrors
}
