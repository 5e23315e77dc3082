package handlers

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/whoamaiii/kreativium/backend/internal/models"
)

const (
	tagEmotion      = "emotion"
	tagActivityType = "activity_type"
	tagContextType  = "context_type"
	tagRole         = "role"
)

// RegisterValidators adds the domain enum tags to gin's validator and makes
// field errors report json names. Call once before serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	validators := map[string]validator.Func{
		tagEmotion: func(fl validator.FieldLevel) bool {
			return models.Emotion(fl.Field().String()).Valid()
		},
		tagActivityType: func(fl validator.FieldLevel) bool {
			return models.ActivityType(fl.Field().String()).Valid()
		},
		tagContextType: func(fl validator.FieldLevel) bool {
			return models.ContextType(fl.Field().String()).Valid()
		},
		tagRole: func(fl validator.FieldLevel) bool {
			return models.Role(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %s validator: %w", tag, err)
		}
	}
	return nil
}
