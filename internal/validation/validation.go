package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Dashboard-Backend/internal/model"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// engine returns the shared validator with the custom tags registered.
func engine() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return lowerFirst(f.Name)
			}
			return name
		})
		_ = validate.RegisterValidation("asset_type", validateAssetType)
		_ = validate.RegisterValidation("currency", validateCurrency)
	})
	return validate
}

func validateAssetType(fl validator.FieldLevel) bool {
	return model.AssetType(fl.Field().String()).Valid()
}

func validateCurrency(fl validator.FieldLevel) bool {
	return model.Currency(fl.Field().String()).Valid()
}

// Struct validates s against its validate tags and converts failures into an *Error.
func Struct(s any) error {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &Error{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless":
		return fe.Field() + " is required"
	case "gte":
		return fe.Field() + " cannot be negative"
	case "min":
		return fe.Field() + " cannot be empty"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "asset_type":
		return fmt.Sprintf("invalid asset type: %v", fe.Value())
	case "currency":
		return fmt.Sprintf("invalid currency: %v", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}
