package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "tradestats/internal/errors"
	"tradestats/pkg/contracts/domain"
)

// TradeValidator checks constructed trades against their struct tags
type TradeValidator struct {
	validate *validator.Validate
}

// NewTradeValidator creates a validator that reports fields by JSON name
func NewTradeValidator() *TradeValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &TradeValidator{validate: v}
}

// Validate returns a VALIDATION AppError listing every failed field
func (tv *TradeValidator) Validate(t domain.Trade) error {
	err := tv.validate.Struct(t)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewAppError(apperrors.ErrTypeValidation, "trade validation failed", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatFieldError(fe))
	}
	return apperrors.NewAppValidationError(strings.Join(messages, "; ")).
		WithContext("fields", len(fieldErrs))
}

func formatFieldError(err validator.FieldError) string {
	field := err.Field()
	param := err.Param()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "ne":
		return fmt.Sprintf("%s must not be %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, err.Tag())
	}
}
