package handler

import (
	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/pkg/validation"
)

// RequestValidator is assigned to echo.Echo.Validator so handlers can call
// c.Validate on bound request bodies.
type RequestValidator struct {
	rules *validation.Validator
}

func NewValidator() *RequestValidator {
	return &RequestValidator{rules: validation.New()}
}

// Validate reports every failing field in one *domain.ValidationError.
func (rv *RequestValidator) Validate(i any) error {
	err := rv.rules.Struct(i)
	if err == nil {
		return nil
	}
	return domain.NewValidationError(err.Error())
}
