package utils

import (
	"github.com/go-playground/validator/v10"

	apperrors "worktrack-portal/pkg/errors"
)

// Validator - адаптер go-playground/validator под интерфейс echo.Validator.
type Validator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *Validator {
	return &Validator{validator: v}
}

func (v *Validator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return apperrors.NewInvalidInputError("ошибка валидации: %v", err)
	}
	return nil
}
