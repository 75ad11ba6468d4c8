// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	playgroundvalidator "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	domainerrors "campuseats/internal/domain/errors"
)

type echoValidator struct {
	validate *playgroundvalidator.Validate
}

// New creates the request validator used by the Echo server.
func New() *echoValidator {
	return &echoValidator{
		validate: playgroundvalidator.New(playgroundvalidator.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Struct tag violations surface as the
// shared validation error so the error middleware renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		var validationErrs playgroundvalidator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return domainerrors.ErrValidationFailed.WithDetails(validationErrs.Error())
		}

		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
