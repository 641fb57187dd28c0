package validator

import (
	"errors"
	"fmt"

	"shoptrack/pkg/model"
	"shoptrack/pkg/sanitizer"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(v))
}

type CustomerValidator struct {
	validate *validator.Validate
}

func NewCustomerValidator() *CustomerValidator {
	return &CustomerValidator{
		validate: validator.New(),
	}
}

func (v *CustomerValidator) Validate(c *model.Customer) error {
	if err := v.validate.Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *CustomerValidator) ValidateUpdate(updates *model.CustomerUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *CustomerValidator) ValidateVehicle(vehicle *model.Vehicle) error {
	if err := v.validate.Struct(vehicle); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	// len=17 catches truncation; this catches transposed or forged digits.
	if !sanitizer.ValidVIN(vehicle.VIN) {
		return ValidationErrors{{
			Field:   "VIN",
			Message: "check digit validation failed",
		}}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = "this field is required"
		case "min":
			message = fmt.Sprintf("must be at least %s items/characters", err.Param())
		case "max":
			message = fmt.Sprintf("must be at most %s items/characters", err.Param())
		case "len":
			message = fmt.Sprintf("must be exactly %s characters", err.Param())
		case "mongodb":
			message = "must be a valid object ID"
		case "e164":
			message = "must be a valid E.164 phone number"
		case "email":
			message = "must be a valid email address"
		default:
			message = fmt.Sprintf("failed validation on '%s'", err.Tag())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
