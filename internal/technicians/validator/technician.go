package validator

import (
	"errors"
	"fmt"

	"shoptrack/pkg/logger"
	"shoptrack/pkg/model"

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

type TechnicianValidator struct {
	validate *validator.Validate
	log      *logger.Logger
}

func NewTechnicianValidator(log *logger.Logger) *TechnicianValidator {
	return &TechnicianValidator{
		validate: validator.New(),
		log:      log,
	}
}

func (v *TechnicianValidator) Validate(tech *model.Technician) error {
	if err := v.validate.Struct(tech); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	if model.SkillRank(tech.SkillLevel) == 0 {
		return ValidationErrors{{
			Field:   "SkillLevel",
			Message: fmt.Sprintf("unknown skill level '%s'", tech.SkillLevel),
		}}
	}

	return nil
}

func (v *TechnicianValidator) ValidateUpdate(updates *model.TechnicianUpdate) error {
	if err := v.validate.Struct(updates); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *TechnicianValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
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
		case "mongodb":
			message = "must be a valid object ID"
		case "e164":
			message = "must be a valid E.164 phone number"
		case "oneof":
			message = fmt.Sprintf("must be one of: %s", err.Param())
		case "gt":
			message = fmt.Sprintf("must be greater than %s", err.Param())
		case "timezone":
			message = "must be a valid IANA timezone"
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
