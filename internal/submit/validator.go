// Package submit validates new grocery items and posts them to the remote
// add-item endpoint.
package submit

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/grocelist/internal/catalogerror"
	"fjacquet/grocelist/internal/models"
	"fjacquet/grocelist/internal/textutils"

	"github.com/go-playground/validator/v10"
)

// Validator checks item submissions against their struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a ready Validator.
func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks an item submission. Failures come back as
// *catalogerror.ValidationError keyed by lower-case field name.
func (v *Validator) Validate(sub models.ItemSubmission) error {
	sub.Name = textutils.NormalizeName(sub.Name)
	sub.Category = textutils.NormalizeName(sub.Category)
	if err := v.validate.Struct(sub); err != nil {
		return &catalogerror.ValidationError{Fields: FormatValidationError(err)}
	}
	return nil
}

// FormatValidationError turns validator errors into a field to message map.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid submission"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		case "gt":
			errs[field] = "Must not be empty"
		case "ne":
			errs[field] = fmt.Sprintf("Must not be %q", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}
