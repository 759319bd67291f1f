// Package validator validates request and document structs with
// go-playground/validator and reports failures keyed by JSON field path.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/ncobase/qeonaru/ecode"
)

// MissingFieldsMessage is reported when any required field is absent.
const MissingFieldsMessage = "Missing required fields"

// InvalidFieldsMessage is reported when every field is present but some are malformed.
const InvalidFieldsMessage = "Invalid request data"

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
}

// errorMessages maps validation tags to messages.
var errorMessages = map[string]string{
	"required": "The field '%s' is required.",
	"notblank": "The field '%s' must not be blank.",
	"email":    "The field '%s' must be a valid email address.",
	"min":      "The field '%s' must be at least %s.",
	"max":      "The field '%s' must be no longer than %s.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"oneof":    "The field '%s' must be one of [%s].",
	"hastext":  "The field '%s' must contain non-blank text.",
}

// RegisterStructValidation registers a struct-level rule for the given types.
// Call it from an init function.
func RegisterStructValidation(fn validator.StructLevelFunc, types ...any) {
	validate.RegisterStructValidation(fn, types...)
}

// parseMessage constructs a friendly error message for the validation tag.
func parseMessage(field string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		if strings.Count(msg, "%s") == 2 {
			return fmt.Sprintf(msg, field, e.Param())
		}
		return fmt.Sprintf(msg, field)
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", field, e.Tag())
}

// fieldPath returns the JSON path of the failing field without the root struct name.
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// ValidateStruct validates a struct and returns a map of JSON field paths to
// friendly error messages, and whether any required field was missing.
func ValidateStruct(s any) (map[string]string, bool) {
	validationErrors := make(map[string]string)
	missing := false

	err := validate.Struct(s)
	if err == nil {
		return validationErrors, false
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		validationErrors[""] = err.Error()
		return validationErrors, false
	}
	for _, e := range validationErrs {
		path := fieldPath(e)
		if e.Tag() == "required" {
			missing = true
		}
		if _, exists := validationErrors[path]; !exists {
			validationErrors[path] = parseMessage(path, e)
		}
	}
	return validationErrors, missing
}

// Validate validates s and returns a 400 *ecode.Error describing every
// failing field, or nil.
func Validate(s any) error {
	fields, missing := ValidateStruct(s)
	if len(fields) == 0 {
		return nil
	}
	message := InvalidFieldsMessage
	if missing {
		message = MissingFieldsMessage
	}
	return ecode.ValidationError(message).WithFields(fields)
}
