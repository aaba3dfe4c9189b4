package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/ghuser/storefront/pkg/jsonapi"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		// ignore unexported or explicitly ignored
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// Validate runs struct-level validation using go-playground/validator tags.
func Validate(s any) error {
	return validate.Struct(s)
}

// FormatValidationErrors converts validator.ValidationErrors into field errors
// keyed by the JSON name of the offending field.
func FormatValidationErrors(err error) jsonapi.FieldErrors {
	fields := jsonapi.FieldErrors{}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fields
	}
	for _, e := range ve {
		fields.Add(e.Field(), formatFieldError(e))
	}
	return fields
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is missing"
	case "notblank":
		return "can't be blank"
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", e.Param())
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", e.Param())
	case "numeric", "number":
		return "is not a number"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", e.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", e.Param())
	default:
		return fmt.Sprintf("is invalid (%s)", e.Tag())
	}
}

// DecodeErrors describes a json.Decoder failure in field error form. A value
// of the wrong JSON type is reported against its field; anything else is
// reported against "body".
func DecodeErrors(err error) (int, jsonapi.FieldErrors) {
	fields := jsonapi.FieldErrors{}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		fields.Add("body", "is too large")
		return http.StatusRequestEntityTooLarge, fields
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		if i := strings.LastIndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		fields.Add(field, "is invalid")
		return http.StatusBadRequest, fields
	}

	fields.Add("body", "is not valid JSON")
	return http.StatusBadRequest, fields
}

// ValidateRequest decodes the JSON request body into T, validates it, and
// writes an error envelope if either step fails.
// Returns (parsedStruct, true) on success or (nil, false) on failure.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status, fields := DecodeErrors(err)
		jsonapi.WriteErrors(w, status, fields)
		return nil, false
	}
	if err := Validate(&req); err != nil {
		jsonapi.WriteErrors(w, http.StatusBadRequest, FormatValidationErrors(err))
		return nil, false
	}
	return &req, true
}
