package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"bnbBack/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateApartment checks the creation payload. Only the first failing field
// is reported.
func ValidateApartment(in models.ApartmentInput) error {
	return validateStruct(in)
}

func ValidateReview(in models.ReviewInput) error {
	return validateStruct(in)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return toValidationError(fieldErrs[0])
	}
	return &models.ValidationError{Message: err.Error()}
}

func toValidationError(fe validator.FieldError) *models.ValidationError {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%q is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("%q length must be at least %s characters long", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%q must be greater than or equal to %s", field, fe.Param())
		}
	case "max":
		if fe.Kind() == reflect.String {
			msg = fmt.Sprintf("%q length must be less than or equal to %s characters long", field, fe.Param())
		} else {
			msg = fmt.Sprintf("%q must be less than or equal to %s", field, fe.Param())
		}
	case "email":
		msg = fmt.Sprintf("%q must be a valid email", field)
	default:
		msg = fmt.Sprintf("%q is invalid", field)
	}
	return &models.ValidationError{Field: field, Message: msg}
}

// uniqueServiceIDs drops duplicates while keeping first-seen order.
func uniqueServiceIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingServiceIDs(requested, existing []int) []int {
	known := make(map[int]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}
	var missing []int
	for _, id := range requested {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Ints(missing)
	return missing
}

func unknownServicesError(ids []int) *models.ValidationError {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return &models.ValidationError{
		Field:   "services",
		Message: fmt.Sprintf("\"services\" contains unknown ids: %s", strings.Join(parts, ", ")),
	}
}
