package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"bnbBack/internal/logger"
	"bnbBack/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps service errors to HTTP statuses. Upstream failures are
// logged and reported without detail.
func respondError(w http.ResponseWriter, log logger.Logger, err error) {
	var validationErr *models.ValidationError
	var upstreamErr *models.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, models.ErrAttachmentMissing):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrApartmentNotFound):
		writeError(w, http.StatusNotFound, "Apartment not found")
	case errors.As(err, &upstreamErr):
		if log != nil {
			log.Errorf("upstream failure: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
	default:
		if log != nil {
			log.Errorf("unexpected error: %v", err)
		}
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSONBody decodes a JSON object and rejects unknown keys. Decoding
// problems are returned as validation errors.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return &models.ValidationError{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%q must be a %s", typeErr.Field, kindName(typeErr.Type)),
		}
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return &models.ValidationError{Field: field, Message: fmt.Sprintf("%q is not allowed", field)}
	default:
		return &models.ValidationError{Message: "Invalid request body"}
	}
}

func kindName(t reflect.Type) string {
	if t == nil {
		return "value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	case reflect.Slice:
		return "array"
	default:
		return t.Kind().String()
	}
}
