package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hariombhu/hariombhu-Smart-Resume-Builder/internal/schemas"
)

// maxJSONBody caps request bodies decoded as JSON
const maxJSONBody = 1 << 20

// jsonResponse writes a JSON response
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// errorResponse writes an error JSON response
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// validationResponse writes a 400 listing every failing field
func validationResponse(w http.ResponseWriter, fields []schemas.FieldError) {
	jsonResponse(w, http.StatusBadRequest, map[string]any{
		"error":  "validation failed",
		"errors": fields,
	})
}

// writeError maps err to a status code. Server-side failures are logged and
// reported without detail.
func writeError(w http.ResponseWriter, logger *zap.Logger, r *http.Request, err error) {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		validationResponse(w, schemaErr.Errors)
		return
	}

	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Error(err))
		if status == http.StatusBadGateway {
			errorResponse(w, status, "failed to generate PDF")
			return
		}
		errorResponse(w, status, "internal server error")
		return
	}
	errorResponse(w, status, err.Error())
}

// decodeJSON decodes a size-limited request body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// readJSONBody reads a size-limited raw body for schema validation
func readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		errorResponse(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	return body, true
}

// extractValidationErrors lists every failing field of a validator error.
func extractValidationErrors(err error) []schemas.FieldError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]schemas.FieldError, 0, len(validationErrors))
		for _, ve := range validationErrors {
			fields = append(fields, schemas.FieldError{
				Field:   lowerFirst(ve.Field()),
				Message: validationMessage(ve),
			})
		}
		return fields
	}
	return []schemas.FieldError{{Field: "(root)", Message: "invalid request"}}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "hexcolor":
		return "must be a hex color"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
