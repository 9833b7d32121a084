// shared/api/response.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/naijascout/scout-services/shared/apperr"
	"go.uber.org/zap"
)

// ValidationMessage is the top-level message of every validation failure.
const ValidationMessage = "Validation error"

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Errors  []apperr.FieldError `json:"errors,omitempty"`
}

// MessageResponse is a success envelope with no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DataResponse is a success envelope around a single payload.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteData writes {success:true,data}.
func WriteData(w http.ResponseWriter, status int, data interface{}) {
	if err := WriteJSON(w, status, DataResponse{Success: true, Data: data}); err != nil {
		zap.L().Error("Failed to write JSON response", zap.Error(err))
	}
}

// WriteError writes a JSON error response with the given status code and message.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeErrorResponse(w, status, ErrorResponse{Message: message})
}

// WriteValidationError writes a 400 listing every offending field.
func WriteValidationError(w http.ResponseWriter, verr *apperr.ValidationError) {
	writeErrorResponse(w, http.StatusBadRequest, ErrorResponse{
		Message: ValidationMessage,
		Errors:  verr.Fields,
	})
}

// WriteAppError maps err onto a status code. Store failures and unknown
// errors are logged and reported generically.
func WriteAppError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validationErr *apperr.ValidationError
		notFoundErr   *apperr.NotFoundError
		conflictErr   *apperr.ConflictError
	)
	switch {
	case errors.As(err, &validationErr):
		WriteValidationError(w, validationErr)
	case errors.As(err, &notFoundErr):
		WriteNotFound(w, "Player not found")
	case errors.As(err, &conflictErr):
		WriteBadRequest(w, conflictErr.Message)
	default:
		if logger != nil {
			logger.Error("Request failed", zap.Error(err))
		}
		WriteInternalServerError(w, "Server error")
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, resp ErrorResponse) {
	resp.Success = false
	// Attempt to write JSON, fall back to plain text if JSON encoding fails
	if err := WriteJSON(w, status, resp); err != nil {
		zap.L().Error("Failed to write JSON error response, falling back to plain text", zap.Error(err))
		http.Error(w, resp.Message, status)
	}
}

// WriteBadRequest convenience function
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound convenience function
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalServerError convenience function
func WriteInternalServerError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
