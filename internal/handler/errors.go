package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"socialfeed/internal/models"
)

// ErrorResponse is the standard error envelope. The code field lets
// clients react without parsing messages; "auth-required" opens the
// sign-in prompt instead of rendering an error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the error taxonomy to HTTP statuses. Unknown
// errors become a generic retry-later message, never the raw cause.
func WriteServiceError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case errors.Is(err, models.ErrAuthRequired):
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Please sign in to continue",
			Code:  "auth-required",
		})
	case errors.Is(err, models.ErrValidation):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: err.Error(),
			Code:  "validation",
		})
	case errors.Is(err, models.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: err.Error(),
			Code:  "not-found",
		})
	case errors.Is(err, models.ErrPermissionDenied):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: "You do not have permission to do that",
			Code:  "permission-denied",
		})
	default:
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{
			Error: "Something went wrong. Please try again later",
			Code:  "internal",
		})
	}
}
