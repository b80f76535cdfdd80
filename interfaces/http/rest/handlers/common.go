package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	pkgerrors "railcanvas/pkg/errors"
)

var validate = validator.New()

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps application error types onto HTTP statuses
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case pkgerrors.IsValidation(err):
		status = http.StatusBadRequest
	case pkgerrors.IsNotFound(err):
		status = http.StatusNotFound
	case pkgerrors.IsConflict(err):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeAndValidate decodes the request body and runs struct validation
func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return pkgerrors.NewValidation("invalid request body: " + err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return pkgerrors.NewValidation("validation error: " + err.Error())
	}
	return nil
}
