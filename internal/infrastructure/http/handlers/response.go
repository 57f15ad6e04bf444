// Package handlers provides HTTP handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"
)

var validate = validator.New()

// APIResponse is the standard success envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Notice  string      `json:"notice,omitempty"`
}

func writeJSON(logger *zap.Logger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeError maps any error onto the structured error envelope. Unknown
// errors are reported as internal without leaking details.
func writeError(logger *zap.Logger, w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		logger.Error("Unhandled error", zap.Error(err))
		appErr = apperrors.NewInternalError("An unexpected error occurred")
	}

	requestID := chimiddleware.GetReqID(r.Context())
	writeJSON(logger, w, appErr.StatusCode(), apperrors.ToErrorResponse(appErr, requestID))
}

// decodeAndValidate parses a JSON body and runs struct validation.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("Invalid JSON payload")
	}
	if err := validate.Struct(dst); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}
