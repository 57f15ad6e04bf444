package handlers

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/application/user"
	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/infrastructure/http/middleware"
)

// AuthAPIHandlers handles authentication and profile API requests.
type AuthAPIHandlers struct {
	userService *user.Service
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance.
func NewAuthAPIHandlers(userService *user.Service, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req user.RegisterCommand
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	resp, err := h.userService.Register(r.Context(), req)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(h.logger, w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    resp,
		Message: "User registered successfully",
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req user.LoginCommand
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	resp, err := h.userService.Login(r.Context(), req)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data:    resp,
		Message: "Login successful",
	})
}

// GetProfile handles GET /api/v1/auth/profile
func (h *AuthAPIHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, apperrors.NewAppError(apperrors.CodeUnauthorized, "Not authenticated", ""))
		return
	}

	account, err := h.userService.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: account})
}

// UpdateHealthProfile handles PUT /api/v1/auth/profile/health
func (h *AuthAPIHandlers) UpdateHealthProfile(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, apperrors.NewAppError(apperrors.CodeUnauthorized, "Not authenticated", ""))
		return
	}

	var req health.Profile
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	account, err := h.userService.UpdateHealthProfile(r.Context(), username, req)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data:    account,
		Message: "Health profile updated",
	})
}
