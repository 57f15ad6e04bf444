package handlers

import (
	"net/http"

	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/application/advisory"
	"github.com/zaikabox/v1/internal/application/user"
	"github.com/zaikabox/v1/internal/domain/menu"
	userdomain "github.com/zaikabox/v1/internal/domain/user"
	"github.com/zaikabox/v1/internal/infrastructure/http/middleware"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// AdvisoryAPIHandlers exposes health recommendations, safety checks and
// the assistant chat.
type AdvisoryAPIHandlers struct {
	advisoryService *advisory.Service
	userService     *user.Service
	catalog         *menu.Catalog
	logger          *zap.Logger
}

// NewAdvisoryAPIHandlers creates a new advisory API handlers instance.
func NewAdvisoryAPIHandlers(
	advisoryService *advisory.Service,
	userService *user.Service,
	catalog *menu.Catalog,
	logger *zap.Logger,
) *AdvisoryAPIHandlers {
	return &AdvisoryAPIHandlers{
		advisoryService: advisoryService,
		userService:     userService,
		catalog:         catalog,
		logger:          logger,
	}
}

// SafetyCheckRequest asks for a verdict on one catalog item.
type SafetyCheckRequest struct {
	ItemID string `json:"itemId" validate:"required"`
}

// ChatRequest carries one assistant turn plus the prior conversation.
type ChatRequest struct {
	Message string              `json:"message" validate:"required"`
	History []outbound.ChatTurn `json:"history"`
}

// GetRecommendations handles GET /api/v1/advisory/recommendations
func (h *AdvisoryAPIHandlers) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	account, err := h.callerAccount(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	result := h.advisoryService.Recommendations(r.Context(), account.HealthProfile)

	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data:    result,
		Notice:  result.Notice,
	})
}

// CheckSafety handles POST /api/v1/advisory/safety-check
func (h *AdvisoryAPIHandlers) CheckSafety(w http.ResponseWriter, r *http.Request) {
	account, err := h.callerAccount(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var req SafetyCheckRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	item, err := h.catalog.FindByID(req.ItemID)
	if err != nil {
		writeError(h.logger, w, r, apperrors.NewItemNotFoundError(req.ItemID))
		return
	}

	result := h.advisoryService.CheckSafety(r.Context(), item, account.HealthProfile)
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: result})
}

// Chat handles POST /api/v1/advisory/chat
func (h *AdvisoryAPIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	account, err := h.callerAccount(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var req ChatRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	result := h.advisoryService.Chat(r.Context(), req.Message, account.HealthProfile, req.History)
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: result})
}

func (h *AdvisoryAPIHandlers) callerAccount(r *http.Request) (*userdomain.User, error) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		return nil, apperrors.NewAppError(apperrors.CodeUnauthorized, "Not authenticated", "")
	}
	return h.userService.GetByUsername(r.Context(), username)
}
