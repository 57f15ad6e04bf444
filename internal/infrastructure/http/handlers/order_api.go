package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/application/order"
	"github.com/zaikabox/v1/internal/infrastructure/http/middleware"
)

// OrderAPIHandlers handles cart and order API requests.
type OrderAPIHandlers struct {
	orderService *order.Service
	logger       *zap.Logger
}

// NewOrderAPIHandlers creates a new order API handlers instance.
func NewOrderAPIHandlers(orderService *order.Service, logger *zap.Logger) *OrderAPIHandlers {
	return &OrderAPIHandlers{
		orderService: orderService,
		logger:       logger,
	}
}

// AddToCartRequest adds one item to the caller's cart.
type AddToCartRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Force    bool   `json:"force"`
}

// GetCart handles GET /api/v1/cart
func (h *OrderAPIHandlers) GetCart(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	cart, err := h.orderService.GetCart(r.Context(), username)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: cart})
}

// AddToCart handles POST /api/v1/cart/items
func (h *OrderAPIHandlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var req AddToCartRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	result, err := h.orderService.AddToCart(r.Context(), username, req.ItemID, req.Quantity, req.Force)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	resp := APIResponse{Success: true, Data: result, Message: "Item added to cart"}
	if !result.Safety.Checked {
		resp.Notice = "Safety verification unavailable. Added without a health check."
	}
	writeJSON(h.logger, w, http.StatusOK, resp)
}

// RemoveFromCart handles DELETE /api/v1/cart/items/{itemID}
func (h *OrderAPIHandlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	cart, err := h.orderService.RemoveFromCart(r.Context(), username, chi.URLParam(r, "itemID"))
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: cart})
}

// ClearCart handles DELETE /api/v1/cart
func (h *OrderAPIHandlers) ClearCart(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	if err := h.orderService.ClearCart(r.Context(), username); err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Message: "Cart cleared"})
}

// PlaceOrder handles POST /api/v1/orders
func (h *OrderAPIHandlers) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	var req order.PlaceOrderCommand
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	placed, err := h.orderService.PlaceOrder(r.Context(), username, req)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    placed,
		Message: "Order placed",
	})
}

// ListOrders handles GET /api/v1/orders
func (h *OrderAPIHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), username)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: orders})
}

// ActiveOrder handles GET /api/v1/orders/active
func (h *OrderAPIHandlers) ActiveOrder(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	active, err := h.orderService.ActiveOrder(r.Context(), username)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: active})
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *OrderAPIHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.logger, w, r, apperrors.NewBadRequestError("Invalid order ID"))
		return
	}

	placed, err := h.orderService.GetOrder(r.Context(), username, id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{Success: true, Data: placed})
}

// CancelOrder handles POST /api/v1/orders/{id}/cancel
func (h *OrderAPIHandlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	username, err := caller(r)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(h.logger, w, r, apperrors.NewBadRequestError("Invalid order ID"))
		return
	}

	cancelled, err := h.orderService.CancelOrder(r.Context(), username, id)
	if err != nil {
		writeError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, http.StatusOK, APIResponse{
		Success: true,
		Data:    cancelled,
		Message: "Order cancelled",
	})
}

// caller extracts the authenticated username from the request context.
func caller(r *http.Request) (string, error) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		return "", apperrors.NewAppError(apperrors.CodeUnauthorized, "Not authenticated", "")
	}
	return username, nil
}
