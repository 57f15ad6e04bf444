// Package order provides the application layer for carts and orders.
package order

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/application/advisory"
	"github.com/zaikabox/v1/internal/domain/menu"
	"github.com/zaikabox/v1/internal/domain/order"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// agentNames is the pool of simulated delivery riders.
var agentNames = []string{"Ramesh", "Suresh", "Karthik", "Vijay", "Manoj"}

const agentETAMinutes = 25

// LifecycleDelays controls how long a placed order spends in each state
// before the simulated rider advances it.
type LifecycleDelays struct {
	OutForDelivery time.Duration
	Delivered      time.Duration
}

// DefaultLifecycleDelays mirrors the kitchen simulation timings.
var DefaultLifecycleDelays = LifecycleDelays{
	OutForDelivery: 10 * time.Second,
	Delivered:      20 * time.Second,
}

// Scheduler defers a function by a delay. Production wiring uses
// time.AfterFunc; tests substitute an immediate scheduler.
type Scheduler func(d time.Duration, f func())

// CartView is a cart snapshot with derived totals.
type CartView struct {
	Items       []order.CartItem `json:"items"`
	Subtotal    int              `json:"subtotal"`
	DeliveryFee int              `json:"deliveryFee"`
	Tax         int              `json:"tax"`
	Total       int              `json:"total"`
}

// AddResult is returned by AddToCart. Safety carries the verdict that was
// applied, so callers can surface an unverified-add warning.
type AddResult struct {
	Cart   CartView              `json:"cart"`
	Safety advisory.SafetyResult `json:"safety"`
}

// PlaceOrderCommand contains the checkout payload.
type PlaceOrderCommand struct {
	DeliveryAddress     string                `json:"deliveryAddress" validate:"required"`
	SpecialInstructions string                `json:"specialInstructions"`
	Vehicle             order.DeliveryVehicle `json:"vehicle"`
}

// Service implements the cart and order use cases.
type Service struct {
	orderRepo outbound.OrderRepository
	userRepo  outbound.UserRepository
	advisory  *advisory.Service
	catalog   *menu.Catalog
	schedule  Scheduler
	delays    LifecycleDelays
	rng       *rand.Rand
	logger    *zap.Logger
}

// NewService creates a new order service. A nil scheduler wires the real
// timer; a nil rng wires a time-seeded source.
func NewService(
	orderRepo outbound.OrderRepository,
	userRepo outbound.UserRepository,
	advisorySvc *advisory.Service,
	catalog *menu.Catalog,
	schedule Scheduler,
	delays LifecycleDelays,
	rng *rand.Rand,
	logger *zap.Logger,
) *Service {
	if schedule == nil {
		schedule = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		advisory:  advisorySvc,
		catalog:   catalog,
		schedule:  schedule,
		delays:    delays,
		rng:       rng,
		logger:    logger.Named("order-service"),
	}
}

// GetCart returns the account's cart with totals.
func (s *Service) GetCart(ctx context.Context, username string) (CartView, error) {
	items, err := s.orderRepo.LoadCart(ctx, username)
	if err != nil {
		return CartView{}, err
	}
	return buildCartView(items), nil
}

// AddToCart adds a catalog item to the cart after a safety check against
// the account's health profile. A blocked verdict rejects the add unless
// force is set; an unverified check lets the add through and reports it.
func (s *Service) AddToCart(ctx context.Context, username, itemID string, quantity int, force bool) (AddResult, error) {
	if quantity <= 0 {
		return AddResult{}, apperrors.NewValidationError("quantity must be positive")
	}

	item, err := s.catalog.FindByID(itemID)
	if err != nil {
		return AddResult{}, apperrors.NewItemNotFoundError(itemID)
	}

	account, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return AddResult{}, err
	}

	safety := s.advisory.CheckSafety(ctx, item, account.HealthProfile)
	if safety.Checked && !safety.Verdict.Safe && !force {
		return AddResult{}, apperrors.NewUnsafeItemError(item.Name, safety.Verdict.Reason)
	}

	items, err := s.orderRepo.LoadCart(ctx, username)
	if err != nil {
		return AddResult{}, err
	}

	merged := false
	for i := range items {
		if items[i].Item.ID == item.ID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, order.CartItem{Item: item, Quantity: quantity})
	}

	if err := s.orderRepo.SaveCart(ctx, username, items); err != nil {
		return AddResult{}, err
	}

	s.logger.Info("Item added to cart",
		zap.String("username", username),
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity),
		zap.Bool("forced", force && safety.Checked && !safety.Verdict.Safe),
	)

	return AddResult{Cart: buildCartView(items), Safety: safety}, nil
}

// RemoveFromCart deletes all lines for one item.
func (s *Service) RemoveFromCart(ctx context.Context, username, itemID string) (CartView, error) {
	items, err := s.orderRepo.LoadCart(ctx, username)
	if err != nil {
		return CartView{}, err
	}

	kept := items[:0]
	for _, ci := range items {
		if ci.Item.ID != itemID {
			kept = append(kept, ci)
		}
	}

	if err := s.orderRepo.SaveCart(ctx, username, kept); err != nil {
		return CartView{}, err
	}
	return buildCartView(kept), nil
}

// ClearCart empties the account's cart.
func (s *Service) ClearCart(ctx context.Context, username string) error {
	return s.orderRepo.SaveCart(ctx, username, nil)
}

// PlaceOrder checks out the cart, assigns a rider and starts the simulated
// delivery lifecycle. The cart is emptied on success.
func (s *Service) PlaceOrder(ctx context.Context, username string, cmd PlaceOrderCommand) (*order.Order, error) {
	items, err := s.orderRepo.LoadCart(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.NewEmptyCartError()
	}

	vehicle := cmd.Vehicle
	if vehicle == "" {
		vehicle = order.VehicleBike
	}
	agent := order.DeliveryAgent{
		Name:       agentNames[s.rng.Intn(len(agentNames))],
		Vehicle:    vehicle,
		ETAMinutes: agentETAMinutes,
	}

	placed, err := order.New(username, items, agent, cmd.DeliveryAddress, cmd.SpecialInstructions)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.orderRepo.SaveOrder(ctx, placed); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveCart(ctx, username, nil); err != nil {
		return nil, err
	}

	s.startLifecycle(placed.ID)

	s.logger.Info("Order placed",
		zap.String("username", username),
		zap.String("order_id", placed.ID.String()),
		zap.Int("total", placed.Total),
	)
	return placed, nil
}

// CancelOrder cancels an order that is still being prepared.
func (s *Service) CancelOrder(ctx context.Context, username string, orderID uuid.UUID) (*order.Order, error) {
	placed, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if placed.Username != username {
		return nil, apperrors.NewOrderNotFoundError(orderID.String())
	}

	if err := placed.Cancel(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if err := s.orderRepo.UpdateOrder(ctx, placed); err != nil {
		return nil, err
	}

	s.logger.Info("Order cancelled", zap.String("order_id", orderID.String()))
	return placed, nil
}

// GetOrder loads one of the account's orders.
func (s *Service) GetOrder(ctx context.Context, username string, orderID uuid.UUID) (*order.Order, error) {
	placed, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if placed.Username != username {
		return nil, apperrors.NewOrderNotFoundError(orderID.String())
	}
	return placed, nil
}

// ListOrders returns the account's order history, newest first.
func (s *Service) ListOrders(ctx context.Context, username string) ([]*order.Order, error) {
	return s.orderRepo.ListOrdersByUsername(ctx, username)
}

// ActiveOrder returns the account's in-flight order, or nil.
func (s *Service) ActiveOrder(ctx context.Context, username string) (*order.Order, error) {
	orders, err := s.orderRepo.ListOrdersByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.IsActive() {
			return o, nil
		}
	}
	return nil, nil
}

// startLifecycle schedules the simulated delivery transitions. A cancelled
// order stays cancelled: advancing a terminal order is a no-op.
func (s *Service) startLifecycle(orderID uuid.UUID) {
	s.schedule(s.delays.OutForDelivery, func() { s.advanceIfActive(orderID) })
	s.schedule(s.delays.Delivered, func() { s.advanceIfActive(orderID) })
}

func (s *Service) advanceIfActive(orderID uuid.UUID) {
	ctx := context.Background()

	placed, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		s.logger.Warn("Lifecycle advance skipped", zap.String("order_id", orderID.String()), zap.Error(err))
		return
	}
	if err := placed.Advance(); err != nil {
		return
	}
	if err := s.orderRepo.UpdateOrder(ctx, placed); err != nil {
		s.logger.Warn("Failed to persist order status", zap.String("order_id", orderID.String()), zap.Error(err))
		return
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", string(placed.Status)),
	)
}

func buildCartView(items []order.CartItem) CartView {
	sub := order.Subtotal(items)
	tax := (sub*order.TaxPercent + 50) / 100
	view := CartView{
		Items:       items,
		Subtotal:    sub,
		DeliveryFee: order.DeliveryFee,
		Tax:         tax,
	}
	if len(items) == 0 {
		view.DeliveryFee = 0
		view.Items = []order.CartItem{}
	}
	view.Total = view.Subtotal + view.DeliveryFee + view.Tax
	return view
}
