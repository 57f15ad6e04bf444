// Package order contains the cart and order domain model.
package order

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zaikabox/v1/internal/domain/menu"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPreparing      Status = "Preparing"
	StatusOutForDelivery Status = "Out for Delivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

// DeliveryVehicle is the rider's mode of transport.
type DeliveryVehicle string

const (
	VehicleBike    DeliveryVehicle = "Bike"
	VehicleScooter DeliveryVehicle = "Scooter"
	VehicleCycle   DeliveryVehicle = "Cycle"
	VehicleWalking DeliveryVehicle = "Walking"
)

// CartItem is a menu item plus the ordered quantity.
type CartItem struct {
	Item     menu.FoodItem `json:"item"`
	Quantity int           `json:"quantity"`
}

// DeliveryAgent is the simulated rider assigned to an order.
type DeliveryAgent struct {
	Name       string          `json:"name"`
	Vehicle    DeliveryVehicle `json:"vehicle"`
	ETAMinutes int             `json:"etaMinutes"`
}

// Order is a placed order with its delivery state.
type Order struct {
	ID                  uuid.UUID     `json:"id"`
	Username            string        `json:"username"`
	Items               []CartItem    `json:"items"`
	Total               int           `json:"total"`
	Status              Status        `json:"status"`
	DeliveryAgent       DeliveryAgent `json:"deliveryAgent"`
	DeliveryAddress     string        `json:"deliveryAddress"`
	SpecialInstructions string        `json:"specialInstructions,omitempty"`
	PlacedAt            time.Time     `json:"placedAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

const (
	// DeliveryFee is the flat delivery charge in rupees.
	DeliveryFee = 40
	// TaxPercent is applied to the item subtotal.
	TaxPercent = 5
)

var (
	ErrEmptyOrder              = errors.New("order must contain at least one item")
	ErrInvalidQuantity         = errors.New("item quantity must be positive")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrNotCancellable          = errors.New("only preparing orders can be cancelled")
)

// Subtotal sums item prices times quantities in rupees.
func Subtotal(items []CartItem) int {
	total := 0
	for _, ci := range items {
		total += ci.Item.Price * ci.Quantity
	}
	return total
}

// New creates a placed order in the Preparing state. The total is the item
// subtotal plus the flat delivery fee plus tax.
func New(username string, items []CartItem, agent DeliveryAgent, address, instructions string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, ci := range items {
		if ci.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	sub := Subtotal(items)
	now := time.Now()
	return &Order{
		ID:                  uuid.New(),
		Username:            username,
		Items:               items,
		Total:               sub + DeliveryFee + (sub*TaxPercent+50)/100,
		Status:              StatusPreparing,
		DeliveryAgent:       agent,
		DeliveryAddress:     address,
		SpecialInstructions: instructions,
		PlacedAt:            now,
		UpdatedAt:           now,
	}, nil
}

// Advance moves the order to the next lifecycle state. Delivered and
// cancelled orders are terminal.
func (o *Order) Advance() error {
	switch o.Status {
	case StatusPreparing:
		o.Status = StatusOutForDelivery
	case StatusOutForDelivery:
		o.Status = StatusDelivered
	default:
		return ErrInvalidStatusTransition
	}
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel cancels an order that has not left the kitchen.
func (o *Order) Cancel() error {
	if o.Status != StatusPreparing {
		return ErrNotCancellable
	}
	o.Status = StatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the order is still in flight.
func (o *Order) IsActive() bool {
	return o.Status == StatusPreparing || o.Status == StatusOutForDelivery
}
