package gorm

import (
	"encoding/json"
	"fmt"

	"github.com/zaikabox/v1/internal/domain/health"
	"github.com/zaikabox/v1/internal/domain/order"
	"github.com/zaikabox/v1/internal/domain/user"
)

func marshalField(v interface{}) (JSONField, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal field: %w", err)
	}
	return JSONField(raw), nil
}

func unmarshalField(f JSONField, out interface{}) error {
	if len(f) == 0 {
		return nil
	}
	if err := json.Unmarshal([]byte(f), out); err != nil {
		return fmt.Errorf("unmarshal field: %w", err)
	}
	return nil
}

// UserToModel converts a domain user to its persistence model.
func UserToModel(u *user.User) (*UserModel, error) {
	address, err := marshalField(u.Address)
	if err != nil {
		return nil, err
	}
	profile, err := marshalField(u.HealthProfile)
	if err != nil {
		return nil, err
	}

	return &UserModel{
		ID:            u.ID,
		Username:      u.Username,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Phone:         u.Phone,
		PasswordHash:  u.PasswordHash,
		Address:       address,
		HealthProfile: profile,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}, nil
}

// ModelToUser converts a persistence model back to the domain user.
func ModelToUser(m *UserModel) (*user.User, error) {
	var address user.Address
	if err := unmarshalField(m.Address, &address); err != nil {
		return nil, err
	}
	var profile health.Profile
	if err := unmarshalField(m.HealthProfile, &profile); err != nil {
		return nil, err
	}

	return &user.User{
		ID:            m.ID,
		Username:      m.Username,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Email:         m.Email,
		Phone:         m.Phone,
		PasswordHash:  m.PasswordHash,
		Address:       address,
		HealthProfile: profile,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}, nil
}

// OrderToModel converts a domain order to its persistence model.
func OrderToModel(o *order.Order) (*OrderModel, error) {
	items, err := marshalField(o.Items)
	if err != nil {
		return nil, err
	}
	agent, err := marshalField(o.DeliveryAgent)
	if err != nil {
		return nil, err
	}

	return &OrderModel{
		ID:                  o.ID,
		Username:            o.Username,
		Items:               items,
		Total:               o.Total,
		Status:              string(o.Status),
		DeliveryAgent:       agent,
		DeliveryAddress:     o.DeliveryAddress,
		SpecialInstructions: o.SpecialInstructions,
		PlacedAt:            o.PlacedAt,
		UpdatedAt:           o.UpdatedAt,
	}, nil
}

// ModelToOrder converts a persistence model back to the domain order.
func ModelToOrder(m *OrderModel) (*order.Order, error) {
	var items []order.CartItem
	if err := unmarshalField(m.Items, &items); err != nil {
		return nil, err
	}
	var agent order.DeliveryAgent
	if err := unmarshalField(m.DeliveryAgent, &agent); err != nil {
		return nil, err
	}

	return &order.Order{
		ID:                  m.ID,
		Username:            m.Username,
		Items:               items,
		Total:               m.Total,
		Status:              order.Status(m.Status),
		DeliveryAgent:       agent,
		DeliveryAddress:     m.DeliveryAddress,
		SpecialInstructions: m.SpecialInstructions,
		PlacedAt:            m.PlacedAt,
		UpdatedAt:           m.UpdatedAt,
	}, nil
}
