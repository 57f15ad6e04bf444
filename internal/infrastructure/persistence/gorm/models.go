// Package gorm provides GORM model definitions and repository
// implementations backed by a relational store.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserModel represents the GORM model for accounts.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	Email        string    `gorm:"type:varchar(255)"`
	Phone        string    `gorm:"type:varchar(20)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	Address       JSONField `gorm:"type:json"`
	HealthProfile JSONField `gorm:"type:json"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderModel represents the GORM model for placed orders.
type OrderModel struct {
	ID                  uuid.UUID `gorm:"type:char(36);primaryKey"`
	Username            string    `gorm:"type:varchar(255);not null;index"`
	Items               JSONField `gorm:"type:json"`
	Total               int       `gorm:"not null"`
	Status              string    `gorm:"type:varchar(30);not null;index"`
	DeliveryAgent       JSONField `gorm:"type:json"`
	DeliveryAddress     string    `gorm:"type:text"`
	SpecialInstructions string    `gorm:"type:text"`
	PlacedAt            time.Time `gorm:"index"`
	UpdatedAt           time.Time
}

// CartModel represents the persisted cart for one account. One row per
// username; the items column holds the serialized cart lines.
type CartModel struct {
	Username  string    `gorm:"type:varchar(255);primaryKey"`
	Items     JSONField `gorm:"type:json"`
	UpdatedAt time.Time
}

// JSONField stores an arbitrary JSON document in a single column.
type JSONField json.RawMessage

// Scan implements sql.Scanner.
func (j *JSONField) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = append((*j)[0:0], v...)
		return nil
	case string:
		*j = JSONField(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSONField", value)
	}
}

// Value implements driver.Valuer.
func (j JSONField) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return []byte(j), nil
}

func (UserModel) TableName() string {
	return "users"
}

func (OrderModel) TableName() string {
	return "orders"
}

func (CartModel) TableName() string {
	return "carts"
}
