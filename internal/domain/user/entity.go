// Package user contains the account domain model.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zaikabox/v1/internal/domain/health"
)

// Address is the delivery address attached to an account.
type Address struct {
	DoorNo   string `json:"doorNo"`
	Landmark string `json:"landmark"`
	District string `json:"district"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
}

// User is a registered account with its declared health profile.
type User struct {
	ID            uuid.UUID      `json:"id"`
	Username      string         `json:"username"`
	FirstName     string         `json:"firstName"`
	LastName      string         `json:"lastName"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	PasswordHash  string         `json:"-"`
	Address       Address        `json:"address"`
	HealthProfile health.Profile `json:"healthProfile"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

var (
	ErrUsernameTooShort = errors.New("username must be at least 3 characters")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

// New creates an account with a hashed password.
func New(username, password string, profile health.Profile) (*User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return nil, ErrUsernameTooShort
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		ID:            uuid.New(),
		Username:      username,
		PasswordHash:  string(hash),
		HealthProfile: profile,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CheckPassword verifies a login attempt against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// UpdateHealthProfile replaces the health profile after validation.
func (u *User) UpdateHealthProfile(profile health.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	u.HealthProfile = profile
	u.UpdatedAt = time.Now()
	return nil
}
