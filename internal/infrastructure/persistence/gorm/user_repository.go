package gorm

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/zaikabox/v1/pkg/errors"

	"github.com/zaikabox/v1/internal/domain/user"
	"github.com/zaikabox/v1/internal/ports/outbound"
)

// UserRepository implements outbound.UserRepository using GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Save inserts a new account.
func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	model, err := UserToModel(u)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if strings.Contains(result.Error.Error(), "UNIQUE constraint failed") ||
			strings.Contains(result.Error.Error(), "duplicate key") {
			return apperrors.NewUsernameExistsError(u.Username)
		}
		return apperrors.NewDatabaseError("create user", result.Error)
	}

	return nil
}

// Update persists changes to an existing account.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model, err := UserToModel(u)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewDatabaseError("update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewUserNotFoundError(u.Username)
	}

	return nil
}

// FindByUsername loads an account by its unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewUserNotFoundError(username)
		}
		return nil, apperrors.NewDatabaseError("find user", result.Error)
	}

	return ModelToUser(&model)
}

// ExistsByUsername reports whether a username is already taken.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("username = ?", username).Count(&count)
	if result.Error != nil {
		return false, apperrors.NewDatabaseError("count users", result.Error)
	}

	return count > 0, nil
}
