package outbound

import (
	"context"

	"github.com/google/uuid"

	"github.com/zaikabox/v1/internal/domain/order"
	"github.com/zaikabox/v1/internal/domain/user"
)

// UserRepository persists registered accounts.
type UserRepository interface {
	Save(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// OrderRepository persists orders and per-user carts.
type OrderRepository interface {
	SaveOrder(ctx context.Context, o *order.Order) error
	UpdateOrder(ctx context.Context, o *order.Order) error
	FindOrder(ctx context.Context, id uuid.UUID) (*order.Order, error)
	ListOrdersByUsername(ctx context.Context, username string) ([]*order.Order, error)

	SaveCart(ctx context.Context, username string, items []order.CartItem) error
	LoadCart(ctx context.Context, username string) ([]order.CartItem, error)
}
