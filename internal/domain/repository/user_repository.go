package repository

import (
	"context"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence. Email has a
// unique index; Create and Update surface ErrDuplicate on collision.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByResetToken(ctx context.Context, token string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, id string) error
}
