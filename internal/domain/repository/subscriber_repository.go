package repository

import (
	"context"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
)

// SubscriberRepository defines the interface for the newsletter mailing list.
type SubscriberRepository interface {
	Create(ctx context.Context, s *entity.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*entity.Subscriber, error)
	GetByToken(ctx context.Context, token string) (*entity.Subscriber, error)
	ListActive(ctx context.Context) ([]*entity.Subscriber, error)
	Update(ctx context.Context, s *entity.Subscriber) error
}
