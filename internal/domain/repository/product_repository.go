package repository

import (
	"context"

	"github.com/khalilbouhlel1/threadly-api/internal/domain/entity"
)

// ProductRepository defines the interface for catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}
