package repository

import (
	"context"

	"github.com/jhoicas/bazar-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
// Create y Update devuelven domain.ErrInvalidReference si catalog_id o category_id no existen.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetOwned(ctx context.Context, id, ownerID int64) (*entity.Product, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}
