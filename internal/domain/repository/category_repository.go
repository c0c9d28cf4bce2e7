package repository

import (
	"context"

	"github.com/jhoicas/bazar-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetOwned(ctx context.Context, id, ownerID int64) (*entity.Category, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}
