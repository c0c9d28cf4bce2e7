package repository

import (
	"context"

	"github.com/jhoicas/bazar-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia para Catalog.
// Toda lectura o escritura por ID filtra también por dueño en la misma consulta.
type CatalogRepository interface {
	Create(ctx context.Context, catalog *entity.Catalog) error
	GetOwned(ctx context.Context, id, ownerID int64) (*entity.Catalog, error)
	List(ctx context.Context, filter ListFilter) ([]*entity.Catalog, error)
	Update(ctx context.Context, catalog *entity.Catalog) error
	Delete(ctx context.Context, id, ownerID int64) (bool, error)
}
