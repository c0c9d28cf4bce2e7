package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/bazar-api/internal/application/dto"
	"github.com/jhoicas/bazar-api/internal/application/ports"
	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
)

// CatalogUseCase casos de uso CRUD para catálogos, siempre acotados al dueño.
type CatalogUseCase struct {
	tx ports.TxRunner
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(tx ports.TxRunner) *CatalogUseCase {
	return &CatalogUseCase{tx: tx}
}

// List lista los catálogos del dueño.
func (uc *CatalogUseCase) List(ctx context.Context, ownerID int64) ([]dto.CatalogResponse, error) {
	var list []*entity.Catalog
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Catalogs.List(ctx, repository.ListFilter{OwnerID: ownerID})
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CatalogResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCatalogResponse(c))
	}
	return items, nil
}

// GetByID obtiene un catálogo del dueño. Devuelve domain.ErrNotFound si no existe o es de otro usuario.
func (uc *CatalogUseCase) GetByID(ctx context.Context, ownerID, id int64) (*dto.CatalogResponse, error) {
	var catalog *entity.Catalog
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		catalog, err = repos.Catalogs.GetOwned(ctx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, domain.ErrNotFound
	}
	return toCatalogResponse(catalog), nil
}

// Create crea un catálogo cuyo dueño es siempre ownerID.
func (uc *CatalogUseCase) Create(ctx context.Context, ownerID int64, in dto.CreateCatalogRequest) (*dto.CatalogResponse, error) {
	now := time.Now().UTC()
	catalog := &entity.Catalog{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		return repos.Catalogs.Create(ctx, catalog)
	})
	if err != nil {
		return nil, err
	}
	return toCatalogResponse(catalog), nil
}

// Update aplica solo los campos presentes en in.
func (uc *CatalogUseCase) Update(ctx context.Context, ownerID, id int64, in dto.UpdateCatalogRequest) (*dto.CatalogResponse, error) {
	patch := entity.CatalogPatch{Name: entity.FromPtr(in.Name)}
	if in.Description != nil {
		patch.Description = entity.Some(in.Description)
	}

	var catalog *entity.Catalog
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		catalog, err = repos.Catalogs.GetOwned(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if catalog == nil {
			return domain.ErrNotFound
		}
		catalog.Apply(patch)
		catalog.UpdatedAt = time.Now().UTC()
		return repos.Catalogs.Update(ctx, catalog)
	})
	if err != nil {
		return nil, err
	}
	return toCatalogResponse(catalog), nil
}

// Delete elimina el catálogo y, en cascada, sus productos.
func (uc *CatalogUseCase) Delete(ctx context.Context, ownerID, id int64) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		deleted, err := repos.Catalogs.Delete(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

func toCatalogResponse(c *entity.Catalog) *dto.CatalogResponse {
	if c == nil {
		return nil
	}
	return &dto.CatalogResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		OwnerID:     c.OwnerID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
