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

// ProductUseCase casos de uso CRUD para productos. Catálogo y categoría deben ser del mismo dueño.
type ProductUseCase struct {
	tx ports.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(tx ports.TxRunner) *ProductUseCase {
	return &ProductUseCase{tx: tx}
}

// List lista los productos del dueño.
func (uc *ProductUseCase) List(ctx context.Context, ownerID int64) ([]dto.ProductResponse, error) {
	var list []*entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Products.List(ctx, repository.ListFilter{OwnerID: ownerID})
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto del dueño.
func (uc *ProductUseCase) GetByID(ctx context.Context, ownerID, id int64) (*dto.ProductResponse, error) {
	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		product, err = repos.Products.GetOwned(ctx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Create crea un producto para ownerID.
func (uc *ProductUseCase) Create(ctx context.Context, ownerID int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Price == nil || !entity.ValidPrice(*in.Price) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		CatalogID:   in.CatalogID,
		CategoryID:  in.CategoryID,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := checkReferences(ctx, repos, ownerID, product.CatalogID, product.CategoryID); err != nil {
			return err
		}
		return repos.Products.Create(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update sobrescribe todos los campos editables del producto (PUT completo):
// una description ausente queda en null.
func (uc *ProductUseCase) Update(ctx context.Context, ownerID, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Price == nil || !entity.ValidPrice(*in.Price) {
		return nil, domain.ErrInvalidInput
	}
	patch := entity.ProductPatch{
		Name:        entity.Some(in.Name),
		Description: entity.Some(in.Description),
		Price:       entity.Some(*in.Price),
		CatalogID:   entity.Some(in.CatalogID),
		CategoryID:  entity.Some(in.CategoryID),
	}

	var product *entity.Product
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		product, err = repos.Products.GetOwned(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		product.Apply(patch)
		if err := checkReferences(ctx, repos, ownerID, product.CatalogID, product.CategoryID); err != nil {
			return err
		}
		product.UpdatedAt = time.Now().UTC()
		return repos.Products.Update(ctx, product)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto del dueño.
func (uc *ProductUseCase) Delete(ctx context.Context, ownerID, id int64) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		deleted, err := repos.Products.Delete(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

// checkReferences exige que catálogo y categoría existan y pertenezcan a ownerID.
func checkReferences(ctx context.Context, repos repository.Repositories, ownerID, catalogID, categoryID int64) error {
	catalog, err := repos.Catalogs.GetOwned(ctx, catalogID, ownerID)
	if err != nil {
		return err
	}
	if catalog == nil {
		return domain.ErrInvalidReference
	}
	category, err := repos.Categories.GetOwned(ctx, categoryID, ownerID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrInvalidReference
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CatalogID:   p.CatalogID,
		CategoryID:  p.CategoryID,
		OwnerID:     p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
