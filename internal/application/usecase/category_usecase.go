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

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	tx ports.TxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(tx ports.TxRunner) *CategoryUseCase {
	return &CategoryUseCase{tx: tx}
}

// List lista las categorías del dueño.
func (uc *CategoryUseCase) List(ctx context.Context, ownerID int64) ([]dto.CategoryResponse, error) {
	var list []*entity.Category
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		list, err = repos.Categories.List(ctx, repository.ListFilter{OwnerID: ownerID})
		return err
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// GetByID obtiene una categoría del dueño.
func (uc *CategoryUseCase) GetByID(ctx context.Context, ownerID, id int64) (*dto.CategoryResponse, error) {
	var category *entity.Category
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		category, err = repos.Categories.GetOwned(ctx, id, ownerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Create crea una categoría para ownerID.
func (uc *CategoryUseCase) Create(ctx context.Context, ownerID int64, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	now := time.Now().UTC()
	category := &entity.Category{
		Name:      in.Name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		return repos.Categories.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update aplica solo los campos presentes en in.
func (uc *CategoryUseCase) Update(ctx context.Context, ownerID, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	patch := entity.CategoryPatch{Name: entity.FromPtr(in.Name)}

	var category *entity.Category
	err := uc.tx.Run(ctx, func(repos repository.Repositories) error {
		var err error
		category, err = repos.Categories.GetOwned(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}
		category.Apply(patch)
		category.UpdatedAt = time.Now().UTC()
		return repos.Categories.Update(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina la categoría y, en cascada, sus productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, ownerID, id int64) error {
	return uc.tx.Run(ctx, func(repos repository.Repositories) error {
		deleted, err := repos.Categories.Delete(ctx, id, ownerID)
		if err != nil {
			return err
		}
		if !deleted {
			return domain.ErrNotFound
		}
		return nil
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
