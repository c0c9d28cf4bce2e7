package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

const catalogColumns = `id, name, description, owner_id, created_at, updated_at`

// CatalogRepo implementación del puerto CatalogRepository sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador de persistencia para catálogos.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste un nuevo catálogo y asigna su ID.
func (r *CatalogRepo) Create(ctx context.Context, catalog *entity.Catalog) error {
	query := `
		INSERT INTO catalogs (name, description, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		catalog.Name, catalog.Description, catalog.OwnerID, catalog.CreatedAt, catalog.UpdatedAt,
	).Scan(&catalog.ID)
	if err != nil {
		return fmt.Errorf("insert catalog: %w", err)
	}
	return nil
}

// GetOwned obtiene el catálogo solo si pertenece a ownerID; nil en otro caso.
func (r *CatalogRepo) GetOwned(ctx context.Context, id, ownerID int64) (*entity.Catalog, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalogs WHERE id = $1 AND owner_id = $2`
	var c entity.Catalog
	err := r.q.QueryRow(ctx, query, id, ownerID).Scan(
		&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return &c, nil
}

// List lista catálogos (del dueño si filter.OwnerID > 0) ordenados por ID.
func (r *CatalogRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Catalog, error) {
	limit, offset := limitOffset(filter.Limit, filter.Offset)
	query := `
		SELECT ` + catalogColumns + ` FROM catalogs
		WHERE ($1::bigint = 0 OR owner_id = $1)
		ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.OwnerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Catalog
	for rows.Next() {
		var c entity.Catalog
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza nombre, descripción y updated_at. El dueño nunca se modifica.
func (r *CatalogRepo) Update(ctx context.Context, catalog *entity.Catalog) error {
	query := `
		UPDATE catalogs SET name = $3, description = $4, updated_at = $5
		WHERE id = $1 AND owner_id = $2`
	_, err := r.q.Exec(ctx, query,
		catalog.ID, catalog.OwnerID, catalog.Name, catalog.Description, catalog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update catalog: %w", err)
	}
	return nil
}

// Delete elimina el catálogo del dueño; false si no existe o es de otro usuario.
func (r *CatalogRepo) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM catalogs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete catalog: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
