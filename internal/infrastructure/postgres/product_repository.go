package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, price, catalog_id, category_id, owner_id, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
// price es NUMERIC(10,2) y se mapea a shopspring/decimal vía pgx-shopspring-decimal.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (name, description, price, catalog_id, category_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		product.Name, product.Description, product.Price, product.CatalogID, product.CategoryID,
		product.OwnerID, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetOwned obtiene el producto solo si pertenece a ownerID.
func (r *ProductRepo) GetOwned(ctx context.Context, id, ownerID int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id, ownerID).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.CatalogID, &p.CategoryID,
		&p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista productos con filtro opcional por dueño, ordenados por ID.
func (r *ProductRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Product, error) {
	limit, offset := limitOffset(filter.Limit, filter.Offset)
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE ($1::bigint = 0 OR owner_id = $1)
		ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, filter.OwnerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.CatalogID, &p.CategoryID,
			&p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update sobrescribe los campos editables del producto del dueño.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products
		SET name = $3, description = $4, price = $5, catalog_id = $6, category_id = $7, updated_at = $8
		WHERE id = $1 AND owner_id = $2`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.OwnerID, product.Name, product.Description, product.Price,
		product.CatalogID, product.CategoryID, product.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina el producto del dueño.
func (r *ProductRepo) Delete(ctx context.Context, id, ownerID int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}
