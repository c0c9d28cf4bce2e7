package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear y para actualizar (PUT) un producto.
// En la actualización se sobrescriben todos los campos: description ausente la borra.
type ProductRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
	CatalogID   int64            `json:"catalog_id" validate:"required,gt=0"`
	CategoryID  int64            `json:"category_id" validate:"required,gt=0"`
}

// ProductResponse salida de un producto. Price se serializa como string ("9.99").
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	CatalogID   int64           `json:"catalog_id"`
	CategoryID  int64           `json:"category_id"`
	OwnerID     int64           `json:"owner_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
