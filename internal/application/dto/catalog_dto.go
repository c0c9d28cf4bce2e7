package dto

import "time"

// CreateCatalogRequest entrada para crear un catálogo.
type CreateCatalogRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description"`
}

// UpdateCatalogRequest actualización parcial: campos ausentes o null se dejan como están.
type UpdateCatalogRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
}

// CatalogResponse salida de un catálogo.
type CatalogResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     int64     `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
