package entity

import "time"

// Catalog agrupa productos de un mismo dueño.
type Catalog struct {
	ID          int64
	Name        string
	Description *string // nil = sin descripción
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CatalogPatch campos opcionales de una actualización parcial de catálogo.
type CatalogPatch struct {
	Name        Field[string]
	Description Field[*string]
}

// Apply mezcla en c los campos presentes en p.
func (c *Catalog) Apply(p CatalogPatch) {
	p.Name.Apply(&c.Name)
	p.Description.Apply(&c.Description)
}
