package entity

import "time"

// Category representa una categoría de productos de un dueño.
type Category struct {
	ID        int64
	Name      string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryPatch campos opcionales de una actualización parcial de categoría.
type CategoryPatch struct {
	Name Field[string]
}

// Apply mezcla en c los campos presentes en p.
func (c *Category) Apply(p CategoryPatch) {
	p.Name.Apply(&c.Name)
}
