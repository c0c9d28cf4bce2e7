package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto publicado en un catálogo y clasificado en una categoría.
// Price se guarda como NUMERIC(10,2); nunca como float.
type Product struct {
	ID          int64
	Name        string
	Description *string
	Price       decimal.Decimal
	CatalogID   int64
	CategoryID  int64
	OwnerID     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductPatch campos opcionales de una actualización de producto.
type ProductPatch struct {
	Name        Field[string]
	Description Field[*string]
	Price       Field[decimal.Decimal]
	CatalogID   Field[int64]
	CategoryID  Field[int64]
}

// Apply mezcla en p los campos presentes en patch.
func (p *Product) Apply(patch ProductPatch) {
	patch.Name.Apply(&p.Name)
	patch.Description.Apply(&p.Description)
	patch.Price.Apply(&p.Price)
	patch.CatalogID.Apply(&p.CatalogID)
	patch.CategoryID.Apply(&p.CategoryID)
}

// MaxPrice límite exclusivo impuesto por NUMERIC(10,2).
var MaxPrice = decimal.New(1, 8)

// ValidPrice indica si d es no negativo, cabe en NUMERIC(10,2) y no tiene más de dos decimales.
func ValidPrice(d decimal.Decimal) bool {
	if d.IsNegative() || d.GreaterThanOrEqual(MaxPrice) {
		return false
	}
	return d.Equal(d.Round(2))
}
