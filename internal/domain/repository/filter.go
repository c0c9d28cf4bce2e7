package repository

// ListFilter filtro y paginación simple por offset para listados.
// OwnerID cero no filtra por dueño; Limit cero no limita.
type ListFilter struct {
	OwnerID int64
	Limit   int
	Offset  int
}
