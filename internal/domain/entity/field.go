package entity

// Field es un valor opcional dentro de un patch. Set indica que el campo vino en la petición;
// un Field sin Set deja intacto el valor actual de la entidad.
type Field[T any] struct {
	Value T
	Set   bool
}

// Some construye un Field presente con el valor v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// FromPtr devuelve un Field presente solo si p no es nil.
func FromPtr[T any](p *T) Field[T] {
	if p == nil {
		return Field[T]{}
	}
	return Some(*p)
}

// Apply escribe el valor en dst si el campo está presente.
func (f Field[T]) Apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}
