// Package memstore implementa en memoria el TxRunner y los repositorios del dominio para tests.
// Respeta los constraints del esquema PostgreSQL: username/email únicos, llaves foráneas y borrado
// en cascada. Run serializa las transacciones y restaura el estado anterior si fn falla.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/bazar-api/internal/application/ports"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type data struct {
	users      map[int64]entity.User
	catalogs   map[int64]entity.Catalog
	categories map[int64]entity.Category
	products   map[int64]entity.Product
	seq        int64
}

func newData() *data {
	return &data{
		users:      make(map[int64]entity.User),
		catalogs:   make(map[int64]entity.Catalog),
		categories: make(map[int64]entity.Category),
		products:   make(map[int64]entity.Product),
	}
}

func (d *data) clone() *data {
	c := newData()
	c.seq = d.seq
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.catalogs {
		c.catalogs[k] = v
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.products {
		c.products[k] = v
	}
	return c
}

func (d *data) nextID() int64 {
	d.seq++
	return d.seq
}

// Store base de datos en memoria.
type Store struct {
	mu   sync.Mutex
	db   *data
	fail error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{db: newData()}
}

// FailWith hace que cada Run siguiente devuelva err sin ejecutar fn (nil lo desactiva).
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}

// Run ejecuta fn con repositorios sobre una copia del estado; la copia se confirma solo si fn devuelve nil.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return s.fail
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.db.clone()
	if err := fn(repositoriesFor(work)); err != nil {
		return err
	}
	s.db = work
	return nil
}

// Repositories devuelve repositorios sin transacción sobre el estado actual.
// No toma el lock: usar solo para preparar o inspeccionar datos fuera de Run.
func (s *Store) Repositories() repository.Repositories {
	return repositoriesFor(s.db)
}

func repositoriesFor(d *data) repository.Repositories {
	return repository.Repositories{
		Users:      &userRepo{d: d},
		Catalogs:   &catalogRepo{d: d},
		Categories: &categoryRepo{d: d},
		Products:   &productRepo{d: d},
	}
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// page aplica el filtro de dueño ya resuelto y la paginación por offset.
func page[T any](items []T, filter repository.ListFilter) []T {
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if filter.Limit > 0 && filter.Limit < len(items) {
		items = items[:filter.Limit]
	}
	return items
}

func ownerMatches(filter repository.ListFilter, ownerID int64) bool {
	return filter.OwnerID == 0 || filter.OwnerID == ownerID
}
