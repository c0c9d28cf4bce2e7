package memstore

import (
	"context"

	"github.com/jhoicas/bazar-api/internal/domain"
	"github.com/jhoicas/bazar-api/internal/domain/entity"
	"github.com/jhoicas/bazar-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*userRepo)(nil)
	_ repository.CatalogRepository  = (*catalogRepo)(nil)
	_ repository.CategoryRepository = (*categoryRepo)(nil)
	_ repository.ProductRepository  = (*productRepo)(nil)
)

type userRepo struct{ d *data }

func (r *userRepo) conflicts(u *entity.User) bool {
	for id, other := range r.d.users {
		if id == u.ID {
			continue
		}
		if other.Username == u.Username || other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	if r.conflicts(user) {
		return domain.ErrUserAlreadyExists
	}
	user.ID = r.d.nextID()
	r.d.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.d.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByIdentifier(_ context.Context, identifier string) (*entity.User, error) {
	for _, id := range sortedIDs(r.d.users) {
		u := r.d.users[id]
		if u.Email == identifier || u.Username == identifier {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.d.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) List(_ context.Context, filter repository.ListFilter) ([]*entity.User, error) {
	var list []*entity.User
	for _, id := range sortedIDs(r.d.users) {
		u := r.d.users[id]
		list = append(list, &u)
	}
	return page(list, filter), nil
}

func (r *userRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.d.users[user.ID]; !ok {
		return nil
	}
	if r.conflicts(user) {
		return domain.ErrUserAlreadyExists
	}
	current := r.d.users[user.ID]
	user.CreatedAt = current.CreatedAt
	r.d.users[user.ID] = *user
	return nil
}

func (r *userRepo) Delete(_ context.Context, id int64) (bool, error) {
	if _, ok := r.d.users[id]; !ok {
		return false, nil
	}
	delete(r.d.users, id)
	for pid, p := range r.d.products {
		if p.OwnerID == id {
			delete(r.d.products, pid)
		}
	}
	for cid, c := range r.d.catalogs {
		if c.OwnerID == id {
			delete(r.d.catalogs, cid)
		}
	}
	for cid, c := range r.d.categories {
		if c.OwnerID == id {
			delete(r.d.categories, cid)
		}
	}
	return true, nil
}

type catalogRepo struct{ d *data }

func (r *catalogRepo) Create(_ context.Context, catalog *entity.Catalog) error {
	if _, ok := r.d.users[catalog.OwnerID]; !ok {
		return domain.ErrInvalidReference
	}
	catalog.ID = r.d.nextID()
	r.d.catalogs[catalog.ID] = *catalog
	return nil
}

func (r *catalogRepo) GetOwned(_ context.Context, id, ownerID int64) (*entity.Catalog, error) {
	c, ok := r.d.catalogs[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return &c, nil
}

func (r *catalogRepo) List(_ context.Context, filter repository.ListFilter) ([]*entity.Catalog, error) {
	var list []*entity.Catalog
	for _, id := range sortedIDs(r.d.catalogs) {
		c := r.d.catalogs[id]
		if ownerMatches(filter, c.OwnerID) {
			list = append(list, &c)
		}
	}
	return page(list, filter), nil
}

func (r *catalogRepo) Update(_ context.Context, catalog *entity.Catalog) error {
	current, ok := r.d.catalogs[catalog.ID]
	if !ok || current.OwnerID != catalog.OwnerID {
		return nil
	}
	current.Name = catalog.Name
	current.Description = catalog.Description
	current.UpdatedAt = catalog.UpdatedAt
	r.d.catalogs[catalog.ID] = current
	return nil
}

func (r *catalogRepo) Delete(_ context.Context, id, ownerID int64) (bool, error) {
	c, ok := r.d.catalogs[id]
	if !ok || c.OwnerID != ownerID {
		return false, nil
	}
	delete(r.d.catalogs, id)
	for pid, p := range r.d.products {
		if p.CatalogID == id {
			delete(r.d.products, pid)
		}
	}
	return true, nil
}

type categoryRepo struct{ d *data }

func (r *categoryRepo) Create(_ context.Context, category *entity.Category) error {
	if _, ok := r.d.users[category.OwnerID]; !ok {
		return domain.ErrInvalidReference
	}
	category.ID = r.d.nextID()
	r.d.categories[category.ID] = *category
	return nil
}

func (r *categoryRepo) GetOwned(_ context.Context, id, ownerID int64) (*entity.Category, error) {
	c, ok := r.d.categories[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	return &c, nil
}

func (r *categoryRepo) List(_ context.Context, filter repository.ListFilter) ([]*entity.Category, error) {
	var list []*entity.Category
	for _, id := range sortedIDs(r.d.categories) {
		c := r.d.categories[id]
		if ownerMatches(filter, c.OwnerID) {
			list = append(list, &c)
		}
	}
	return page(list, filter), nil
}

func (r *categoryRepo) Update(_ context.Context, category *entity.Category) error {
	current, ok := r.d.categories[category.ID]
	if !ok || current.OwnerID != category.OwnerID {
		return nil
	}
	current.Name = category.Name
	current.UpdatedAt = category.UpdatedAt
	r.d.categories[category.ID] = current
	return nil
}

func (r *categoryRepo) Delete(_ context.Context, id, ownerID int64) (bool, error) {
	c, ok := r.d.categories[id]
	if !ok || c.OwnerID != ownerID {
		return false, nil
	}
	delete(r.d.categories, id)
	for pid, p := range r.d.products {
		if p.CategoryID == id {
			delete(r.d.products, pid)
		}
	}
	return true, nil
}

type productRepo struct{ d *data }

// references verifica las llaves foráneas de products (sin exigir mismo dueño, como PostgreSQL).
func (r *productRepo) references(p *entity.Product) bool {
	_, owner := r.d.users[p.OwnerID]
	_, catalog := r.d.catalogs[p.CatalogID]
	_, category := r.d.categories[p.CategoryID]
	return owner && catalog && category
}

func (r *productRepo) Create(_ context.Context, product *entity.Product) error {
	if !r.references(product) {
		return domain.ErrInvalidReference
	}
	product.ID = r.d.nextID()
	r.d.products[product.ID] = *product
	return nil
}

func (r *productRepo) GetOwned(_ context.Context, id, ownerID int64) (*entity.Product, error) {
	p, ok := r.d.products[id]
	if !ok || p.OwnerID != ownerID {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) List(_ context.Context, filter repository.ListFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, id := range sortedIDs(r.d.products) {
		p := r.d.products[id]
		if ownerMatches(filter, p.OwnerID) {
			list = append(list, &p)
		}
	}
	return page(list, filter), nil
}

func (r *productRepo) Update(_ context.Context, product *entity.Product) error {
	current, ok := r.d.products[product.ID]
	if !ok || current.OwnerID != product.OwnerID {
		return nil
	}
	if !r.references(product) {
		return domain.ErrInvalidReference
	}
	product.CreatedAt = current.CreatedAt
	r.d.products[product.ID] = *product
	return nil
}

func (r *productRepo) Delete(_ context.Context, id, ownerID int64) (bool, error) {
	p, ok := r.d.products[id]
	if !ok || p.OwnerID != ownerID {
		return false, nil
	}
	delete(r.d.products, id)
	return true, nil
}
