package repository

// Repositories agrupa los repositorios atados a una misma transacción.
type Repositories struct {
	Users      UserRepository
	Catalogs   CatalogRepository
	Categories CategoryRepository
	Products   ProductRepository
}
