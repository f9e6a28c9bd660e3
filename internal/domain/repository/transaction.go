package repository

import "context"

// TransactionManager runs multi-step operations atomically. fn's error, or a
// panic inside it, rolls back every write made through the factory.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory returns repositories bound to the running transaction.
type RepositoryFactory interface {
	NewProductRepository() ProductRepository
	NewVendorRepository() VendorRepository
	NewCartRepository() CartRepository
	NewOrderRepository() OrderRepository
	NewAuditRepository() AuditRepository
}
