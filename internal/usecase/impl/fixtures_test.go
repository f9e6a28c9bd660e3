package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"marketplace/config"
	"marketplace/internal/domain/entity"
	"marketplace/internal/domain/repository"
	"marketplace/internal/domain/service"
	"marketplace/internal/infra/ordernumber"
	"marketplace/internal/infra/persistence/model"
	"marketplace/internal/infra/persistence/postgres"
	"marketplace/internal/testutil/dbtest"
	"marketplace/internal/usecase"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// serviceFixtures wires the real services to an in-memory database.
type serviceFixtures struct {
	db      *gorm.DB
	cart    usecase.CartUsecase
	orders  usecase.OrderUsecase
	vendors usecase.VendorUsecase
	catalog usecase.CatalogUsecase
	reports usecase.ReportUsecase
}

type fixtureOptions struct {
	numbers   service.OrderNumberGenerator
	publisher service.EventPublisher
	retries   int
	wrapTx    func(repository.TransactionManager) repository.TransactionManager
}

type fixtureOption func(*fixtureOptions)

func withNumbers(numbers service.OrderNumberGenerator) fixtureOption {
	return func(o *fixtureOptions) { o.numbers = numbers }
}

func withPublisher(publisher service.EventPublisher) fixtureOption {
	return func(o *fixtureOptions) { o.publisher = publisher }
}

func withNumberRetries(retries int) fixtureOption {
	return func(o *fixtureOptions) { o.retries = retries }
}

func withTxManager(wrap func(repository.TransactionManager) repository.TransactionManager) fixtureOption {
	return func(o *fixtureOptions) { o.wrapTx = wrap }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestServices(t *testing.T, opts ...fixtureOption) serviceFixtures {
	t.Helper()

	o := fixtureOptions{numbers: ordernumber.NewGenerator(), retries: 5}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := &config.Config{
		Commission: config.DefaultCommission(),
		Order:      &config.OrderConfig{DeliveryFee: 500, NumberRetries: o.retries},
	}

	db := dbtest.New(t)
	logger := discardLogger()
	txManager := postgres.NewTransactionManager(db)
	if o.wrapTx != nil {
		txManager = o.wrapTx(txManager)
	}
	vendorRepo := postgres.NewVendorRepository(db)

	return serviceFixtures{
		db: db,
		cart: NewCartService(CartServiceParams{
			TxManager: txManager,
			CartRepo:  postgres.NewCartRepository(db),
			Logger:    logger,
		}),
		orders: NewOrderService(OrderServiceParams{
			TxManager:  txManager,
			OrderRepo:  postgres.NewOrderRepository(db),
			VendorRepo: vendorRepo,
			Numbers:    o.numbers,
			Publisher:  o.publisher,
			Config:     cfg,
			Logger:     logger,
		}),
		vendors: NewVendorService(VendorServiceParams{
			TxManager:  txManager,
			VendorRepo: vendorRepo,
			Publisher:  o.publisher,
			Config:     cfg,
			Logger:     logger,
		}),
		catalog: NewCatalogService(CatalogServiceParams{
			TxManager:   txManager,
			ProductRepo: postgres.NewProductRepository(db),
			VendorRepo:  vendorRepo,
			Logger:      logger,
		}),
		reports: NewReportService(ReportServiceParams{
			ReportRepo: postgres.NewReportRepository(db),
			VendorRepo: vendorRepo,
			AuditRepo:  postgres.NewAuditRepository(db),
		}),
	}
}

// sequenceNumbers hands out fixed order numbers, repeating the last one.
type sequenceNumbers struct {
	mu      sync.Mutex
	numbers []string
	calls   int
}

func (s *sequenceNumbers) Next(time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := min(s.calls, len(s.numbers)-1)
	s.calls++

	return s.numbers[i]
}

func customerIdentity() entity.Identity {
	return entity.NewIdentity(uuid.New(), entity.RoleCustomer)
}

func adminIdentity() entity.Identity {
	return entity.NewIdentity(uuid.New(), entity.RoleAdmin)
}

func vendorIdentity(vendor *model.VendorModel) entity.Identity {
	return entity.NewIdentity(vendor.UserID, entity.RoleVendor)
}

// hookedTxManager hands fn a factory whose product repository is replaced.
type hookedTxManager struct {
	repository.TransactionManager
	products func(repository.ProductRepository) repository.ProductRepository
}

func (m hookedTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.TransactionManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return fn(hookedFactory{RepositoryFactory: repoFactory, products: m.products})
	})
}

type hookedFactory struct {
	repository.RepositoryFactory
	products func(repository.ProductRepository) repository.ProductRepository
}

func (f hookedFactory) NewProductRepository() repository.ProductRepository {
	return f.products(f.RepositoryFactory.NewProductRepository())
}

// competingSaleProducts sells units of a product to someone else right
// before each conditional decrement, after checkout has read the catalog.
type competingSaleProducts struct {
	repository.ProductRepository
	sold int
}

func (r *competingSaleProducts) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) (bool, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if err := r.SetStock(ctx, id, max(current.Stock-r.sold, 0)); err != nil {
		return false, err
	}

	return r.ProductRepository.DecrementStock(ctx, id, quantity)
}

// interleavedVendorRepo runs between once, after the caller's vendor lookup
// and before the service acts on it.
type interleavedVendorRepo struct {
	repository.VendorRepository
	between func()
}

func (r *interleavedVendorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Vendor, error) {
	vendor, err := r.VendorRepository.FindByUserID(ctx, userID)
	if r.between != nil {
		r.between()
		r.between = nil
	}

	return vendor, err
}
