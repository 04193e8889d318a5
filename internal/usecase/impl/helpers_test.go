package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// discardLogger silences service logging in tests.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHasher() service.PasswordHasher {
	return auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})
}

func testTokenService() service.TokenService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	svc, err := auth.NewJWTService(cfg)
	if err != nil {
		panic(err)
	}

	return svc
}

// --- In-memory repository fakes ---

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user

	return &clone, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			clone := *user

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = uuid.New()
	user.RegisteredAt = time.Now()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	clone := *stored

	return &clone, nil
}

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[uuid.UUID]*entity.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[uuid.UUID]*entity.Admin)}
}

func (r *memAdminRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	clone := *admin

	return &clone, nil
}

func (r *memAdminRepo) FindByUsername(_ context.Context, username string) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, admin := range r.admins {
		if admin.Username == username {
			clone := *admin

			return &clone, nil
		}
	}

	return nil, repository.ErrAdminNotFound
}

func (r *memAdminRepo) Create(_ context.Context, admin *entity.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	admin.ID = uuid.New()
	admin.RegisteredAt = time.Now()
	clone := *admin
	r.admins[admin.ID] = &clone

	return nil
}

func (r *memAdminRepo) Update(_ context.Context, admin *entity.Admin) (*entity.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.admins[admin.ID]
	if !ok {
		return nil, repository.ErrAdminNotFound
	}
	stored.Username = admin.Username
	stored.PasswordHash = admin.PasswordHash
	clone := *stored

	return &clone, nil
}

func (r *memAdminRepo) StampLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.admins[id]
	if !ok {
		return repository.ErrAdminNotFound
	}
	stored.LastLoginAt = &at

	return nil
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	clone := *product

	return &clone, nil
}

func (r *memProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		products = append(products, &clone)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	return products, nil
}

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	clone := *product
	r.products[product.ID] = &clone

	return nil
}

func (r *memProductRepo) Update(_ context.Context, product *entity.Product) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	created := stored.CreatedAt
	clone := *product
	clone.CreatedAt = created
	clone.UpdatedAt = time.Now()
	r.products[product.ID] = &clone
	result := clone

	return &result, nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

func (r *memProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	stored.Stock += delta
	stored.UpdatedAt = time.Now()
	clone := *stored

	return &clone, nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*entity.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func cloneOrder(order *entity.Order) *entity.Order {
	clone := *order
	clone.Lines = append([]entity.OrderLine(nil), order.Lines...)

	return &clone
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}

	return cloneOrder(order), nil
}

func (r *memOrderRepo) List(_ context.Context) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, cloneOrder(order))
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderedAt.After(orders[j].OrderedAt)
	})

	return orders, nil
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders := make([]*entity.Order, 0)
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			orders = append(orders, cloneOrder(order))
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].OrderedAt.After(orders[j].OrderedAt)
	})

	return orders, nil
}

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = uuid.New()
	order.OrderedAt = time.Now()
	r.orders[order.ID] = cloneOrder(order)

	return nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	stored.Status = status
	if status == entity.OrderStatusCompleted {
		now := time.Now()
		stored.CompletedAt = &now
	}

	return cloneOrder(stored), nil
}

type memStockRepo struct {
	mu      sync.Mutex
	entries []*entity.StockEntry
}

func newMemStockRepo() *memStockRepo {
	return &memStockRepo{}
}

func (r *memStockRepo) Append(_ context.Context, entry *entity.StockEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.New()
	entry.RecordedAt = time.Now()
	clone := *entry
	r.entries = append(r.entries, &clone)

	return nil
}

func (r *memStockRepo) List(_ context.Context) ([]*entity.StockEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*entity.StockEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		clone := *r.entries[i]
		entries = append(entries, &clone)
	}

	return entries, nil
}

// --- Transaction manager fake ---

// memFactory hands out the shared in-memory repositories; there is no real
// transaction to bind to.
type memFactory struct {
	userRepo    *memUserRepo
	adminRepo   *memAdminRepo
	productRepo *memProductRepo
	orderRepo   *memOrderRepo
	stockRepo   *memStockRepo
}

func (f *memFactory) NewUserRepository() repository.UserRepository { return f.userRepo }

func (f *memFactory) NewAdminRepository() repository.AdminRepository { return f.adminRepo }

func (f *memFactory) NewProductRepository() repository.ProductRepository { return f.productRepo }

func (f *memFactory) NewOrderRepository() repository.OrderRepository { return f.orderRepo }

func (f *memFactory) NewStockEntryRepository() repository.StockEntryRepository { return f.stockRepo }

type memTxManager struct {
	factory *memFactory
}

func (tm *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm.factory)
}

// testEnv bundles the fakes one service test needs.
type testEnv struct {
	userRepo    *memUserRepo
	adminRepo   *memAdminRepo
	productRepo *memProductRepo
	orderRepo   *memOrderRepo
	stockRepo   *memStockRepo
	txManager   repository.TransactionManager
}

func newTestEnv() *testEnv {
	factory := &memFactory{
		userRepo:    newMemUserRepo(),
		adminRepo:   newMemAdminRepo(),
		productRepo: newMemProductRepo(),
		orderRepo:   newMemOrderRepo(),
		stockRepo:   newMemStockRepo(),
	}

	return &testEnv{
		userRepo:    factory.userRepo,
		adminRepo:   factory.adminRepo,
		productRepo: factory.productRepo,
		orderRepo:   factory.orderRepo,
		stockRepo:   factory.stockRepo,
		txManager:   &memTxManager{factory: factory},
	}
}
