package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/payment"
	"github.com/maisdocacau/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret-key"

type fakeGateway struct {
	mu      sync.Mutex
	err     error
	calls   []payment.ChargeInput
	started chan struct{}
	release chan struct{}
}

func (g *fakeGateway) Charge(ctx context.Context, input payment.ChargeInput) (*payment.ChargeResult, error) {
	g.mu.Lock()
	g.calls = append(g.calls, input)
	err := g.err
	started, release := g.started, g.release
	g.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, payment.ErrChargeTimeout
		}
	}
	if err != nil {
		return nil, err
	}
	return &payment.ChargeResult{Reference: "ref-" + input.OrderNo, Method: input.Method, Amount: input.Amount}, nil
}

func (g *fakeGateway) setErr(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fakeEnqueuer struct {
	mu        sync.Mutex
	confirmed []string
	expiring  []string
}

func (e *fakeEnqueuer) EnqueueOrderConfirmed(orderNo string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirmed = append(e.confirmed, orderNo)
	return nil
}

func (e *fakeEnqueuer) EnqueueOrderPaymentExpire(orderNo string, _ time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.expiring = append(e.expiring, orderNo)
	return nil
}

type serviceFixture struct {
	db          *gorm.DB
	store       *cache.MemoryStore
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	catalog     *CatalogService
	age         *AgeVerificationService
	carts       *CartService
	zones       *DeliveryZoneService
	orders      *OrderService
	profiles    *UserProfileService
	gateway     *fakeGateway
	tasks       *fakeEnqueuer
	checkout    *CheckoutService
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	db := openServiceTestDB(t)
	_, err := models.SeedCatalog(db, models.DefaultProducts())
	require.NoError(t, err)

	f := &serviceFixture{
		db:          db,
		store:       cache.NewMemoryStore(),
		productRepo: repository.NewProductRepository(db),
		orderRepo:   repository.NewOrderRepository(db),
		gateway:     &fakeGateway{},
		tasks:       &fakeEnqueuer{},
	}
	locks := NewSessionLocks()
	f.catalog = NewCatalogService(f.productRepo, 0)
	f.age = NewAgeVerificationService(f.store, "age_check", time.Hour)
	f.carts = NewCartService(f.store, f.catalog, f.age, locks, time.Hour)
	f.zones = NewDeliveryZoneService(nil)
	f.orders = NewOrderService(f.orderRepo, f.productRepo)
	f.profiles = NewUserProfileService(repository.NewUserProfileRepository(db), "User_", 6)
	f.checkout = NewCheckoutService(f.store, f.carts, f.zones, f.orders, f.gateway, f.tasks, f.profiles, locks, CheckoutOptions{
		SessionTTL:     30 * time.Minute,
		StateTTL:       time.Hour,
		PaymentTimeout: 2 * time.Second,
	})
	return f
}

func (f *serviceFixture) verifyAge(t *testing.T, sessionID string) {
	t.Helper()
	require.NoError(t, f.age.Verify(context.Background(), AgeVerificationInput{
		SessionID: sessionID,
		Action:    "age_check",
		Payload:   json.RawMessage(verifySuccessPayload),
	}))
}

func newWalletAuthForTest(t *testing.T, f *serviceFixture) *WalletAuthService {
	t.Helper()
	return NewWalletAuthService(f.store, f.profiles, config.WalletAuthConfig{}, config.JWTConfig{SecretKey: testJWTSecret, ExpireHours: 24})
}

const verifySuccessPayload = `{"status":"success","proof":"0xproof","merkle_root":"0xroot","nullifier_hash":"0xnullifier","verification_level":"orb","version":1}`

func validAddress(neighborhood string) models.DeliveryAddress {
	return models.DeliveryAddress{
		FullName:     "Ana Souza",
		Street:       "Rua Augusta",
		Number:       "100",
		Neighborhood: neighborhood,
		City:         "São Paulo",
		State:        "SP",
		ZipCode:      "01305-000",
		Phone:        "+55 11 99999-0000",
	}
}

func testProduct(id, price string) models.Product {
	return models.Product{ID: id, Name: id, Price: models.MustMoney(price), Stock: models.StockUnlimited, IsActive: true}
}

func orderFilterByStatus(status string) repository.OrderListFilter {
	return repository.OrderListFilter{Status: status}
}
