package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/config"
	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/payment/simulated"
	"github.com/maisdocacau/storefront/internal/provider"
	"github.com/maisdocacau/storefront/internal/queue"
	"github.com/maisdocacau/storefront/internal/repository"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSessionID   = "8c1f0f44-9a55-4c3e-9d7b-2b2f3b0f1a10"
	ageCheckPayload = `{"status":"success","proof":"0xproof","merkle_root":"0xroot","nullifier_hash":"0xnull","verification_level":"orb","version":1}`
)

func newTestContainer(t *testing.T) *provider.Container {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:public_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	_, err = models.SeedCatalog(db, models.DefaultProducts())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	queueClient, err := queue.NewClient(nil)
	require.NoError(t, err)
	c := &provider.Container{
		Config:          &config.Config{},
		QueueClient:     queueClient,
		SessionStore:    cache.NewMemoryStore(),
		SessionLocks:    service.NewSessionLocks(),
		ProductRepo:     repository.NewProductRepository(db),
		OrderRepo:       repository.NewOrderRepository(db),
		UserProfileRepo: repository.NewUserProfileRepository(db),
	}
	c.CatalogService = service.NewCatalogService(c.ProductRepo, 0)
	c.AgeService = service.NewAgeVerificationService(c.SessionStore, "age_check", time.Hour)
	c.CartService = service.NewCartService(c.SessionStore, c.CatalogService, c.AgeService, c.SessionLocks, time.Hour)
	c.DeliveryZoneService = service.NewDeliveryZoneService(nil)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo)
	c.UserProfileService = service.NewUserProfileService(c.UserProfileRepo, "User_", 6)
	c.CheckoutService = service.NewCheckoutService(c.SessionStore, c.CartService, c.DeliveryZoneService, c.OrderService,
		simulated.New(simulated.Config{}), c.QueueClient, c.UserProfileService, c.SessionLocks,
		service.CheckoutOptions{SessionTTL: 30 * time.Minute, StateTTL: time.Hour, PaymentTimeout: 2 * time.Second})
	c.WalletAuthService = service.NewWalletAuthService(c.SessionStore, c.UserProfileService, config.WalletAuthConfig{}, config.JWTConfig{SecretKey: "public-test-secret"})
	return c
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(handlershared.ContextKeySessionID, c.GetHeader("X-Session-ID"))
		if raw := c.GetHeader("X-Test-User"); raw != "" {
			var id uint
			_, _ = fmt.Sscanf(raw, "%d", &id)
			c.Set(handlershared.ContextKeyUserID, id)
		}
		c.Next()
	})
	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/delivery/lookup", h.LookupNeighborhood)
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.PATCH("/cart/items/:product_id", h.UpdateCartItem)
	r.DELETE("/cart", h.ClearCart)
	r.POST("/age-verification", h.VerifyAge)
	r.POST("/checkout", h.BeginCheckout)
	r.POST("/checkout/address", h.SubmitCheckoutAddress)
	r.POST("/checkout/payment", h.SubmitCheckoutPayment)
	r.GET("/checkout/payment-methods", h.GetPaymentMethods)
	r.GET("/account/orders", h.ListMyOrders)
	return r
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, target string, body interface{}, headers ...string) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", testSessionID)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func moemaAddress() map[string]string {
	return map[string]string{
		"full_name":    "Ana Souza",
		"street":       "Av. Ibirapuera",
		"number":       "2000",
		"neighborhood": "moema",
		"city":         "São Paulo",
		"state":        "SP",
		"zip_code":     "04029-000",
		"phone":        "+55 11 98888-0000",
	}
}

func TestListProductsByCategory(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodGet, "/products?category=snack", nil)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var products []ProductView
	require.NoError(t, json.Unmarshal(env.Data, &products))
	assert.Len(t, products, 3)
	for _, p := range products {
		assert.Equal(t, "snack", p.Category)
		assert.True(t, strings.HasPrefix(p.PriceFormatted, "R$ "))
	}

	env = doJSON(t, r, http.MethodGet, "/products?category=cosmetics", nil)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)

	env = doJSON(t, r, http.MethodGet, "/products/nao-existe", nil)
	assert.Equal(t, response.CodeNotFound, env.StatusCode)
}

func TestLookupNeighborhood(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodGet, "/delivery/lookup?neighborhood=Pinheiros", nil)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, true, data["serviceable"])
	assert.Equal(t, "14.90", data["fee"])
	assert.Equal(t, "Zona Oeste", data["zone"])

	env = doJSON(t, r, http.MethodGet, "/delivery/lookup?neighborhood=Atlantis", nil)
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, false, data["serviceable"])
	assert.Equal(t, "0.00", data["fee"])

	env = doJSON(t, r, http.MethodGet, "/delivery/lookup", nil)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
}

func TestAlcoholRequiresAgeVerification(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": "cauchaca-original", "quantity": 1}, "Accept-Language", "en-US")
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
	assert.Equal(t, "Verify your age to buy alcoholic products", env.Msg)

	env = doJSON(t, r, http.MethodPost, "/age-verification", gin.H{"action": "age_check", "payload": json.RawMessage(ageCheckPayload)})
	require.Equal(t, response.CodeOK, env.StatusCode)

	env = doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": "cauchaca-original", "quantity": 1})
	assert.Equal(t, response.CodeOK, env.StatusCode)
}

func TestCartUpdateBelowOneRemoves(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": "nibs-de-cacau"})
	require.Equal(t, response.CodeOK, env.StatusCode)
	var cart service.CartView
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Equal(t, 1, cart.TotalItemCount)

	env = doJSON(t, r, http.MethodPatch, "/cart/items/nibs-de-cacau", gin.H{"quantity": 0})
	require.Equal(t, response.CodeOK, env.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Zero(t, cart.TotalItemCount)
	assert.Empty(t, cart.Items)

	env = doJSON(t, r, http.MethodPatch, "/cart/items/nibs-de-cacau", gin.H{})
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
}

func TestCheckoutEmptyCartRedirects(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodPost, "/checkout", nil)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, cartRedirectPath, data["redirect"])
}

func TestCheckoutFullFlow(t *testing.T) {
	c := newTestContainer(t)
	r := newTestRouter(New(c))

	doJSON(t, r, http.MethodPost, "/age-verification", gin.H{"action": "age_check", "payload": json.RawMessage(ageCheckPayload)})
	env := doJSON(t, r, http.MethodPost, "/cart/items", gin.H{"product_id": "cauchaca-original", "quantity": 2})
	require.Equal(t, response.CodeOK, env.StatusCode)

	env = doJSON(t, r, http.MethodPost, "/checkout", nil)
	require.Equal(t, response.CodeOK, env.StatusCode)

	bad := moemaAddress()
	bad["neighborhood"] = "Copacabana"
	env = doJSON(t, r, http.MethodPost, "/checkout/address", bad, "Accept-Language", "en-US")
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
	assert.Equal(t, "We do not deliver to Copacabana yet", env.Msg)

	missing := moemaAddress()
	delete(missing, "street")
	env = doJSON(t, r, http.MethodPost, "/checkout/address", missing)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
	var fields map[string][]string
	require.NoError(t, json.Unmarshal(env.Data, &fields))
	assert.NotEmpty(t, fields["missing_fields"])

	env = doJSON(t, r, http.MethodPost, "/checkout/address", moemaAddress())
	require.Equal(t, response.CodeOK, env.StatusCode)
	var view service.CheckoutView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "payment", view.Step)
	assert.Equal(t, "136.70", view.Total.String())
	assert.Equal(t, "R$ 136.70", view.TotalFormatted)

	env = doJSON(t, r, http.MethodPost, "/checkout/payment", gin.H{"method": "crypto"})
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)

	env = doJSON(t, r, http.MethodPost, "/checkout/payment", gin.H{"method": "pix"})
	require.Equal(t, response.CodeOK, env.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "confirmation", view.Step)
	assert.True(t, strings.HasPrefix(view.OrderNo, "MDC"))

	env = doJSON(t, r, http.MethodGet, "/cart", nil)
	var cart service.CartView
	require.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Zero(t, cart.TotalItemCount)

	order, err := c.OrderRepo.GetByOrderNo(view.OrderNo)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "paid", order.Status)
}

func TestPaymentMethods(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodGet, "/checkout/payment-methods", nil)
	var methods []string
	require.NoError(t, json.Unmarshal(env.Data, &methods))
	assert.Equal(t, []string{"pix", "credit"}, methods)

	env = doJSON(t, r, http.MethodGet, "/checkout/payment-methods?wallet_installed=true", nil)
	require.NoError(t, json.Unmarshal(env.Data, &methods))
	assert.Equal(t, []string{"pix", "credit", "crypto"}, methods)
}

func TestAccountRequiresUser(t *testing.T) {
	r := newTestRouter(New(newTestContainer(t)))

	env := doJSON(t, r, http.MethodGet, "/account/orders", nil)
	assert.Equal(t, response.CodeUnauthorized, env.StatusCode)

	env = doJSON(t, r, http.MethodGet, "/account/orders", nil, "X-Test-User", "42")
	assert.Equal(t, response.CodeOK, env.StatusCode)
}
