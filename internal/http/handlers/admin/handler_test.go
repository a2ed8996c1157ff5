package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/config"
	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/provider"
	"github.com/maisdocacau/storefront/internal/repository"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type adminFixture struct {
	container *provider.Container
	super     *models.Admin
	staff     *models.Admin
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:admin_%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	_, err = models.SeedCatalog(db, models.DefaultProducts())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	hash, err := service.HashPassword("cacau-forte")
	require.NoError(t, err)
	super := &models.Admin{Username: "gerente", PasswordHash: hash, IsSuper: true}
	staff := &models.Admin{Username: "estoque", PasswordHash: hash}
	require.NoError(t, db.Create(super).Error)
	require.NoError(t, db.Create(staff).Error)

	authzSvc, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, authzSvc.BootstrapBuiltinRoles())

	c := &provider.Container{
		Config:            &config.Config{},
		AdminRepo:         repository.NewAdminRepository(db),
		ProductRepo:       repository.NewProductRepository(db),
		OrderRepo:         repository.NewOrderRepository(db),
		AuthzAuditLogRepo: repository.NewAuthzAuditLogRepository(db),
		AuthzService:      authzSvc,
	}
	c.CaptchaService = service.NewCaptchaService(config.CaptchaConfig{})
	c.AdminAuthService = service.NewAdminAuthService(config.JWTConfig{SecretKey: "admin-test-secret", ExpireHours: 1}, c.AdminRepo, c.CaptchaService)
	c.AuthzAdminService = service.NewAuthzAdminService(authzSvc, c.AdminRepo, c.AuthzAuditLogRepo)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, 0)
	c.ProductAdminService = service.NewProductAdminService(c.ProductRepo, c.CatalogService)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo)
	return &adminFixture{container: c, super: super, staff: staff}
}

func newAdminTestRouter(h *Handler, admin *models.Admin) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/captcha", h.GetCaptcha)
	r.POST("/login", h.AdminLogin)

	authed := r.Group("")
	authed.Use(func(c *gin.Context) {
		c.Set(handlershared.ContextKeyAdminID, admin.ID)
		c.Set(handlershared.ContextKeyAdminUsername, admin.Username)
		c.Set(handlershared.ContextKeyRequestID, "req-admin-test")
		c.Next()
	})
	authed.GET("/me", h.GetAdminMe)
	authed.GET("/products", h.ListProducts)
	authed.GET("/products/:id", h.GetProduct)
	authed.POST("/products", h.CreateProduct)
	authed.PUT("/products/:id", h.UpdateProduct)
	authed.PATCH("/products/:id/stock", h.UpdateProductStock)
	authed.PATCH("/products/:id/active", h.SetProductActive)
	authed.GET("/orders", h.ListOrders)
	authed.PATCH("/orders/:order_no/status", h.UpdateOrderStatus)
	authed.GET("/authz/roles", h.ListAuthzRoles)
	authed.GET("/authz/admins/:id/roles", h.GetAdminRoles)
	authed.PUT("/authz/admins/:id/roles", h.SetAdminRoles)
	authed.GET("/authz/audit-logs", h.ListAuthzAuditLogs)
	return r
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, target string, body interface{}) envelope {
	t.Helper()
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestAdminLogin(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	env := doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": "gerente", "password": "cacau-forte"})
	require.Equal(t, response.CodeOK, env.StatusCode)
	var login LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "gerente", login.User["username"])

	claims, err := f.container.AdminAuthService.ParseJWT(login.Token)
	require.NoError(t, err)
	assert.Equal(t, f.super.ID, claims.AdminID)

	env = doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": "gerente", "password": "errada"})
	assert.Equal(t, response.CodeUnauthorized, env.StatusCode)

	env = doJSON(t, r, http.MethodPost, "/login", map[string]string{"username": "gerente"})
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
}

func TestAdminCaptchaDisabled(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	env := doJSON(t, r, http.MethodGet, "/captcha", nil)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
}

func TestAdminMe(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	env := doJSON(t, r, http.MethodGet, "/me", nil)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var me struct {
		Username string   `json:"username"`
		IsSuper  bool     `json:"is_super"`
		Roles    []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "gerente", me.Username)
	assert.True(t, me.IsSuper)
	assert.Empty(t, me.Roles)
}

func TestAdminProductUpsertAndStock(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	body := map[string]interface{}{
		"id":       "barra-cacau-70",
		"name":     "Barra 70% Cacau",
		"price":    "24.50",
		"category": "chocolate",
		"stock":    10,
	}
	env := doJSON(t, r, http.MethodPost, "/products", body)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var upserted struct {
		Product models.Product `json:"product"`
		Created bool           `json:"created"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &upserted))
	assert.True(t, upserted.Created)
	assert.Equal(t, "24.50", upserted.Product.Price.String())

	body["price"] = "26.00"
	env = doJSON(t, r, http.MethodPut, "/products/barra-cacau-70", body)
	require.Equal(t, response.CodeOK, env.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &upserted))
	assert.False(t, upserted.Created)
	assert.Equal(t, "26.00", upserted.Product.Price.String())

	env = doJSON(t, r, http.MethodPatch, "/products/barra-cacau-70/stock", map[string]int{"stock": 3})
	require.Equal(t, response.CodeOK, env.StatusCode)

	env = doJSON(t, r, http.MethodPatch, "/products/barra-cacau-70/active", map[string]bool{"is_active": false})
	require.Equal(t, response.CodeOK, env.StatusCode)

	product, err := f.container.ProductRepo.GetByID("barra-cacau-70")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, 3, product.Stock)
	assert.False(t, product.IsActive)

	env = doJSON(t, r, http.MethodGet, "/products/barra-cacau-70", nil)
	assert.Equal(t, response.CodeOK, env.StatusCode)
}

func TestAdminProductErrors(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	cases := []struct {
		name   string
		method string
		target string
		body   interface{}
		code   int
	}{
		{"bad category", http.MethodPost, "/products", map[string]string{"id": "x-1", "name": "X", "price": "1.00", "category": "wine"}, response.CodeBadRequest},
		{"bad price", http.MethodPost, "/products", map[string]string{"id": "x-1", "name": "X", "price": "abc", "category": "tea"}, response.CodeBadRequest},
		{"missing stock", http.MethodPatch, "/products/cauchaca-original/stock", map[string]int{}, response.CodeBadRequest},
		{"stock below unlimited", http.MethodPatch, "/products/cauchaca-original/stock", map[string]int{"stock": -2}, response.CodeBadRequest},
		{"unknown product", http.MethodPatch, "/products/ghost/active", map[string]bool{"is_active": true}, response.CodeNotFound},
		{"unknown detail", http.MethodGet, "/products/ghost", nil, response.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := doJSON(t, r, tc.method, tc.target, tc.body)
			assert.Equal(t, tc.code, env.StatusCode)
		})
	}
}

func TestAdminListProductsIncludesInactive(t *testing.T) {
	f := newAdminFixture(t)
	_, err := f.container.ProductRepo.SetActive("cauchaca-original", false)
	require.NoError(t, err)
	r := newAdminTestRouter(New(f.container), f.super)

	req := httptest.NewRequest(http.MethodGet, "/products?category=alcohol", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var page struct {
		StatusCode int              `json:"status_code"`
		Data       []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, response.CodeOK, page.StatusCode)
	ids := make([]string, 0, len(page.Data))
	for _, p := range page.Data {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "cauchaca-original")
}

func TestAdminOrderErrors(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	env := doJSON(t, r, http.MethodGet, "/orders?status=lost", nil)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)

	env = doJSON(t, r, http.MethodGet, "/orders?created_from=yesterday", nil)
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)

	env = doJSON(t, r, http.MethodGet, "/orders?status=paid", nil)
	assert.Equal(t, response.CodeOK, env.StatusCode)

	env = doJSON(t, r, http.MethodPatch, "/orders/MDC-NONE/status", map[string]string{"status": "shipped"})
	assert.Equal(t, response.CodeNotFound, env.StatusCode)

	env = doJSON(t, r, http.MethodPatch, "/orders/MDC-NONE/status", map[string]string{"status": "lost"})
	assert.Equal(t, response.CodeBadRequest, env.StatusCode)
}

func TestAdminAuthzRoles(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	env := doJSON(t, r, http.MethodGet, "/authz/roles", nil)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var roles []service.RoleView
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	assert.Len(t, roles, 3)

	target := fmt.Sprintf("/authz/admins/%d/roles", f.staff.ID)
	env = doJSON(t, r, http.MethodPut, target, map[string][]string{"roles": {"order_support"}})
	require.Equal(t, response.CodeOK, env.StatusCode)

	env = doJSON(t, r, http.MethodGet, target, nil)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var assigned struct {
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &assigned))
	assert.Equal(t, []string{"role:order_support"}, assigned.Roles)

	env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/authz/audit-logs?target_admin_id=%d", f.staff.ID), nil)
	require.Equal(t, response.CodeOK, env.StatusCode)
	var logs []models.AuthzAuditLog
	require.NoError(t, json.Unmarshal(env.Data, &logs))
	require.Len(t, logs, 1)
	assert.Equal(t, "req-admin-test", logs[0].RequestID)
}

func TestAdminAuthzRoleErrors(t *testing.T) {
	f := newAdminFixture(t)
	r := newAdminTestRouter(New(f.container), f.super)

	cases := []struct {
		name   string
		target string
		roles  []string
		code   int
	}{
		{"self update", fmt.Sprintf("/authz/admins/%d/roles", f.super.ID), []string{"order_support"}, response.CodeBadRequest},
		{"unknown role", fmt.Sprintf("/authz/admins/%d/roles", f.staff.ID), []string{"ghost"}, response.CodeBadRequest},
		{"unknown admin", "/authz/admins/9999/roles", []string{"order_support"}, response.CodeNotFound},
		{"bad id", "/authz/admins/abc/roles", []string{"order_support"}, response.CodeBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := doJSON(t, r, http.MethodPut, tc.target, map[string][]string{"roles": tc.roles})
			assert.Equal(t, tc.code, env.StatusCode)
		})
	}
}
