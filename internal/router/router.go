package router

import (
	"sort"
	"strings"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/config"
	adminhandlers "github.com/maisdocacau/storefront/internal/http/handlers/admin"
	publichandlers "github.com/maisdocacau/storefront/internal/http/handlers/public"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mdc"
	}
	redisClient := cache.Client()
	walletLoginRule := loginRateLimitRule(redisPrefix, "wallet_login", cfg.Security.LoginRateLimit)
	adminLoginRule := loginRateLimitRule(redisPrefix, "admin_login", cfg.Security.LoginRateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:id", publicHandler.GetProduct)
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/delivery/zones", publicHandler.ListDeliveryZones)
			public.GET("/delivery/neighborhoods", publicHandler.ListNeighborhoods)
			public.GET("/delivery/lookup", publicHandler.LookupNeighborhood)
		}

		// 会话接口（游客可用，登录用户自动挂载）
		session := apiV1.Group("")
		session.Use(SessionMiddleware(cfg.Session.Header), OptionalUserAuthMiddleware(c.WalletAuthService))
		{
			session.GET("/cart", publicHandler.GetCart)
			session.POST("/cart/items", publicHandler.AddCartItem)
			session.PATCH("/cart/items/:product_id", publicHandler.UpdateCartItem)
			session.DELETE("/cart/items/:product_id", publicHandler.RemoveCartItem)
			session.DELETE("/cart", publicHandler.ClearCart)

			session.GET("/age-verification", publicHandler.GetAgeVerification)
			session.POST("/age-verification", publicHandler.VerifyAge)

			session.POST("/checkout", publicHandler.BeginCheckout)
			session.GET("/checkout", publicHandler.GetCheckout)
			session.DELETE("/checkout", publicHandler.AbandonCheckout)
			session.POST("/checkout/address", publicHandler.SubmitCheckoutAddress)
			session.POST("/checkout/back", publicHandler.CheckoutBack)
			session.GET("/checkout/payment-methods", publicHandler.GetPaymentMethods)
			session.POST("/checkout/payment", publicHandler.SubmitCheckoutPayment)

			session.POST("/auth/wallet/nonce", publicHandler.IssueWalletNonce)
			session.POST("/auth/wallet/complete", RateLimitMiddleware(redisClient, walletLoginRule, KeyByIP), publicHandler.CompleteWalletAuth)
		}

		// 用户接口（需鉴权）
		account := apiV1.Group("/account")
		account.Use(UserJWTAuthMiddleware(c.WalletAuthService))
		{
			account.GET("/profile", publicHandler.GetProfile)
			account.PUT("/profile", publicHandler.UpdateProfile)
			account.GET("/orders", publicHandler.ListMyOrders)
			account.GET("/orders/:order_no", publicHandler.GetMyOrder)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.GET("/captcha", adminHandler.GetCaptcha)
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			authenticated := admin.Group("")
			authenticated.Use(AdminJWTAuthMiddleware(c.AdminAuthService))
			authenticated.GET("/me", adminHandler.GetAdminMe)

			// 需要 RBAC 授权的接口
			authorized := authenticated.Group("")
			authorized.Use(AdminRBACMiddleware(c.AuthzAdminService))
			{
				// 商品管理
				authorized.GET("/products", adminHandler.ListProducts)
				authorized.POST("/products", adminHandler.CreateProduct)
				authorized.GET("/products/:id", adminHandler.GetProduct)
				authorized.PUT("/products/:id", adminHandler.UpdateProduct)
				authorized.PATCH("/products/:id/stock", adminHandler.UpdateProductStock)
				authorized.PATCH("/products/:id/active", adminHandler.SetProductActive)

				// 订单管理
				authorized.GET("/orders", adminHandler.ListOrders)
				authorized.PATCH("/orders/:order_no/status", adminHandler.UpdateOrderStatus)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/audit-logs", adminHandler.ListAuthzAuditLogs)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" || item.Path == "/api/v1/admin/captcha" || item.Path == "/api/v1/admin/me" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
