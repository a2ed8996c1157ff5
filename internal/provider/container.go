package provider

import (
	"time"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/config"
	"github.com/maisdocacau/storefront/internal/events"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/payment/simulated"
	"github.com/maisdocacau/storefront/internal/queue"
	"github.com/maisdocacau/storefront/internal/repository"
	"github.com/maisdocacau/storefront/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config         *config.Config
	QueueClient    *queue.Client
	EventPublisher events.Publisher
	SessionStore   cache.Store
	SessionLocks   *service.SessionLocks

	// Repositories
	AdminRepo         repository.AdminRepository
	UserProfileRepo   repository.UserProfileRepository
	ProductRepo       repository.ProductRepository
	OrderRepo         repository.OrderRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthzAdminService   *service.AuthzAdminService
	CatalogService      *service.CatalogService
	AgeService          *service.AgeVerificationService
	CartService         *service.CartService
	DeliveryZoneService *service.DeliveryZoneService
	OrderService        *service.OrderService
	UserProfileService  *service.UserProfileService
	CheckoutService     *service.CheckoutService
	WalletAuthService   *service.WalletAuthService
	CaptchaService      *service.CaptchaService
	AdminAuthService    *service.AdminAuthService
	ProductAdminService *service.ProductAdminService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端，未启用时为空操作客户端
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	publisher, err := events.NewPublisher(cfg.Kafka)
	if err != nil {
		logger.Errorw("provider_init_event_publisher_failed", "error", err)
		publisher = events.NoopPublisher{}
	}

	c := &Container{
		Config:         cfg,
		QueueClient:    queueClient,
		EventPublisher: publisher,
		SessionStore:   cache.NewDefaultStore(),
		SessionLocks:   service.NewSessionLocks(),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

// Close 释放队列客户端与事件发布器
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			logger.Warnw("provider_close_event_publisher_failed", "error", err)
		}
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserProfileRepo = repository.NewUserProfileRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}
	c.AuthzAdminService = service.NewAuthzAdminService(c.AuthzService, c.AdminRepo, c.AuthzAuditLogRepo)

	zones, err := service.DeliveryZonesFromConfig(c.Config.Delivery)
	if err != nil {
		logger.Warnw("provider_load_delivery_zones_failed", "error", err, "fallback", "builtin_zones")
		zones = nil
	}

	sessionTTL := time.Duration(c.Config.Session.TTLHours) * time.Hour
	walletCfg := c.Config.WalletAuth
	checkoutCfg := c.Config.Checkout

	c.CatalogService = service.NewCatalogService(c.ProductRepo, time.Duration(c.Config.Cache.CatalogTTLSeconds)*time.Second)
	c.AgeService = service.NewAgeVerificationService(c.SessionStore, walletCfg.AgeCheckAction, sessionTTL)
	c.CartService = service.NewCartService(c.SessionStore, c.CatalogService, c.AgeService, c.SessionLocks, sessionTTL)
	c.DeliveryZoneService = service.NewDeliveryZoneService(zones)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo)
	c.UserProfileService = service.NewUserProfileService(c.UserProfileRepo, walletCfg.DefaultNamePrefix, walletCfg.DefaultNameAddrLen)

	gateway := simulated.New(simulated.Config{
		Delay:       time.Duration(checkoutCfg.SimulatedPaymentDelayMS) * time.Millisecond,
		FailureRate: checkoutCfg.SimulatedFailureRate,
	})
	c.CheckoutService = service.NewCheckoutService(
		c.SessionStore,
		c.CartService,
		c.DeliveryZoneService,
		c.OrderService,
		gateway,
		c.QueueClient,
		c.UserProfileService,
		c.SessionLocks,
		service.CheckoutOptions{
			SessionTTL:     time.Duration(checkoutCfg.SessionTTLMinutes) * time.Minute,
			StateTTL:       sessionTTL,
			PaymentTimeout: time.Duration(checkoutCfg.PaymentTimeoutSeconds) * time.Second,
			PaymentGrace:   time.Minute,
			DefaultCity:    checkoutCfg.DefaultCity,
			DefaultState:   checkoutCfg.DefaultState,
		},
	)

	c.WalletAuthService = service.NewWalletAuthService(c.SessionStore, c.UserProfileService, walletCfg, c.Config.UserJWT)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AdminAuthService = service.NewAdminAuthService(c.Config.JWT, c.AdminRepo, c.CaptchaService)
	c.ProductAdminService = service.NewProductAdminService(c.ProductRepo, c.CatalogService)
}
