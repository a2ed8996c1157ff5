package config

import (
	"fmt"
	"strings"

	"github.com/maisdocacau/storefront/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	UserJWT    JWTConfig        `mapstructure:"user_jwt"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Queue      QueueConfig      `mapstructure:"queue"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Security   SecurityConfig   `mapstructure:"security"`
	Session    SessionConfig    `mapstructure:"session"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Checkout   CheckoutConfig   `mapstructure:"checkout"`
	WalletAuth WalletAuthConfig `mapstructure:"wallet_auth"`
	Delivery   DeliveryConfig   `mapstructure:"delivery"`
	Captcha    CaptchaConfig    `mapstructure:"captcha"`
}

// AppConfig 应用基础信息
type AppConfig struct {
	Name          string `mapstructure:"name"`
	DefaultLocale string `mapstructure:"default_locale"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// KafkaConfig 订单事件投递配置
type KafkaConfig struct {
	Enabled        bool     `mapstructure:"enabled"`
	Brokers        []string `mapstructure:"brokers"`
	Topic          string   `mapstructure:"topic"`
	RequiredAcks   int      `mapstructure:"required_acks"`
	BatchSize      int      `mapstructure:"batch_size"`
	BatchTimeoutMS int      `mapstructure:"batch_timeout_ms"`
	MaxAttempts    int      `mapstructure:"max_attempts"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit LoginRateLimitConfig `mapstructure:"login_rate_limit"`
}

// LoginRateLimitConfig 登录限流配置
type LoginRateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// SessionConfig 会话态（购物车/结算/配送信息）存储配置
type SessionConfig struct {
	Header   string `mapstructure:"header"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// CacheConfig 读缓存配置
type CacheConfig struct {
	CatalogTTLSeconds int `mapstructure:"catalog_ttl_seconds"`
}

// CheckoutConfig 结算流程配置
type CheckoutConfig struct {
	SessionTTLMinutes       int     `mapstructure:"session_ttl_minutes"`
	PaymentTimeoutSeconds   int     `mapstructure:"payment_timeout_seconds"`
	SimulatedPaymentDelayMS int     `mapstructure:"simulated_payment_delay_ms"`
	SimulatedFailureRate    float64 `mapstructure:"simulated_failure_rate"`
	DefaultCity             string  `mapstructure:"default_city"`
	DefaultState            string  `mapstructure:"default_state"`
}

// WalletAuthConfig 钱包登录配置
type WalletAuthConfig struct {
	NonceTTLSeconds    int    `mapstructure:"nonce_ttl_seconds"`
	ExpirationDays     int    `mapstructure:"expiration_days"`
	NotBeforeHours     int    `mapstructure:"not_before_hours"`
	StatementTemplate  string `mapstructure:"statement_template"`
	AgeCheckAction     string `mapstructure:"age_check_action"`
	DefaultNamePrefix  string `mapstructure:"default_name_prefix"`
	DefaultNameAddrLen int    `mapstructure:"default_name_addr_len"`
}

// DeliveryConfig 配送区域配置，zones 为空时使用内置圣保罗区域表
type DeliveryConfig struct {
	Zones []DeliveryZoneConfig `mapstructure:"zones"`
}

// DeliveryZoneConfig 单个配送区域
type DeliveryZoneConfig struct {
	Name          string   `mapstructure:"name"`
	Neighborhoods []string `mapstructure:"neighborhoods"`
	Fee           string   `mapstructure:"fee"`
	EstimatedTime string   `mapstructure:"estimated_time"`
}

// CaptchaConfig 后台登录图片验证码配置
type CaptchaConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	Length        int  `mapstructure:"length"`
	Width         int  `mapstructure:"width"`
	Height        int  `mapstructure:"height"`
	NoiseCount    int  `mapstructure:"noise_count"`
	ShowLine      int  `mapstructure:"show_line"`
	ExpireSeconds int  `mapstructure:"expire_seconds"`
	MaxStore      int  `mapstructure:"max_store"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("../")
	viper.AddConfigPath("./etc")

	setDefaults(viper.GetViper())

	// 环境变量支持，server.port -> SERVER_PORT
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Mais do Cacau")
	v.SetDefault("app.default_locale", "pt-BR")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.dir", "")
	v.SetDefault("log.filename", "storefront.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/maisdocacau.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	v.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("user_jwt.secret", "user-change-me-in-production")
	v.SetDefault("user_jwt.expire_hours", 168)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "mdc")
	v.SetDefault("queue.enabled", true)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.password", "")
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 10)
	v.SetDefault("queue.queues", map[string]int{
		"default":  10,
		"critical": 5,
	})
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"127.0.0.1:9092"})
	v.SetDefault("kafka.topic", "maisdocacau.orders")
	v.SetDefault("kafka.required_acks", -1)
	v.SetDefault("kafka.batch_size", 100)
	v.SetDefault("kafka.batch_timeout_ms", 1000)
	v.SetDefault("kafka.max_attempts", 3)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Accept-Language",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
		"X-Session-ID",
	})
	v.SetDefault("cors.exposed_headers", []string{"X-Request-ID", "X-Session-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("security.login_rate_limit.window_seconds", 300)
	v.SetDefault("security.login_rate_limit.max_attempts", 10)
	v.SetDefault("security.login_rate_limit.block_seconds", 900)
	v.SetDefault("session.header", "X-Session-ID")
	v.SetDefault("session.ttl_hours", 720)
	v.SetDefault("cache.catalog_ttl_seconds", 300)
	v.SetDefault("checkout.session_ttl_minutes", 60)
	v.SetDefault("checkout.payment_timeout_seconds", 30)
	v.SetDefault("checkout.simulated_payment_delay_ms", 2000)
	v.SetDefault("checkout.simulated_failure_rate", 0)
	v.SetDefault("checkout.default_city", "São Paulo")
	v.SetDefault("checkout.default_state", "SP")
	v.SetDefault("wallet_auth.nonce_ttl_seconds", 600)
	v.SetDefault("wallet_auth.expiration_days", 7)
	v.SetDefault("wallet_auth.not_before_hours", 24)
	v.SetDefault("wallet_auth.statement_template", "Authenticate with Mais do Cacau (%s).")
	v.SetDefault("wallet_auth.age_check_action", "age_check")
	v.SetDefault("wallet_auth.default_name_prefix", "User_")
	v.SetDefault("wallet_auth.default_name_addr_len", 6)
	v.SetDefault("delivery.zones", []DeliveryZoneConfig{})
	v.SetDefault("captcha.enabled", false)
	v.SetDefault("captcha.length", 5)
	v.SetDefault("captcha.width", 240)
	v.SetDefault("captcha.height", 80)
	v.SetDefault("captcha.noise_count", 2)
	v.SetDefault("captcha.show_line", 2)
	v.SetDefault("captcha.expire_seconds", 300)
	v.SetDefault("captcha.max_store", 10240)
}
