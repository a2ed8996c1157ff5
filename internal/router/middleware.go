package router

import (
	"strconv"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/config"
	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/i18n"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"
const defaultSessionHeader = "X-Session-ID"
const adminIsSuperContextKey = "admin_is_super"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Accept-Language",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-Locale",
			defaultSessionHeader,
			requestIDHeader,
		}
	}
	exposedHeaders := cfg.ExposedHeaders
	if len(exposedHeaders) == 0 {
		exposedHeaders = []string{defaultSessionHeader, requestIDHeader}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")
	exposeHeader := strings.Join(exposedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", exposeHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(handlershared.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// SessionMiddleware 会话标识中间件：缺失或非法时签发新的 uuid 并回写响应头
func SessionMiddleware(header string) gin.HandlerFunc {
	header = strings.TrimSpace(header)
	if header == "" {
		header = defaultSessionHeader
	}
	return func(c *gin.Context) {
		sessionID := strings.TrimSpace(c.GetHeader(header))
		if parsed, err := uuid.Parse(sessionID); err == nil {
			sessionID = parsed.String()
		} else {
			sessionID = uuid.NewString()
		}
		c.Set(handlershared.ContextKeySessionID, sessionID)
		c.Writer.Header().Set(header, sessionID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", handlershared.RequestID(c),
			"session_id", handlershared.SessionID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("http_request", "errors", c.Errors.String())
			return
		}
		log.Infow("http_request")
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// OptionalUserAuthMiddleware 携带有效用户令牌时挂载用户，否则按游客继续
func OptionalUserAuthMiddleware(walletAuth *service.WalletAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok || walletAuth == nil {
			c.Next()
			return
		}
		claims, err := walletAuth.ParseUserJWT(token)
		if err != nil {
			logger.Debugw("optional_user_token_ignored", "request_id", handlershared.RequestID(c), "error", err)
			c.Next()
			return
		}
		c.Set(handlershared.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// UserJWTAuthMiddleware 用户 JWT 鉴权中间件
func UserJWTAuthMiddleware(walletAuth *service.WalletAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if walletAuth == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		claims, err := walletAuth.ParseUserJWT(token)
		if err != nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		c.Set(handlershared.ContextKeyUserID, claims.UserID)
		c.Next()
	}
}

// AdminJWTAuthMiddleware 后台 JWT 鉴权中间件，令牌版本落后即视为吊销
func AdminJWTAuthMiddleware(adminAuth *service.AdminAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminAuth == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		claims, err := adminAuth.ParseJWT(token)
		if err != nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		state, err := adminAuth.ResolveAuthState(c.Request.Context(), claims.AdminID)
		if err != nil || state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if claims.TokenVersion != state.TokenVersion {
			logger.Infow("admin_token_revoked", "admin_id", claims.AdminID, "token_version", claims.TokenVersion)
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		c.Set(handlershared.ContextKeyAdminID, claims.AdminID)
		c.Set(handlershared.ContextKeyAdminUsername, state.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件
func AdminRBACMiddleware(authzAdmin *service.AuthzAdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}

		adminID := c.GetUint(handlershared.ContextKeyAdminID)
		if adminID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzAdmin.Authorize(adminID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.permission_denied"))
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.permission_denied"))
			c.Abort()
			return
		}

		c.Next()
	}
}
