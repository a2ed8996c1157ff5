package shared

import (
	"github.com/maisdocacau/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// 上下文键
const (
	ContextKeySessionID     = "session_id"
	ContextKeyUserID        = "user_id"
	ContextKeyAdminID       = "admin_id"
	ContextKeyAdminUsername = "admin_username"
	ContextKeyRequestID     = "request_id"
)

// SessionID 读取会话中间件写入的会话标识。
func SessionID(c *gin.Context) string {
	return c.GetString(ContextKeySessionID)
}

// OptionalUserID 读取可选登录用户，未登录返回 nil。
func OptionalUserID(c *gin.Context) *uint {
	value, exists := c.Get(ContextKeyUserID)
	if !exists {
		return nil
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		return nil
	}
	return &id
}

// RequestID 读取请求 ID。
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
