package shared

import (
	"errors"

	"github.com/maisdocacau/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// MappedHandlerError 业务错误到接口错误响应的映射。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则顺序匹配错误；其次使用错误链上带 key 的 AppError；都未命中时使用兜底码并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	var appErr *response.AppError
	if errors.As(err, &appErr) && appErr.Key != "" {
		RespondError(c, response.CodeOf(err), appErr.Key, appErr.Err)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedHandlerErrors 合并多组映射规则。
func ConcatMappedHandlerErrors(groups ...[]MappedHandlerError) []MappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}
