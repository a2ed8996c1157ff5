package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// parseTimeNullable 解析 RFC3339 时间，空值返回 nil
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseCreatedRange 读取 created_from / created_to，非法时直接响应
func parseCreatedRange(c *gin.Context) (*time.Time, *time.Time, bool) {
	from, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return nil, nil, false
	}
	to, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return nil, nil, false
	}
	return from, to, true
}

// parseUintQuery 读取可选的正整数查询参数，缺省为 0
func parseUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return 0, false
	}
	return uint(value), true
}

// parseAdminIDParam 读取路径中的管理员 ID
func parseAdminIDParam(c *gin.Context) (uint, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || value == 0 {
		respondError(c, response.CodeBadRequest, "error.admin_id_invalid", nil)
		return 0, false
	}
	return uint(value), true
}

func parseBoolQuery(c *gin.Context, key string) *bool {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
