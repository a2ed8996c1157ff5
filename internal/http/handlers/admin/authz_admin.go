package admin

import (
	"strings"

	handlershared "github.com/maisdocacau/storefront/internal/http/handlers/shared"
	"github.com/maisdocacau/storefront/internal/http/response"
	"github.com/maisdocacau/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// SetAdminRolesRequest 覆盖管理员角色请求
type SetAdminRolesRequest struct {
	Roles []string `json:"roles"`
}

// ListAuthzRoles 角色及其策略列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzAdminService.ListRoles()
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, roles)
}

// GetAdminRoles 查询管理员角色
func (h *Handler) GetAdminRoles(c *gin.Context) {
	targetID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	roles, err := h.AuthzAdminService.GetAdminRoles(targetID)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{"admin_id": targetID, "roles": roles})
}

// SetAdminRoles 覆盖管理员角色
func (h *Handler) SetAdminRoles(c *gin.Context) {
	operatorID, ok := getAdminID(c)
	if !ok {
		return
	}
	targetID, ok := parseAdminIDParam(c)
	if !ok {
		return
	}
	var req SetAdminRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	roles, err := h.AuthzAdminService.SetAdminRoles(currentOperator(c, operatorID), targetID, req.Roles)
	if err != nil {
		respondAuthzError(c, err)
		return
	}
	response.Success(c, gin.H{"admin_id": targetID, "roles": roles})
}

// ListAuthzAuditLogs 权限审计日志
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.ParsePagination(c)
	operatorID, ok := parseUintQuery(c, "operator_admin_id")
	if !ok {
		return
	}
	targetID, ok := parseUintQuery(c, "target_admin_id")
	if !ok {
		return
	}
	createdFrom, createdTo, ok := parseCreatedRange(c)
	if !ok {
		return
	}

	logs, total, err := h.AuthzAdminService.ListAuditLogs(repository.AuthzAuditLogListFilter{
		Page:            page,
		PageSize:        pageSize,
		OperatorAdminID: operatorID,
		TargetAdminID:   targetID,
		Action:          strings.TrimSpace(c.Query("action")),
		CreatedFrom:     createdFrom,
		CreatedTo:       createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.audit_log_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, logs, handlershared.BuildPagination(page, pageSize, total))
}
