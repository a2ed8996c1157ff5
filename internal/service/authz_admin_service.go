package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/cache"
	"github.com/maisdocacau/storefront/internal/logger"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"
)

// 审计动作
const (
	AuthzActionSetAdminRoles = "set_admin_roles"
)

// RoleView 角色及其直接策略
type RoleView struct {
	Role     string         `json:"role"`
	Policies []authz.Policy `json:"policies"`
}

// AuthzOperator 发起权限变更的管理员
type AuthzOperator struct {
	AdminID   uint
	Username  string
	RequestID string
}

// AuthzAdminService 后台角色分配与审计
type AuthzAdminService struct {
	authz     *authz.Service
	adminRepo repository.AdminRepository
	auditRepo repository.AuthzAuditLogRepository
}

// NewAuthzAdminService 创建角色管理服务
func NewAuthzAdminService(authzSvc *authz.Service, adminRepo repository.AdminRepository, auditRepo repository.AuthzAuditLogRepository) *AuthzAdminService {
	return &AuthzAdminService{
		authz:     authzSvc,
		adminRepo: adminRepo,
		auditRepo: auditRepo,
	}
}

// ListRoles 列出角色与策略
func (s *AuthzAdminService) ListRoles() ([]RoleView, error) {
	if s == nil || s.authz == nil {
		return nil, ErrAuthzUnavailable
	}
	roles, err := s.authz.ListRoles()
	if err != nil {
		return nil, err
	}
	views := make([]RoleView, 0, len(roles))
	for _, role := range roles {
		policies, err := s.authz.GetRolePolicies(role)
		if err != nil {
			return nil, err
		}
		views = append(views, RoleView{Role: role, Policies: policies})
	}
	return views, nil
}

// GetAdminRoles 查询管理员角色
func (s *AuthzAdminService) GetAdminRoles(adminID uint) ([]string, error) {
	if s == nil || s.authz == nil {
		return nil, ErrAuthzUnavailable
	}
	if _, err := s.requireAdmin(adminID); err != nil {
		return nil, err
	}
	return s.authz.GetAdminRoles(adminID)
}

// SetAdminRoles 覆盖管理员角色并写入审计日志
func (s *AuthzAdminService) SetAdminRoles(operator AuthzOperator, targetAdminID uint, roles []string) ([]string, error) {
	if s == nil || s.authz == nil {
		return nil, ErrAuthzUnavailable
	}
	if operator.AdminID == targetAdminID {
		return nil, ErrAuthzSelfDemotion
	}
	target, err := s.requireAdmin(targetAdminID)
	if err != nil {
		return nil, err
	}
	if err := s.authz.SetAdminRoles(targetAdminID, roles); err != nil {
		if errors.Is(err, authz.ErrUnknownRole) {
			return nil, ErrAuthzRoleInvalid
		}
		return nil, err
	}
	assigned, err := s.authz.GetAdminRoles(targetAdminID)
	if err != nil {
		return nil, err
	}

	// 角色变化后 Token 版本递增，旧 Token 需重新登录
	target.TokenVersion++
	if err := s.adminRepo.Update(target); err != nil {
		return nil, err
	}
	if err := cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(target)); err != nil {
		logger.Warnw("admin_auth_state_cache_failed", "admin_id", target.ID, "error", err)
	}

	targetID := targetAdminID
	entry := &models.AuthzAuditLog{
		OperatorAdminID:  operator.AdminID,
		OperatorUsername: strings.TrimSpace(operator.Username),
		TargetAdminID:    &targetID,
		Action:           AuthzActionSetAdminRoles,
		Roles:            strings.Join(assigned, ","),
		RequestID:        strings.TrimSpace(operator.RequestID),
		DetailJSON: models.JSON{
			"target_username": target.Username,
			"roles":           assigned,
		},
		CreatedAt: time.Now(),
	}
	if s.auditRepo != nil {
		if err := s.auditRepo.Create(entry); err != nil {
			logger.Errorw("authz_audit_log_write_failed", "operator_admin_id", operator.AdminID, "target_admin_id", targetAdminID, "error", err)
		}
	}
	logger.Infow("admin_roles_updated", "operator_admin_id", operator.AdminID, "target_admin_id", targetAdminID, "roles", assigned)
	return assigned, nil
}

// ListAuditLogs 查询权限审计日志
func (s *AuthzAdminService) ListAuditLogs(filter repository.AuthzAuditLogListFilter) ([]models.AuthzAuditLog, int64, error) {
	if s == nil || s.auditRepo == nil {
		return nil, 0, ErrAuthzUnavailable
	}
	return s.auditRepo.List(filter)
}

// Authorize 判断非超级管理员能否访问接口
func (s *AuthzAdminService) Authorize(adminID uint, path, method string) (bool, error) {
	if s == nil || s.authz == nil {
		return false, ErrAuthzUnavailable
	}
	return s.authz.EnforceAdmin(adminID, path, method)
}

func (s *AuthzAdminService) requireAdmin(adminID uint) (*models.Admin, error) {
	if adminID == 0 {
		return nil, ErrNotFound
	}
	admin, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrNotFound
	}
	return admin, nil
}
