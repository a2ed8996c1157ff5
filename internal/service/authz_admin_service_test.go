package service

import (
	"testing"

	"github.com/maisdocacau/storefront/internal/authz"
	"github.com/maisdocacau/storefront/internal/models"
	"github.com/maisdocacau/storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthzAdminForTest(t *testing.T) (*AuthzAdminService, *gorm.DB, *models.Admin, *models.Admin) {
	t.Helper()
	db := openServiceTestDB(t)
	super := &models.Admin{Username: "gerente", PasswordHash: "x", IsSuper: true}
	staff := &models.Admin{Username: "estoque", PasswordHash: "x"}
	require.NoError(t, db.Create(super).Error)
	require.NoError(t, db.Create(staff).Error)

	authzSvc, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, authzSvc.BootstrapBuiltinRoles())

	svc := NewAuthzAdminService(authzSvc, repository.NewAdminRepository(db), repository.NewAuthzAuditLogRepository(db))
	return svc, db, super, staff
}

func TestAuthzAdminSetRolesWritesAudit(t *testing.T) {
	svc, db, super, staff := newAuthzAdminForTest(t)
	operator := AuthzOperator{AdminID: super.ID, Username: super.Username, RequestID: "req-1"}

	roles, err := svc.SetAdminRoles(operator, staff.ID, []string{authz.RoleCatalogManager})
	require.NoError(t, err)
	assert.Equal(t, []string{"role:catalog_manager"}, roles)

	allow, err := svc.Authorize(staff.ID, "/api/v1/admin/products", "POST")
	require.NoError(t, err)
	assert.True(t, allow)

	logs, total, err := svc.ListAuditLogs(repository.AuthzAuditLogListFilter{TargetAdminID: staff.ID})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, AuthzActionSetAdminRoles, logs[0].Action)
	assert.Equal(t, "role:catalog_manager", logs[0].Roles)
	assert.Equal(t, "gerente", logs[0].OperatorUsername)
	assert.Equal(t, "req-1", logs[0].RequestID)

	updated, err := repository.NewAdminRepository(db).GetByID(staff.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated.TokenVersion)
}

func TestAuthzAdminSetRolesRejections(t *testing.T) {
	svc, _, super, staff := newAuthzAdminForTest(t)
	operator := AuthzOperator{AdminID: super.ID, Username: super.Username}

	_, err := svc.SetAdminRoles(operator, staff.ID, []string{"ghost"})
	assert.ErrorIs(t, err, ErrAuthzRoleInvalid)

	_, err = svc.SetAdminRoles(operator, super.ID, nil)
	assert.ErrorIs(t, err, ErrAuthzSelfDemotion)

	_, err = svc.SetAdminRoles(operator, 999, []string{authz.RoleOrderSupport})
	assert.ErrorIs(t, err, ErrNotFound)

	_, total, err := svc.ListAuditLogs(repository.AuthzAuditLogListFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestAuthzAdminListRoles(t *testing.T) {
	svc, _, _, staff := newAuthzAdminForTest(t)

	views, err := svc.ListRoles()
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "role:catalog_manager", views[0].Role)
	assert.NotEmpty(t, views[0].Policies)

	roles, err := svc.GetAdminRoles(staff.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestAuthzAdminUnavailable(t *testing.T) {
	var svc *AuthzAdminService
	_, err := svc.ListRoles()
	assert.ErrorIs(t, err, ErrAuthzUnavailable)
}
