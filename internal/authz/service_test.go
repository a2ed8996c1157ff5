package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	svc, err := NewService(db)
	require.NoError(t, err)
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.GrantRolePolicy("stock", "/admin/products/:id", "GET"))
	require.NoError(t, svc.SetAdminRoles(1, []string{"stock"}))

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/products/nibs-de-cacau", "get")
	require.NoError(t, err)
	assert.True(t, allow)

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/products/nibs-de-cacau", "PUT")
	require.NoError(t, err)
	assert.False(t, allow)

	allow, err = svc.EnforceAdmin(2, "/api/v1/admin/products/nibs-de-cacau", "GET")
	require.NoError(t, err)
	assert.False(t, allow, "admin without roles")
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.GrantRolePolicy("stock", "/admin/products", "GET"))
	require.NoError(t, svc.GrantRolePolicy("support", "/admin/orders", "GET"))

	require.NoError(t, svc.SetAdminRoles(7, []string{"stock", "support"}))
	roles, err := svc.GetAdminRoles(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:stock", "role:support"}, roles)

	require.NoError(t, svc.SetAdminRoles(7, []string{"role:support"}))
	roles, err = svc.GetAdminRoles(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:support"}, roles)

	allow, err := svc.EnforceAdmin(7, "/admin/products", "GET")
	require.NoError(t, err)
	assert.False(t, allow)

	require.NoError(t, svc.SetAdminRoles(7, nil))
	roles, err = svc.GetAdminRoles(7)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestSetAdminRolesUnknownRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.GrantRolePolicy("stock", "/admin/products", "GET"))
	require.NoError(t, svc.SetAdminRoles(3, []string{"stock"}))

	err := svc.SetAdminRoles(3, []string{"stock", "ghost"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownRole))

	roles, err := svc.GetAdminRoles(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:stock"}, roles, "failed update keeps previous roles")
}

func TestNormalizeObject(t *testing.T) {
	cases := map[string]string{
		"":                        "/",
		"/api/v1":                 "/",
		"/api/v1/admin/orders":    "/admin/orders",
		"admin/products":          "/admin/products",
		" /admin/products/:id ":   "/admin/products/:id",
		"/api/v10/admin/whatever": "/api/v10/admin/whatever",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeObject(input), "input %q", input)
	}
}

func TestNormalizeRole(t *testing.T) {
	role, err := NormalizeRole(" order support ")
	require.NoError(t, err)
	assert.Equal(t, "role:order_support", role)

	_, err = NormalizeRole("role:")
	assert.Error(t, err)
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.BootstrapBuiltinRoles())
	require.NoError(t, svc.BootstrapBuiltinRoles(), "bootstrap is repeatable")

	roles, err := svc.ListRoles()
	require.NoError(t, err)
	assert.Equal(t, []string{"role:catalog_manager", "role:order_support", "role:readonly_auditor"}, roles)

	require.NoError(t, svc.SetAdminRoles(10, []string{RoleCatalogManager}))
	require.NoError(t, svc.SetAdminRoles(11, []string{RoleOrderSupport}))

	cases := []struct {
		adminID uint
		path    string
		method  string
		allow   bool
	}{
		{10, "/api/v1/admin/products", "POST", true},
		{10, "/api/v1/admin/products/trufa/stock", "PATCH", true},
		{10, "/api/v1/admin/orders", "GET", true},
		{10, "/api/v1/admin/orders/MDC12345678/status", "PATCH", false},
		{11, "/api/v1/admin/orders/MDC12345678/status", "PATCH", true},
		{11, "/api/v1/admin/products", "GET", true},
		{11, "/api/v1/admin/products", "POST", false},
		{10, "/api/v1/admin/authz/roles", "GET", false},
		{11, "/api/v1/admin/authz/audit-logs", "GET", false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceAdmin(tc.adminID, tc.path, tc.method)
		require.NoError(t, err)
		assert.Equal(t, tc.allow, allow, "%d %s %s", tc.adminID, tc.method, tc.path)
	}

	policies, err := svc.GetRolePolicies(RoleOrderSupport)
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "/admin/orders", policies[0].Object)
}
