package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizeWildcard(t *testing.T) {
	authz := NewAuthorizer()
	assert.True(t, authz.Authorize([]string{}, []string{WildcardPermission}))
	assert.True(t, authz.Authorize(nil, []string{WildcardPermission}))
	assert.True(t, authz.Authorize([]string{"view_users"}, []string{WildcardPermission}))
	assert.True(t, authz.Authorize([]string{"view_users"}, []string{"manage_users", WildcardPermission}))
}

func TestAuthorizeSuperset(t *testing.T) {
	authz := NewAuthorizer()
	granted := []string{"view_users", "manage_users", "view_roles"}
	assert.True(t, authz.Authorize(granted, []string{"view_users"}))
	assert.True(t, authz.Authorize(granted, []string{"view_users", "view_roles"}))
	assert.False(t, authz.Authorize(granted, []string{"manage_roles"}))
	assert.False(t, authz.Authorize(granted, []string{"view_users", "manage_roles"}))
}

func TestAuthorizeEmptyGranted(t *testing.T) {
	authz := NewAuthorizer()
	assert.True(t, authz.Authorize([]string{}, []string{}))
	assert.False(t, authz.Authorize([]string{}, []string{"view_users"}))
	assert.False(t, authz.Authorize(nil, []string{"view_users"}))
}

func TestAuthorizeIsIdempotent(t *testing.T) {
	authz := NewAuthorizer()
	granted := []string{"view_users"}
	required := []string{"view_users"}
	first := authz.Authorize(granted, required)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, authz.Authorize(granted, required))
	}
}
