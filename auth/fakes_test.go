package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/errors"
)

type fakeRegistry struct {
	clients map[string]*schema.AuthClient
}

func (f *fakeRegistry) FindByClientId(clientId string) (*schema.AuthClient, error) {
	return f.clients[clientId], nil
}

type fakeResolver struct {
	users map[string]*schema.User
}

func (f *fakeResolver) FindByEmail(email string) (*schema.User, error) {
	return f.users[email], nil
}

func newId(value string) *string {
	return &value
}

func requireUnauthorized(t *testing.T, err error, message string) {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*errors.UnauthorizedError)
	require.True(t, ok, "expected UnauthorizedError, got %T", err)
	require.Equal(t, message, e.Message)
}
