package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soffa-projects/record-api/schema"
)

func newAuthenticator(users map[string]*schema.User) *Authenticator {
	resolver := &fakeResolver{users: users}
	return NewAuthenticator(resolver, nil)
}

func TestAuthenticateProfile(t *testing.T) {
	authn := newAuthenticator(map[string]*schema.User{
		"u@x.com": {Email: "u@x.com", AuthProvider: "google"},
	})
	user, err := authn.AuthenticateProfile(&schema.Profile{
		Provider: "google",
		Email:    "u@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", user.Email)
}

func TestAuthenticateProfileRejectsProviderMismatch(t *testing.T) {
	authn := newAuthenticator(map[string]*schema.User{
		"u@x.com": {Email: "u@x.com", AuthProvider: "other"},
	})
	_, err := authn.AuthenticateProfile(&schema.Profile{
		Provider: "google",
		Email:    "u@x.com",
	})
	requireUnauthorized(t, err, "invalid_credentials")
}

func TestAuthenticateProfileRejectsUnknownUser(t *testing.T) {
	authn := newAuthenticator(map[string]*schema.User{})
	_, err := authn.AuthenticateProfile(&schema.Profile{
		Provider: "google",
		Email:    "nobody@x.com",
	})
	requireUnauthorized(t, err, "invalid_credentials")
}

func TestAuthenticateProfileRejectsEmptyProfile(t *testing.T) {
	authn := newAuthenticator(map[string]*schema.User{})
	_, err := authn.AuthenticateProfile(nil)
	requireUnauthorized(t, err, "invalid_credentials")

	_, err = authn.AuthenticateProfile(&schema.Profile{Provider: "google"})
	requireUnauthorized(t, err, "invalid_credentials")
}
