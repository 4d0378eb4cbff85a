package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/errors"
)

const testIssuer = "record-api"
const testSecret = "test-secret"

func newFixture(ttl int64) (*TokenIssuer, *TokenVerifier) {
	registry := &fakeRegistry{clients: map[string]*schema.AuthClient{
		"web": {
			Id:          newId("acl_web"),
			ClientId:    "web",
			Secret:      "s3cret",
			RedirectUrl: "https://app.example/callback",
			TokenTtl:    ttl,
		},
		"broken": {
			Id:       newId("acl_broken"),
			ClientId: "broken",
			Secret:   "s3cret",
			TokenTtl: ttl,
		},
	}}
	resolver := &fakeResolver{users: map[string]*schema.User{
		"u@x.com": {
			Id:           newId("usr_1"),
			FirstName:    "Jane",
			Email:        "u@x.com",
			AuthProvider: "google",
			RoleKey:      "admin",
			Role: &schema.Role{
				Id:          newId("rol_admin"),
				Key:         "admin",
				Permissions: schema.StringList{"view_users", "manage_users"},
			},
		},
	}}
	provider := core.NewTokenProvider(testSecret)
	issuer := NewTokenIssuer(registry, provider, testIssuer)
	verifier := NewTokenVerifier(resolver, provider, testIssuer)
	return issuer, verifier
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer, verifier := newFixture(3600)

	res, err := issuer.Issue("web", "u@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	user, err := verifier.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u@x.com", user.Email)
	assert.Equal(t, "admin", user.RoleKey)
	assert.Contains(t, user.Permissions(), "view_users")
}

func TestIssueRejectsUnknownClient(t *testing.T) {
	issuer, _ := newFixture(3600)
	_, err := issuer.Issue("nope", "u@x.com")
	requireUnauthorized(t, err, "client_invalid")
}

func TestIssueRejectsClientWithoutRedirectUrl(t *testing.T) {
	issuer, _ := newFixture(3600)
	_, err := issuer.Issue("broken", "u@x.com")
	requireUnauthorized(t, err, "client_invalid")
}

func TestIssueFailsWithoutSigningKey(t *testing.T) {
	registry := &fakeRegistry{clients: map[string]*schema.AuthClient{
		"web": {ClientId: "web", RedirectUrl: "https://app.example", TokenTtl: 3600},
	}}
	issuer := NewTokenIssuer(registry, core.NewTokenProvider(""), testIssuer)
	_, err := issuer.Issue("web", "u@x.com")
	require.Error(t, err)
	e, ok := err.(*errors.TechnicalError)
	require.True(t, ok)
	assert.Equal(t, "token_signing_error", e.Message)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	issuer, verifier := newFixture(3600)
	res, err := issuer.Issue("web", "u@x.com")
	require.NoError(t, err)

	last := "A"
	if res.Token[len(res.Token)-1] == 'A' {
		last = "B"
	}
	tampered := res.Token[:len(res.Token)-1] + last
	_, err = verifier.Verify(tampered)
	requireUnauthorized(t, err, "invalid_token")
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, verifier := newFixture(3600)
	_, err := verifier.Verify("not-a-token")
	requireUnauthorized(t, err, "invalid_token")
}

func TestVerifyRejectsForeignIssuer(t *testing.T) {
	issuer, _ := newFixture(3600)
	res, err := issuer.Issue("web", "u@x.com")
	require.NoError(t, err)

	other := NewTokenVerifier(&fakeResolver{}, core.NewTokenProvider(testSecret), "someone-else")
	_, err = other.Verify(res.Token)
	requireUnauthorized(t, err, "invalid_token")
}

// A token whose expiry equals now must already be rejected.
func TestVerifyExpiryBoundaryIsInclusive(t *testing.T) {
	issuer, verifier := newFixture(0)
	res, err := issuer.Issue("web", "u@x.com")
	require.NoError(t, err)

	_, err = verifier.Verify(res.Token)
	requireUnauthorized(t, err, "invalid_token")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	_, verifier := newFixture(3600)
	token := signToken(t, jwt.MapClaims{
		"sub":       "u@x.com",
		"aud":       "web",
		"iss":       testIssuer,
		"iat":       time.Now().Add(-2 * time.Hour).Unix(),
		"exp":       time.Now().Add(-1 * time.Hour).Unix(),
		"client_id": "web",
	})
	_, err := verifier.Verify(token)
	requireUnauthorized(t, err, "invalid_token")
}

func TestVerifyRejectsMissingClientClaim(t *testing.T) {
	_, verifier := newFixture(3600)
	token := signToken(t, jwt.MapClaims{
		"sub": "u@x.com",
		"aud": "web",
		"iss": testIssuer,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	_, err := verifier.Verify(token)
	requireUnauthorized(t, err, "invalid_token")
}

func TestVerifyRejectsUnknownSubject(t *testing.T) {
	issuer, _ := newFixture(3600)
	res, err := issuer.Issue("web", "u@x.com")
	require.NoError(t, err)

	verifier := NewTokenVerifier(&fakeResolver{}, core.NewTokenProvider(testSecret), testIssuer)
	_, err = verifier.Verify(res.Token)
	requireUnauthorized(t, err, "unknown_subject")
}

func TestVerifyFailsWithoutSigningKey(t *testing.T) {
	issuer, _ := newFixture(3600)
	res, err := issuer.Issue("web", "u@x.com")
	require.NoError(t, err)

	verifier := NewTokenVerifier(&fakeResolver{}, core.NewTokenProvider(""), testIssuer)
	_, err = verifier.Verify(res.Token)
	requireUnauthorized(t, err, "invalid_token")
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
