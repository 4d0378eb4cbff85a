package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/dates"
	"github.com/soffa-projects/record-api/util/errors"
	"github.com/soffa-projects/record-api/util/h"
)

// TokenVerifier validates presented bearer tokens and resolves them to a
// stored user. No claim is trusted before the signature check passes.
type TokenVerifier struct {
	users    IdentityResolver
	provider core.TokenProvider
	issuer   string
}

func NewTokenVerifier(users IdentityResolver, provider core.TokenProvider, issuer string) *TokenVerifier {
	return &TokenVerifier{users: users, provider: provider, issuer: issuer}
}

func (v *TokenVerifier) Verify(raw string) (*schema.User, error) {
	secret := v.provider.SigningKey()
	if secret == "" {
		return nil, errors.InvalidToken()
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithoutClaimsValidation())
	if err != nil || !token.Valid {
		return nil, errors.InvalidToken()
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.InvalidToken()
	}

	issuer, err := claims.GetIssuer()
	if err != nil || issuer != v.issuer {
		return nil, errors.InvalidToken()
	}
	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return nil, errors.InvalidToken()
	}
	// the boundary is inclusive: a token expiring exactly now is already dead
	if !dates.Now().Before(expiry.Time) {
		return nil, errors.InvalidToken()
	}
	audience, err := claims.GetAudience()
	if err != nil {
		return nil, errors.InvalidToken()
	}
	claim, _ := h.MapLookup(claims, ClientIdClaim)
	clientId, _ := claim.(string)
	if clientId == "" || !h.Contains(audience, clientId) {
		return nil, errors.InvalidToken()
	}
	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, errors.InvalidToken()
	}

	user, err := v.users.FindByEmail(subject)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.UnknownSubject()
	}
	return user, nil
}
