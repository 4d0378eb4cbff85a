package auth

import (
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/errors"
)

type Strategy string

const (
	// StrategyFederated authenticates a provider profile obtained from a
	// federated login exchange.
	StrategyFederated Strategy = "federated"
	// StrategyBearer authenticates a previously issued bearer token.
	StrategyBearer Strategy = "bearer"
)

// Authenticator produces the same user shape for both strategies so that
// authorization stays strategy-agnostic.
type Authenticator struct {
	users    IdentityResolver
	verifier *TokenVerifier
}

func NewAuthenticator(users IdentityResolver, verifier *TokenVerifier) *Authenticator {
	return &Authenticator{users: users, verifier: verifier}
}

func (a *Authenticator) AuthenticateToken(raw string) (*schema.User, error) {
	return a.verifier.Verify(raw)
}

func (a *Authenticator) AuthenticateProfile(profile *schema.Profile) (*schema.User, error) {
	if profile == nil || profile.Email == "" {
		return nil, errors.InvalidCredentials()
	}
	user, err := a.users.FindByEmail(profile.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.AuthProvider != profile.Provider {
		return nil, errors.InvalidCredentials()
	}
	return user, nil
}
