package core

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/soffa-projects/record-api/util/dates"
)

type TokenProvider interface {
	Create(subject string, issuer string, audience *string, claims map[string]string, ttl time.Duration) (string, error)
	SigningKey() string
}

type DefaultTokenProvider struct {
	secret string
}

func NewTokenProvider(secret string) TokenProvider {
	return &DefaultTokenProvider{secret: secret}
}

func (p *DefaultTokenProvider) SigningKey() string {
	return p.secret
}

func (p *DefaultTokenProvider) Create(subject string, issuer string, audience *string, clms map[string]string, ttl time.Duration) (string, error) {
	if p.secret == "" {
		return "", fmt.Errorf("missing signing key")
	}
	claims := jwt.MapClaims{}
	claims["sub"] = subject
	if audience != nil {
		claims["aud"] = *audience
	}
	if issuer != "" {
		claims["iss"] = issuer
	}
	claims["iat"] = dates.Now().Unix()
	claims["exp"] = dates.NowPlus(ttl).Unix()
	for k, v := range clms {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(p.secret))
}
