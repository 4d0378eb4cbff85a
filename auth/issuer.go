package auth

import (
	"time"

	"github.com/soffa-projects/record-api/bus"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/errors"
	"github.com/soffa-projects/record-api/util/h"
)

// ClientIdClaim carries the requesting client id inside issued tokens.
const ClientIdClaim = "client_id"

// TokenIssuer mints signed, time-bounded tokens scoped to a registered client.
// It never writes to storage.
type TokenIssuer struct {
	clients  ClientRegistry
	provider core.TokenProvider
	issuer   string
}

func NewTokenIssuer(clients ClientRegistry, provider core.TokenProvider, issuer string) *TokenIssuer {
	return &TokenIssuer{clients: clients, provider: provider, issuer: issuer}
}

// Issue creates a token for an already authenticated user. The client must be
// registered with a non-empty redirect url. Expiry is now + the client's ttl.
func (i *TokenIssuer) Issue(clientId string, email string) (*schema.TokenResponse, error) {
	client, err := i.clients.FindByClientId(clientId)
	if err != nil {
		return nil, err
	}
	if client == nil || h.IsStrEmpty(client.RedirectUrl) {
		return nil, errors.ClientInvalid()
	}
	audience := clientId
	ttl := time.Duration(client.TokenTtl) * time.Second
	token, err := i.provider.Create(email, i.issuer, &audience, map[string]string{
		ClientIdClaim: clientId,
	}, ttl)
	if err != nil {
		return nil, errors.TokenSigning(err.Error())
	}
	bus.Publish(bus.AuditTopic, bus.Event{
		Subject: email,
		Event:   bus.TokenIssued,
		Data:    clientId,
	})
	return &schema.TokenResponse{Token: token}, nil
}
