package handlers

import (
	"net/url"

	"github.com/soffa-projects/record-api/auth"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/errors"
	"github.com/soffa-projects/record-api/util/h"
)

// AuthHandler drives the federated login exchange: it sends the caller to
// the provider, then trades the returned code for a signed bearer token.
type AuthHandler struct {
	provider auth.Provider
	clients  auth.ClientRegistry
	authn    *auth.Authenticator
	issuer   *auth.TokenIssuer
}

func NewAuthHandler(provider auth.Provider, clients auth.ClientRegistry, authn *auth.Authenticator, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{provider: provider, clients: clients, authn: authn, issuer: issuer}
}

// Login authenticates the calling client, then redirects to the provider.
// The originating client id travels in the state string as key=value pairs
// joined by '&'.
func (hd *AuthHandler) Login(ctx core.Ctx, input schema.LoginInput) (any, error) {
	client, err := hd.clients.FindByClientId(input.ClientId)
	if err != nil {
		return nil, err
	}
	if client == nil || h.IsStrEmpty(client.RedirectUrl) {
		return nil, errors.ClientInvalid()
	}
	if !h.IsStrEmpty(input.ClientSecret) && input.ClientSecret != client.Secret {
		return nil, errors.ClientInvalid()
	}
	query := ctx.Request().URL.Query()
	pairs := url.Values{}
	for key := range query {
		pairs.Set(key, query.Get(key))
	}
	state := pairs.Encode()
	return nil, ctx.Redirect(hd.provider.AuthCodeURL(state))
}

// Callback completes the exchange: code -> provider profile -> local user ->
// signed token scoped to the client extracted from state.
func (hd *AuthHandler) Callback(ctx core.Ctx, input schema.CallbackInput) (*schema.TokenResponse, error) {
	state, err := url.ParseQuery(input.State)
	if err != nil {
		return nil, errors.ClientInvalid()
	}
	clientId := state.Get("client_id")
	if h.IsStrEmpty(clientId) {
		return nil, errors.ClientInvalid()
	}
	profile, err := hd.provider.FetchProfile(ctx.Request().Context(), input.Code)
	if err != nil {
		return nil, errors.InvalidCredentials(err.Error())
	}
	user, err := hd.authn.AuthenticateProfile(profile)
	if err != nil {
		return nil, err
	}
	return hd.issuer.Issue(clientId, user.Email)
}
