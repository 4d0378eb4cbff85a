package middleware

import (
	"strings"

	"github.com/soffa-projects/record-api/auth"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/util/errors"
	"github.com/soffa-projects/record-api/util/h"
)

// Authenticated returns a filter enforcing the route's declared strategy.
// Bearer routes resolve the presented token to a stored user; failure is
// terminal for the request.
func Authenticated(authn *auth.Authenticator) core.MiddlewareFunc {
	return func(ctx core.Ctx) error {
		authz := ctx.Request().Header.Get("Authorization")
		if h.IsStrEmpty(authz) || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return errors.InvalidToken()
		}
		user, err := authn.AuthenticateToken(strings.TrimSpace(authz[7:]))
		if err != nil {
			return err
		}
		return ctx.Authenticate(core.Authentication{
			Authenticated: true,
			UserId:        h.UnwrapStr(user.Id),
			Email:         user.Email,
			Provider:      user.AuthProvider,
			RoleKey:       user.RoleKey,
			Permissions:   user.Permissions(),
		})
	}
}

// RequirePermissions returns a filter evaluating the authenticated user's
// permission set against the route's required permissions. Unauthenticated
// callers carry an empty set, which only passes wildcard or empty requirements.
func RequirePermissions(authorizer auth.Authorizer, required ...string) core.MiddlewareFunc {
	return func(ctx core.Ctx) error {
		granted := []string{}
		if ctx.IsAuthenticated() {
			granted = ctx.Auth.Permissions
		}
		if !authorizer.Authorize(granted, required) {
			return errors.NotAllowedAccess()
		}
		return nil
	}
}
