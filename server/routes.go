package server

import (
	"github.com/soffa-projects/record-api/auth"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/handlers"
	"github.com/soffa-projects/record-api/middleware"
	"github.com/soffa-projects/record-api/schema"
)

// RegisterRoutes binds every operation to the pipeline with its declared
// authentication strategy and required permissions. Login entry points are
// wildcard routes: reachable without a granted permission set.
func RegisterRoutes(
	env *core.Env,
	provider auth.Provider,
	registry auth.ClientRegistry,
	authn *auth.Authenticator,
	authz auth.Authorizer,
	issuer *auth.TokenIssuer,
) {
	r := env.Router
	authHandler := handlers.NewAuthHandler(provider, registry, authn, issuer)
	public := middleware.RequirePermissions(authz, auth.WildcardPermission)

	r.GET("/auth/google", authHandler.Login, public)
	r.GET("/auth/google-auth-redirect", authHandler.Callback, public)

	authenticated := middleware.Authenticated(authn)
	require := func(permission string) core.MiddlewareFunc {
		return middleware.RequirePermissions(authz, permission)
	}

	users := r.Group("/users", authenticated)
	handlers.CRUD[schema.User, schema.CreateUserInput, schema.UpdateUserInput](
		users, require(schema.ViewUsers), require(schema.ManageUsers))

	roles := r.Group("/roles", authenticated)
	handlers.CRUD[schema.Role, schema.CreateRoleInput, schema.UpdateRoleInput](
		roles, require(schema.ViewRoles), require(schema.ManageRoles))

	customers := r.Group("/customers", authenticated)
	handlers.CRUD[schema.Customer, schema.CreateCustomerInput, schema.UpdateCustomerInput](
		customers, require(schema.ViewCustomers), require(schema.ManageCustomers))

	clients := r.Group("/auth-clients", authenticated)
	handlers.CRUD[schema.AuthClient, schema.CreateAuthClientInput, schema.UpdateAuthClientInput](
		clients, require(schema.ManageClients), require(schema.ManageClients))
}
