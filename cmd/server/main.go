package main

import (
	log "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/soffa-projects/record-api/adapters"
	"github.com/soffa-projects/record-api/auth"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/db"
	"github.com/soffa-projects/record-api/server"
	"github.com/soffa-projects/record-api/util/h"
)

const appName = "record-api"
const appVersion = "1.0.0"

// The composition root: collaborators are resolved here once at startup and
// passed around as explicit interface parameters.
func main() {
	app := adapters.NewApp(appName, appVersion, adapters.Cfg{FS: db.FS})

	container := dig.New()
	providers := []any{
		func() *core.Env { return app.Env },
		func(env *core.Env) core.DataSource { return env.DB },
		func(env *core.Env) core.TokenProvider { return env.Token },
		auth.NewClientRegistry,
		auth.NewIdentityResolver,
		auth.NewAuthorizer,
		func(clients auth.ClientRegistry, provider core.TokenProvider) *auth.TokenIssuer {
			return auth.NewTokenIssuer(clients, provider, h.GetEnv(core.JwtIssuer))
		},
		func(users auth.IdentityResolver, provider core.TokenProvider) *auth.TokenVerifier {
			return auth.NewTokenVerifier(users, provider, h.GetEnv(core.JwtIssuer))
		},
		auth.NewAuthenticator,
		func() auth.Provider { return auth.NewGoogleProvider(adapters.GoogleConfig()) },
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			log.Fatalf("failed to build container: %v", err)
		}
	}
	if err := container.Invoke(server.RegisterRoutes); err != nil {
		log.Fatalf("failed to register routes: %v", err)
	}

	app.Run()
}
