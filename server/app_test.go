package server_test

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/soffa-projects/record-api/adapters"
	"github.com/soffa-projects/record-api/auth"
	"github.com/soffa-projects/record-api/bus"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/db"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/server"
	"github.com/soffa-projects/record-api/tests"
	"github.com/soffa-projects/record-api/util/h"
	"github.com/soffa-projects/record-api/util/ids"
)

const allowedOrigin = "https://allowed.example"

var (
	setupOnce   sync.Once
	testApp     *core.App
	testIssuer  *auth.TokenIssuer
	probeCalled bool
	intercepted bool
)

type stubProvider struct{}

func (stubProvider) Name() string {
	return "google"
}

func (stubProvider) AuthCodeURL(state string) string {
	return "https://accounts.example/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (stubProvider) FetchProfile(_ context.Context, code string) (*schema.Profile, error) {
	switch code {
	case "good-code":
		return &schema.Profile{Provider: "google", ProviderId: "g-1", Email: "admin@x.com"}, nil
	case "mismatch-code":
		return &schema.Profile{Provider: "google", ProviderId: "g-2", Email: "mismatch@x.com"}, nil
	default:
		return nil, fmt.Errorf("invalid authorization code")
	}
}

func setup(t *testing.T) tests.HttpExpect {
	setupOnce.Do(func() {
		tests.UseInMemoryDatabase()
		_ = os.Setenv(core.AllowedOrigins, allowedOrigin)
		_ = os.Setenv(core.JwtSecret, "test-secret")
		_ = os.Setenv(core.JwtIssuer, "record-api")

		testApp = adapters.NewApp("record-api", "test", adapters.Cfg{
			FS: db.FS,
			Interceptors: []core.InterceptorFunc{
				func(ctx core.Ctx) (bool, error) {
					if ctx.Request().Header.Get("X-Intercept") == "" {
						return false, nil
					}
					intercepted = true
					ctx.Response().WriteHeader(http.StatusNoContent)
					return true, nil
				},
			},
		})
		env := testApp.Env

		registry := auth.NewClientRegistry(env.DB)
		resolver := auth.NewIdentityResolver(env.DB)
		authz := auth.NewAuthorizer()
		testIssuer = auth.NewTokenIssuer(registry, env.Token, "record-api")
		verifier := auth.NewTokenVerifier(resolver, env.Token, "record-api")
		authn := auth.NewAuthenticator(resolver, verifier)

		server.RegisterRoutes(env, stubProvider{}, registry, authn, authz, testIssuer)
		env.Router.GET("/probe", func(ctx core.Ctx) (any, error) {
			probeCalled = true
			return map[string]string{"status": "ok"}, nil
		})

		seed(env)
	})
	return tests.HttpTest(t, testApp.Env.Router.Handler(), bus.WaitAsync)
}

func seed(env *core.Env) {
	mustCreate(env, &schema.AuthClient{
		Id:          ids.NewIdPtr("acl"),
		ClientId:    "web",
		Secret:      "s3cret",
		RedirectUrl: "https://app.example/callback",
		TokenTtl:    3600,
	})
	mustCreate(env, &schema.Role{
		Id:          ids.NewIdPtr("rol"),
		Key:         "empty",
		Name:        "No permissions",
		Permissions: schema.StringList{},
	})
	mustCreate(env, &schema.User{
		Id:           ids.NewIdPtr("usr"),
		FirstName:    "Ada",
		Email:        "admin@x.com",
		AuthProvider: "google",
		RoleKey:      "admin",
	})
	mustCreate(env, &schema.User{
		Id:           ids.NewIdPtr("usr"),
		FirstName:    "Vic",
		Email:        "viewer@x.com",
		AuthProvider: "google",
		RoleKey:      "empty",
	})
	mustCreate(env, &schema.User{
		Id:           ids.NewIdPtr("usr"),
		FirstName:    "Mia",
		Email:        "mismatch@x.com",
		AuthProvider: "other",
		RoleKey:      "admin",
	})
}

func mustCreate(env *core.Env, target any) {
	if err := env.DB.Create(target); err != nil {
		panic(err)
	}
}

func tokenFor(t *testing.T, email string) string {
	t.Helper()
	res, err := testIssuer.Issue("web", email)
	if err != nil {
		t.Fatalf("unable to issue token: %v", err)
	}
	return res.Token
}

func TestOriginGateRejectsBeforeRouting(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	probeCalled = false
	app.GET("/probe").Origin("https://evil.example").Expect().
		IsForbidden().
		JSON().Object().Path("$.kind").String().IsEqual("error.origin_not_allowed")
	if probeCalled {
		t.Fatal("handler invoked despite disallowed origin")
	}

	app.GET("/probe").Expect().IsForbidden()
	if probeCalled {
		t.Fatal("handler invoked despite missing origin header")
	}

	app.GET("/probe").Origin(allowedOrigin).Expect().IsOK()
	if !probeCalled {
		t.Fatal("handler not invoked for allowed origin")
	}
}

func TestUnknownRoute(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/nope").Origin(allowedOrigin).Expect().
		IsNotFound().
		JSON().Object().Path("$.message").String().IsEqual("route_not_found")
}

func TestInterceptorStopsPipeline(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	probeCalled = false
	intercepted = false
	app.GET("/probe").Origin(allowedOrigin).Header("X-Intercept", "1").Expect().
		Status(http.StatusNoContent)
	if !intercepted {
		t.Fatal("interceptor not invoked")
	}
	if probeCalled {
		t.Fatal("handler invoked despite interceptor handling the request")
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/users").Origin(allowedOrigin).Expect().
		IsUnauthorized().
		JSON().Object().Path("$.message").String().IsEqual("invalid_token")
}

func TestProtectedRouteRejectsForgedToken(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/users").Origin(allowedOrigin).BearerAuth("forged.token.value").Expect().
		IsUnauthorized()
}

func TestPermissionDenied(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	token := tokenFor(t, "viewer@x.com")
	app.GET("/users").Origin(allowedOrigin).BearerAuth(token).Expect().
		IsForbidden().
		JSON().Object().Path("$.message").String().IsEqual("not_allowed_access")
}

func TestFederatedLoginRoundTrip(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	token := app.GET("/auth/google-auth-redirect").
		Origin(allowedOrigin).
		Params(map[string]string{"code": "good-code", "state": "client_id=web"}).
		Expect().
		IsOK().
		JSON().Object().Path("$.token").String().NotEmpty().Raw()

	app.GET("/users").Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Object().Path("$.data").Array().NotEmpty()
}

func TestFederatedLoginRejectsProviderMismatch(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google-auth-redirect").
		Origin(allowedOrigin).
		Params(map[string]string{"code": "mismatch-code", "state": "client_id=web"}).
		Expect().
		IsUnauthorized().
		JSON().Object().Path("$.message").String().IsEqual("invalid_credentials")
}

func TestFederatedLoginRejectsBadCode(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google-auth-redirect").
		Origin(allowedOrigin).
		Params(map[string]string{"code": "wrong", "state": "client_id=web"}).
		Expect().
		IsUnauthorized()
}

func TestCallbackRequiresClientInState(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google-auth-redirect").
		Origin(allowedOrigin).
		Params(map[string]string{"code": "good-code", "state": "foo=bar"}).
		Expect().
		IsUnauthorized().
		JSON().Object().Path("$.message").String().IsEqual("client_invalid")
}

func TestCallbackRejectsUnknownClient(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google-auth-redirect").
		Origin(allowedOrigin).
		Params(map[string]string{"code": "good-code", "state": "client_id=ghost"}).
		Expect().
		IsUnauthorized().
		JSON().Object().Path("$.message").String().IsEqual("client_invalid")
}

func TestLoginValidatesInput(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google").Origin(allowedOrigin).Expect().IsBadRequest()
}

func TestLoginRejectsUnknownClient(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google").
		Origin(allowedOrigin).
		Params(map[string]string{"client_id": "ghost"}).
		Expect().
		IsUnauthorized().
		JSON().Object().Path("$.message").String().IsEqual("client_invalid")
}

func TestLoginRejectsWrongClientSecret(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	app.GET("/auth/google").
		Origin(allowedOrigin).
		Params(map[string]string{"client_id": "web", "client_secret": "nope"}).
		Expect().
		IsUnauthorized().
		JSON().Object().Path("$.message").String().IsEqual("client_invalid")
}

func TestResourceCount(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	token := tokenFor(t, "admin@x.com")
	app.GET("/users/count").Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Object().Path("$.count").Number().Gt(0)

	app.GET("/users").Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Object().Path("$.total").Number().Gt(0)
}

func TestCustomerLifecycle(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	token := tokenFor(t, "admin@x.com")

	id := app.POST("/customers", h.Map{"name": "Acme"}).
		Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Object().Path("$.id").String().HasPrefix("cus_").Raw()

	app.GET("/customers/"+id).Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Object().Path("$.name").String().IsEqual("Acme")

	app.PATCH("/customers/"+id, h.Map{"name": "Acme Rockets"}).
		Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Object().Path("$.name").String().IsEqual("Acme Rockets")

	app.DELETE("/customers/"+id).Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK()

	app.GET("/customers/"+id).Origin(allowedOrigin).BearerAuth(token).Expect().
		IsNotFound()

	app.DELETE("/customers/"+id).Origin(allowedOrigin).BearerAuth(token).Expect().
		IsNotFound().
		JSON().Object().Path("$.message").String().IsEqual("record_not_found")
}

func TestClientSecretNeverSerialized(t *testing.T) {
	app := setup(t)
	defer app.Teardown()

	token := tokenFor(t, "admin@x.com")
	app.GET("/auth-clients").Origin(allowedOrigin).BearerAuth(token).Expect().
		IsOK().
		JSON().Path("$.data[0]").Object().
		ContainsKey("client_id").
		NotContainsKey("secret")
}
