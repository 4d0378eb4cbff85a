package core

import (
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/soffa-projects/record-api/bus"
	"github.com/soffa-projects/record-api/util/h"
)

type App struct {
	Name    string
	Version string
	Env     *Env
}

// Authentication is the request-scoped identity produced by the authenticator.
// Unauthenticated requests still carry one with Authenticated=false.
type Authentication struct {
	Authenticated bool
	UserId        string
	Email         string
	Name          string
	Provider      string
	RoleKey       string
	Permissions   []string
	Claims        map[string]interface{}
	IpAddress     string
	UserAgent     string
	Origin        string
}

type Env struct {
	AppName    string
	AppVersion string
	Production bool
	DB         DataSource
	Token      TokenProvider
	Router     Router
	ServerPort string
}

// Ctx is created at pipeline start and discarded at pipeline end.
// It is never shared across requests.
type Ctx struct {
	Auth    *Authentication
	Env     *Env
	db      DataSource
	Wrapped interface{}
}

func NewCtx(env *Env) Ctx {
	var db DataSource
	if env != nil {
		db = env.DB
	}
	return Ctx{Env: env, db: db}
}

func NewAuthCtx(env *Env, auth *Authentication) Ctx {
	ctx := NewCtx(env)
	ctx.Auth = auth
	return ctx
}

func (ctx Ctx) CurrentDB() DataSource {
	return ctx.db
}

func (ctx Ctx) IsAuthenticated() bool {
	if ctx.Auth == nil {
		return false
	}
	return ctx.Auth.Authenticated
}

// Authenticate attaches the given identity to the underlying request so that
// later pipeline stages observe it.
func (ctx Ctx) Authenticate(auth Authentication) error {
	ctx.Auth = &Authentication{}
	if err := h.CopyAllFields(ctx.Auth, auth, true); err != nil {
		return err
	}
	e := ctx.Wrapped.(echo.Context)
	e.Set(AuthKey, ctx.Auth)
	return nil
}

func (ctx Ctx) Tx(cb func(tx Ctx) error) error {
	db := ctx.db
	if db == nil && ctx.Env != nil {
		db = ctx.Env.DB
	}
	if db == nil {
		return cb(Ctx{
			Auth:    ctx.Auth,
			Env:     ctx.Env,
			Wrapped: ctx.Wrapped,
		})
	}
	return db.Transaction(func(tx DataSource) error {
		return cb(Ctx{
			Auth:    ctx.Auth,
			db:      tx,
			Env:     ctx.Env,
			Wrapped: ctx.Wrapped,
		})
	})
}

func (ctx Ctx) Request() *http.Request {
	e := ctx.Wrapped
	if e == nil {
		return nil
	}
	return e.(echo.Context).Request()
}

func (ctx Ctx) Response() *echo.Response {
	e := ctx.Wrapped
	if e == nil {
		return nil
	}
	return e.(echo.Context).Response()
}

func (ctx Ctx) Redirect(url string) error {
	e := ctx.Wrapped
	if e == nil {
		return nil
	}
	return e.(echo.Context).Redirect(http.StatusFound, url)
}

func WrapCtx(env *Env, auth *Authentication, wrapped interface{}) Ctx {
	ctx := NewAuthCtx(env, auth)
	ctx.Wrapped = wrapped
	return ctx
}

func (a *App) Run() {
	addr := a.Env.ServerPort
	if addr == "" {
		addr = "8080"
	}
	go func() {
		_ = a.Env.Router.Start("0.0.0.0:" + addr)
	}()
	defer func() {
		_ = a.Env.Router.Shutdown()
		bus.WaitAsync()
		if a.Env.DB != nil {
			a.Env.DB.Close()
		}
	}()
	log.Infof("%s %s started on port %s", a.Name, a.Version, addr)
	gracefully()
}

func gracefully() {
	quit := make(chan os.Signal, 1)
	defer close(quit)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}
