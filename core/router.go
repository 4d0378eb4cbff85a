package core

import (
	"net/http"
)

type Router interface {
	BaseRouter
	Handler() http.Handler
	Start(addr string) error
	Shutdown() error
	Group(path string, filters ...MiddlewareFunc) BaseRouter
}

type BaseRouter interface {
	POST(path string, handler any, filters ...MiddlewareFunc)
	PUT(path string, handler any, filters ...MiddlewareFunc)
	PATCH(path string, handler any, filters ...MiddlewareFunc)
	GET(path string, handler any, filters ...MiddlewareFunc)
	DELETE(path string, handler any, filters ...MiddlewareFunc)
}

type RouterConfig struct {
	Cors             bool
	RemoveTrailSlash bool
	BodyLimit        string
	Production       bool
	SentryDsn        string
	// AllowedOrigins is the origin allow-list enforced before any other
	// stage. Empty means fail closed: every request is rejected.
	AllowedOrigins []string
	// Interceptors run after the origin gate. A handled result ends the
	// pipeline without reaching later stages.
	Interceptors []InterceptorFunc
	OnShutdown   func()
}

// MiddlewareFunc is a per-route filter. Returning an error short-circuits
// every later pipeline stage.
type MiddlewareFunc func(ctx Ctx) error

// InterceptorFunc reports whether it fully handled the request.
type InterceptorFunc func(ctx Ctx) (bool, error)
