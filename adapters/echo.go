package adapters

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/soffa-projects/record-api/bus"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/schema"
	"github.com/soffa-projects/record-api/util/dates"
	"github.com/soffa-projects/record-api/util/errors"
	"github.com/soffa-projects/record-api/util/h"
)

var validate *validator.Validate

//goland:noinspection GoTypeAssertionOnErrors
func Bind(c echo.Context, input interface{}) error {

	binder := &echo.DefaultBinder{}
	if err := binder.Bind(input, c); err != nil {
		return errors.BadRequest("invalid_request_payload", err.Error())
	}
	if err := binder.BindHeaders(c, input); err != nil {
		return errors.BadRequest("invalid_request_payload", err.Error())
	}

	if err := validate.Struct(input); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errs := map[string]string{}
		for _, e := range validationErrors {
			errs[e.Field()] = e.Tag()
		}
		return errors.BadRequest("validation_failed", errs)
	}

	return nil
}

// =================================================================================
// ECHO ROUTER ADAPTER
// =================================================================================

type echoRouterAdapter struct {
	core.Router
	e   *echo.Echo
	env *core.Env
}

// NewEchoAdapter builds the request pipeline. Stage order is fixed:
// origin gate, interceptors, route matching, binding, authentication,
// authorization, invocation, response emission. The first failing stage
// short-circuits the rest, and every failure is mapped and logged exactly
// once at the boundary.
func NewEchoAdapter(env *core.Env, config core.RouterConfig) core.Router {
	e := echo.New()
	e.HideBanner = true
	e.IPExtractor = echo.ExtractIPFromXFFHeader()

	adapter := &echoRouterAdapter{e: e, env: env}

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		_ = mapHttpResponse(err, c)
	}

	// every request starts with an anonymous identity
	e.Pre(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ipAddress := c.RealIP()
			if h.IsStrEmpty(ipAddress) {
				ipAddress = c.Request().RemoteAddr
			}
			if h.IsStrEmpty(ipAddress) {
				ipAddress = "0.0.0.0"
			}
			auth := &core.Authentication{
				Authenticated: false,
				IpAddress:     ipAddress,
				UserAgent:     c.Request().UserAgent(),
				Origin:        requestOrigin(c),
			}
			c.Set(core.AuthKey, auth)
			return next(c)
		}
	})
	e.Pre(requestLogger())
	e.Pre(originGate(config.AllowedOrigins))
	if len(config.Interceptors) > 0 {
		e.Pre(adapter.interceptorFilter(config.Interceptors))
	}

	e.Use(middleware.RequestID())
	if config.Cors {
		e.Use(middleware.CORS())
	}
	e.Use(middleware.Recover())
	if config.SentryDsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn: config.SentryDsn,
		}); err != nil {
			fmt.Printf("Sentry initialization failed: %v\n", err)
		}
		e.Use(sentryecho.New(sentryecho.Options{}))
	}
	if config.BodyLimit != "" {
		e.Use(middleware.BodyLimit(config.BodyLimit))
	}
	if config.RemoveTrailSlash {
		e.Pre(middleware.RemoveTrailingSlash())
	}

	e.GET("/health", func(c echo.Context) error {
		status := schema.NewHealthStatus()
		if env.DB != nil {
			status.SetComponentStatus("database", env.DB.Ping())
		}
		return c.JSON(http.StatusOK, status)
	})

	return adapter
}

func requestOrigin(c echo.Context) string {
	origin := c.Request().Header.Get("Origin")
	if origin == "" {
		origin = c.Request().Header.Get("Referer")
	}
	return origin
}

// originGate rejects before any other stage, including route matching. An
// empty allow-list fails closed.
func originGate(allowed []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := requestOrigin(c)
			if h.IsStrEmpty(origin) || !h.Contains(allowed, origin) {
				return errors.OriginNotAllowed()
			}
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log.Infof("request start time=%s origin=%s user_agent=%s ip=%s",
				dates.Now().Format("15:04:05"), requestOrigin(c), c.Request().UserAgent(), c.RealIP())
			err := next(c)
			if err == nil {
				log.Infof("request end time=%s", dates.Now().Format("15:04:05"))
			}
			return err
		}
	}
}

func (r *echoRouterAdapter) interceptorFilter(interceptors []core.InterceptorFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, interceptor := range interceptors {
				handled, err := interceptor(r.routeContext(c))
				if err != nil {
					return err
				}
				if handled {
					return nil
				}
			}
			return next(c)
		}
	}
}

func (r *echoRouterAdapter) Handler() http.Handler {
	return r.e
}

func (r *echoRouterAdapter) Start(addr string) error {
	return r.e.Start(addr)
}

func (r *echoRouterAdapter) Shutdown() error {
	return r.e.Shutdown(context.Background())
}

func (r *echoRouterAdapter) GET(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodGet, path, handler, filters)
}

func (r *echoRouterAdapter) POST(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodPost, path, handler, filters)
}

func (r *echoRouterAdapter) PUT(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodPut, path, handler, filters)
}

func (r *echoRouterAdapter) PATCH(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodPatch, path, handler, filters)
}

func (r *echoRouterAdapter) DELETE(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodDelete, path, handler, filters)
}

func (r *echoRouterAdapter) request(method string, path string, handler interface{}, filters []core.MiddlewareFunc) {
	r.e.Match([]string{method}, path, func(c echo.Context) (err error) {
		defer func() {
			if err0 := recover(); err0 != nil {
				err = asError(err0)
				_ = mapHttpResponse(err, c)
			}
		}()
		if err0 := r.handleRequest(c, handler); err0 != nil {
			_ = mapHttpResponse(err0, c)
			return err0
		}
		return nil
	}, r.createMiddlewares(filters)...)
}

func (r *echoRouterAdapter) Group(path string, filters ...core.MiddlewareFunc) core.BaseRouter {
	return &echoGroupRoute{
		parent: r,
		g:      r.e.Group(path, r.createMiddlewares(filters)...),
	}
}

// =================================================================================
// ECHO GROUP ROUTE
// =================================================================================

type echoGroupRoute struct {
	core.BaseRouter
	parent *echoRouterAdapter
	g      *echo.Group
}

func (r *echoGroupRoute) GET(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodGet, path, handler, filters)
}

func (r *echoGroupRoute) POST(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodPost, path, handler, filters)
}

func (r *echoGroupRoute) PUT(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodPut, path, handler, filters)
}

func (r *echoGroupRoute) PATCH(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodPatch, path, handler, filters)
}

func (r *echoGroupRoute) DELETE(path string, handler interface{}, filters ...core.MiddlewareFunc) {
	r.request(http.MethodDelete, path, handler, filters)
}

func (r *echoGroupRoute) request(method string, path string, handler interface{}, filters []core.MiddlewareFunc) {
	r.g.Match([]string{method}, path, func(c echo.Context) (err error) {
		defer func() {
			if err0 := recover(); err0 != nil {
				err = asError(err0)
				_ = mapHttpResponse(err, c)
			}
		}()
		if err0 := r.parent.handleRequest(c, handler); err0 != nil {
			_ = mapHttpResponse(err0, c)
			return err0
		}
		return nil
	}, r.parent.createMiddlewares(filters)...)
}

// =================================================================================
// GENERIC HANDLER
// =================================================================================

//goland:noinspection GoTypeAssertionOnErrors
func (r *echoRouterAdapter) handleRequest(c echo.Context, handler interface{}) (err error) {
	var result interface{}

	handlerType := reflect.TypeOf(handler)

	if handlerType.Kind() != reflect.Func {
		return fmt.Errorf("controller method is not a function")
	}

	numIn := handlerType.NumIn()
	if numIn == 0 {
		return fmt.Errorf("controller method must have at least one argument (core.Ctx)")
	}
	if numIn > 2 {
		return fmt.Errorf("controller method must have at most two arguments (core.Ctx, input binding)")
	}

	firstArgType := handlerType.In(0)

	if firstArgType != reflect.TypeOf(core.Ctx{}) {
		return fmt.Errorf("handler must be a function with the first argument of type core.Ctx")
	}

	ctx := r.routeContext(c)

	return ctx.Tx(func(tx core.Ctx) error {

		args := []reflect.Value{reflect.ValueOf(tx)}

		if numIn == 2 {
			inputType := handlerType.In(1)
			inputValue := reflect.New(inputType).Elem()
			modelInput := inputValue.Addr().Interface()
			if err = Bind(c, modelInput); err != nil {
				return err
			}
			args = append(args, inputValue)
		}

		handlerValue := reflect.ValueOf(handler)

		res := handlerValue.Call(args)

		if len(res) == 1 {
			result = res[0].Interface()
		} else if len(res) == 2 {
			if res[1].IsNil() {
				result = res[0].Interface()
			} else {
				return res[1].Interface().(error)
			}
		} else {
			return fmt.Errorf("invalid handler return type")
		}

		if c.Response().Committed {
			return nil
		}
		return c.JSON(http.StatusOK, result)
	})
}

// mapHttpResponse is the single boundary where failures are logged and
// converted to a status-coded rejection. No stack traces or internal state
// leave the process.
//
//goland:noinspection GoTypeAssertionOnErrors
func mapHttpResponse(err error, c echo.Context) error {
	log.Errorf("request error time=%s uri=%s -- %v",
		dates.Now().Format("15:04:05"), c.Request().RequestURI, err.Error())
	if e, ok := err.(*errors.OriginNotAllowedError); ok {
		return c.JSON(http.StatusForbidden, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
		})
	}
	if e, ok := err.(*errors.FunctionalError); ok {
		return c.JSON(http.StatusBadRequest, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
			Errors:  e.Details,
		})
	}
	if e, ok := err.(*errors.UnauthorizedError); ok {
		publishRejection(c, e.Message)
		return c.JSON(http.StatusUnauthorized, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
		})
	}
	if e, ok := err.(*errors.ForbiddenError); ok {
		publishRejection(c, e.Message)
		return c.JSON(http.StatusForbidden, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
		})
	}
	if e, ok := err.(*errors.ResourceNotFoundError); ok {
		return c.JSON(http.StatusNotFound, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
		})
	}
	if e, ok := err.(*errors.ConflictError); ok {
		return c.JSON(http.StatusConflict, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
		})
	}
	if e, ok := err.(*errors.TechnicalError); ok {
		// server faults keep their internal detail out of the response
		return c.JSON(http.StatusInternalServerError, schema.ErrorResponse{
			Kind:    e.Kind,
			Message: e.Message,
		})
	}
	if httpErr, ok := err.(*echo.HTTPError); ok {
		if httpErr.Code == http.StatusNotFound || httpErr.Code == http.StatusMethodNotAllowed {
			e := errors.RouteNotFound().(*errors.ResourceNotFoundError)
			return c.JSON(http.StatusNotFound, schema.ErrorResponse{
				Kind:    e.Kind,
				Message: e.Message,
			})
		}
		return c.JSON(httpErr.Code, httpErr.Message)
	}
	return c.JSON(http.StatusInternalServerError, schema.ErrorResponse{
		Kind:    "error.technical",
		Message: "internal_error",
	})
}

func publishRejection(c echo.Context, reason string) {
	subject := ""
	if auth, ok := c.Get(core.AuthKey).(*core.Authentication); ok {
		subject = auth.Email
	}
	bus.Publish(bus.AuditTopic, bus.Event{
		Subject: subject,
		Event:   bus.AuthRejected,
		Error:   reason,
		Data:    c.Request().RequestURI,
	})
}

func asError(value any) error {
	if err, ok := value.(error); ok {
		return err
	}
	return fmt.Errorf("%v", value)
}

// =================================================================================
// INIT
// =================================================================================

func (r *echoRouterAdapter) createMiddlewares(filters []core.MiddlewareFunc) []echo.MiddlewareFunc {
	middlewares := make([]echo.MiddlewareFunc, 0)
	for _, filter := range filters {
		filter := filter
		middlewares = append(middlewares, func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if err := filter(r.routeContext(c)); err != nil {
					_ = mapHttpResponse(err, c)
					return err
				}
				return next(c)
			}
		})
	}
	return middlewares
}

func (r *echoRouterAdapter) routeContext(c echo.Context) core.Ctx {
	value := c.Get(core.AuthKey)
	if value == nil {
		return core.WrapCtx(r.env, nil, c)
	}
	auth := value.(*core.Authentication)
	return core.WrapCtx(r.env, auth, c)
}

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
