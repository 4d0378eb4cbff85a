package adapters

import (
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/soffa-projects/record-api/auth"
	"github.com/soffa-projects/record-api/bus"
	"github.com/soffa-projects/record-api/core"
	"github.com/soffa-projects/record-api/util/h"
)

type Cfg struct {
	// FS holds db/migrations; nil skips database setup.
	FS           fs.FS
	Interceptors []core.InterceptorFunc
}

// NewApp reads configuration once at process start and wires the environment.
func NewApp(name string, version string, cfg Cfg) *core.App {
	isProduction := os.Getenv("GO_ENV") == "production"
	if !isProduction {
		err := godotenv.Load()
		if err != nil {
			log.Warn("unable to load .env file")
		}
	}

	setupLogging()

	env := &core.Env{
		AppName:    name,
		AppVersion: version,
		Production: isProduction,
		ServerPort: h.GetEnvOr(core.ServerPort, "8080"),
	}
	setupDatabase(env, cfg)
	setupTokenProvider(env)
	setupRouter(env, cfg)
	setupAuditLog()

	return &core.App{
		Name:    name,
		Version: version,
		Env:     env,
	}
}

func setupLogging() {
	level, err := log.ParseLevel(h.GetEnvOr(core.LogLevel, "info"))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func setupDatabase(env *core.Env, cfg Cfg) {
	if cfg.FS == nil {
		log.Info("no migrations provided, skipping database setup")
		return
	}
	databaseUrl := h.RequireEnv(core.DatabaseUrl)
	env.DB = NewGormAdapter(databaseUrl)
	env.DB.Migrate(cfg.FS, "migrations", core.DefaultMigrationsTable)
}

func setupTokenProvider(env *core.Env) {
	secret := h.GetEnv(core.JwtSecret)
	if secret == "" {
		// token issuance and verification will reject deterministically
		log.Warnf("env.%s is empty, token operations will fail", core.JwtSecret)
	}
	env.Token = core.NewTokenProvider(secret)
}

func setupRouter(env *core.Env, cfg Cfg) {
	env.Router = NewEchoAdapter(env, core.RouterConfig{
		Cors:             true,
		RemoveTrailSlash: true,
		BodyLimit:        "2M",
		Production:       env.Production,
		SentryDsn:        h.GetEnv(core.SentryDsn),
		AllowedOrigins:   AllowedOrigins(),
		Interceptors:     cfg.Interceptors,
	})
}

func setupAuditLog() {
	_ = bus.SubscribeAsync(bus.AuditTopic, func(payload bus.Event) error {
		if payload.Error != "" {
			log.Warnf("audit event=%s subject=%s error=%s", payload.Event, payload.Subject, payload.Error)
			return nil
		}
		log.Infof("audit event=%s subject=%s", payload.Event, payload.Subject)
		return nil
	})
}

// AllowedOrigins returns the configured origin allow-list. An empty value
// means the pipeline rejects everything.
func AllowedOrigins() []string {
	raw := h.GetEnv(core.AllowedOrigins)
	if raw == "" {
		log.Warnf("env.%s is empty, all requests will be rejected", core.AllowedOrigins)
		return []string{}
	}
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if !h.IsStrEmpty(origin) {
			origins = append(origins, strings.TrimSpace(origin))
		}
	}
	return origins
}

// GoogleConfig reads the federated provider settings.
func GoogleConfig() auth.FederatedConfig {
	return auth.FederatedConfig{
		ClientId:     h.GetEnv(core.GoogleClientId),
		ClientSecret: h.GetEnv(core.GoogleClientSecret),
		AuthUrl:      h.GetEnv(core.GoogleAuthUrl),
		TokenUrl:     h.GetEnv(core.GoogleTokenUrl),
		CallbackUrl:  h.GetEnv(core.GoogleCallbackUrl),
		UserInfoUrl:  h.GetEnv(core.GoogleUserInfoUrl),
	}
}
