package core

// AuthKey is the request-scoped key holding the Authentication value.
const AuthKey = "user"

const (
	AllowedOrigins      = "ALLOWED_ORIGINS"
	DatabaseUrl         = "DATABASE_URL"
	JwtSecret           = "JWT_SECRET"
	JwtIssuer           = "JWT_ISSUER"
	ServerPort          = "PORT"
	LogLevel            = "LOG_LEVEL"
	SentryDsn           = "SENTRY_DSN"
	GoogleClientId      = "GOOGLE_AUTH_CLIENT_ID"
	GoogleClientSecret  = "GOOGLE_AUTH_CLIENT_SECRET"
	GoogleAuthUrl       = "GOOGLE_AUTH_URL"
	GoogleTokenUrl      = "GOOGLE_AUTH_TOKEN_URL"
	GoogleCallbackUrl   = "GOOGLE_AUTH_CALLBACK_URL"
	GoogleUserInfoUrl   = "GOOGLE_AUTH_USERINFO_URL"
)
