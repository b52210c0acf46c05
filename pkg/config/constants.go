package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "SHIFTLINE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Canonical env var names, referenced by tests and error messages.
const (
	EnvAppEnv     = "SHIFTLINE_APP_ENV"
	EnvPort       = "SHIFTLINE_APP_PORT"
	EnvDBDSN      = "SHIFTLINE_DB_DSN"
	EnvDBHost     = "SHIFTLINE_DB_HOST"
	EnvDBUser     = "SHIFTLINE_DB_USER"
	EnvDBName     = "SHIFTLINE_DB_NAME"
	EnvRedisURL   = "SHIFTLINE_REDIS_URL"
	EnvJWTSecret  = "SHIFTLINE_JWT_SECRET"
	EnvJWTIssuer  = "SHIFTLINE_JWT_ISSUER"
	EnvJWTExpMins = "SHIFTLINE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
