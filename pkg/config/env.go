package config

// EnvPrefix is passed to envconfig; individual fields carry full names.
const EnvPrefix = "REGENMARKET"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "REGENMARKET_APP_ENV"
	EnvPort                   = "REGENMARKET_APP_PORT"
	EnvRedisURL               = "REGENMARKET_REDIS_URL"
	EnvJWTSecret              = "REGENMARKET_JWT_SECRET"
	EnvJWTIssuer              = "REGENMARKET_JWT_ISSUER"
	EnvJWTExpMins             = "REGENMARKET_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "REGENMARKET_REFRESH_TOKEN_TTL_MINUTES"

	EnvDBDSN  = "REGENMARKET_DB_DSN"
	EnvDBHost = "REGENMARKET_DB_HOST"
	EnvDBUser = "REGENMARKET_DB_USER"
	EnvDBName = "REGENMARKET_DB_NAME"

	EnvMatchFallback = "REGENMARKET_MATCH_FALLBACK"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
