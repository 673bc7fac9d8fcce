package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "OBITFLOW"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv    = "OBITFLOW_APP_ENV"
	EnvPort      = "OBITFLOW_APP_PORT"
	EnvDBDSN     = "OBITFLOW_DB_DSN"
	EnvDBHost    = "OBITFLOW_DB_HOST"
	EnvDBUser    = "OBITFLOW_DB_USER"
	EnvDBName    = "OBITFLOW_DB_NAME"
	EnvRedisURL  = "OBITFLOW_REDIS_URL"
	EnvJWTSecret = "OBITFLOW_JWT_SECRET"
	EnvJWTIssuer = "OBITFLOW_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
