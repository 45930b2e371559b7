package config

// EnvPrefix is handed to envconfig; every variable below is spelled out in full.
const EnvPrefix = "DND"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv    = "DND_APP_ENV"
	EnvLogLevel  = "DND_LOG_LEVEL"
	EnvLogFormat = "DND_LOG_FORMAT"

	EnvDBDSN    = "DND_DB_DSN"
	EnvDBDriver = "DND_DB_DRIVER"
	EnvDBHost   = "DND_DB_HOST"
	EnvDBPort   = "DND_DB_PORT"
	EnvDBUser   = "DND_DB_USER"
	EnvDBPass   = "DND_DB_PASSWORD"
	EnvDBName   = "DND_DB_NAME"

	EnvRedisURL  = "DND_REDIS_URL"
	EnvRedisAddr = "DND_REDIS_ADDR"

	EnvCartTTL     = "DND_CART_TTL"
	EnvAutoMigrate = "DND_AUTO_MIGRATE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
