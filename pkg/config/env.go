package config

const (
	EnvPrefix = "FOODCART"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StorageDriverMemory = "memory"
	StorageDriverRedis  = "redis"
	StorageDriverSQL    = "sql"

	DBDriverSQLite   = "sqlite"
	DBDriverPostgres = "postgres"

	EnvAppEnv        = "FOODCART_APP_ENV"
	EnvPort          = "FOODCART_APP_PORT"
	EnvStorageDriver = "FOODCART_STORAGE_DRIVER"
	EnvDBDSN         = "FOODCART_DB_DSN"
	EnvDBDriver      = "FOODCART_DB_DRIVER"
	EnvDBHost        = "FOODCART_DB_HOST"
	EnvDBUser        = "FOODCART_DB_USER"
	EnvDBName        = "FOODCART_DB_NAME"
	EnvRedisURL      = "FOODCART_REDIS_URL"
	EnvRedisAddr     = "FOODCART_REDIS_ADDR"
	EnvOrderIDFormat = "FOODCART_ORDER_ID_FORMAT"
	EnvNoticeTTL     = "FOODCART_NOTICE_TTL"
	EnvMenuPath      = "FOODCART_MENU_PATH"
)

var postgresDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
