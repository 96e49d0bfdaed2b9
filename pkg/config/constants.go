package config

const (
	EnvPrefix = "trackside"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv = "TRACKSIDE_APP_ENV"
	EnvPort   = "TRACKSIDE_APP_PORT"

	EnvDBDSN  = "TRACKSIDE_DB_DSN"
	EnvDBHost = "TRACKSIDE_DB_HOST"
	EnvDBUser = "TRACKSIDE_DB_USER"
	EnvDBName = "TRACKSIDE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
