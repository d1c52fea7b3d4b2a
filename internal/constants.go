package internal

const (
	DotEnvPath   = "./.env"
	APIKeyHeader = "x-api-key"
)
