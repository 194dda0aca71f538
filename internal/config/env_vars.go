package config

import (
	"os"
	"strings"
)

const (
	apiURLVar    = "ELCAFE_API_URL"
	appNameVar   = "APP_NAME"
	tokenFileVar = "ELCAFE_TOKEN_FILE"
	redisAddrVar = "ELCAFE_REDIS_ADDR"
)

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetTokenFilePath() string
	GetRedisAddr() string
	GetEnv() string
}

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the base URL of the platform REST backend
// (e.g., "https://api.elcafe.com/api/v1")
func (EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv(apiURLVar, "http://localhost:8080/api/v1"), "/")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "el-cafe admin client")
}

// GetTokenFilePath returns the file path used by the default file-backed
// token repository.
func (EnvVars) GetTokenFilePath() string {
	return GetEnv(tokenFileVar, "./data/session.json")
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
