package config

import "github.com/joho/godotenv"

type Config interface {
	EnvConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Session
}

func New() Config {
	return mainConfig{}
}

// Load reads a .env file (if present) into the process environment and
// returns the assembled configuration.
func Load() Config {
	_ = godotenv.Load()
	return New()
}
