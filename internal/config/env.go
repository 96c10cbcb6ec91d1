package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment overrides, applied on top of the config file
const (
	EnvDBPath        = "GAMEREADY_DB_PATH"
	EnvLogLevel      = "GAMEREADY_LOG_LEVEL"
	EnvLogFormat     = "GAMEREADY_LOG_FORMAT"
	EnvDefaultTarget = "GAMEREADY_DEFAULT_TARGET"
)

// ApplyEnv overrides config values from the environment
func (c *Config) ApplyEnv() {
	c.Database.Path = envOrDefault(EnvDBPath, c.Database.Path)
	c.Log.Level = strings.ToLower(envOrDefault(EnvLogLevel, c.Log.Level))
	c.Log.Format = strings.ToLower(envOrDefault(EnvLogFormat, c.Log.Format))
	c.Team.DefaultTargetReadiness = intEnvOrDefault(EnvDefaultTarget, c.Team.DefaultTargetReadiness)
}

func envOrDefault(key, defaultValue string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val != "" {
		return val
	}
	return defaultValue
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}
