package config

import (
	"main/utils"
)

type DatabaseConfig struct {
	Path        string
	BusyTimeout int // milliseconds
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Path:        utils.GetEnvAsString("SQLITE_PATH", "mindpath.db"),
		BusyTimeout: utils.GetEnvAsInt("SQLITE_BUSY_TIMEOUT", 5000),
	}
}
