package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	portEnvVar       = "PORT"
	appNameVar       = "APP_NAME"
	folderEnvVar     = "FOLDER"
	apiBaseURLVar    = "ABOKI_API_URL"
	refreshEveryVar  = "ADMIN_REFRESH_INTERVAL"
	defaultAPIBase   = "https://api.aboki.xyz"
	defaultRefresh   = "30s"
	defaultDataDir   = "./data"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// LoadDotEnv loads a .env file if one is present. Missing files are not an
// error; deployed environments set real environment variables instead.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("Failed to load .env file")
		}
	}
}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Aboki Business")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, defaultDataDir)
}

// GetAPIBaseURL returns the base URL of the remote Aboki B2B API. All business
// logic lives behind this URL; this service only calls it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, defaultAPIBase)
}

// GetAdminRefreshInterval returns the admin console auto-refresh interval as a
// duration string (e.g. "30s").
func (EnvVars) GetAdminRefreshInterval() string {
	return GetEnv(refreshEveryVar, defaultRefresh)
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
