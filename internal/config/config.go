// Package config provides configuration management using Viper
package config

import (
	"sync"

	"github.com/spf13/viper"
)

// Environment types
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// LogLevel represents the logging level for the application
type LogLevel string

// Available log levels
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Config holds all configuration parameters for the application
type Config struct {
	// Application settings
	AppName     string   `mapstructure:"appname"`
	AppPort     string   `mapstructure:"appport"`
	Environment string   `mapstructure:"environment"`
	LogLevel    LogLevel `mapstructure:"loglevel"`

	// Analytics backend (Tinybird SQL endpoint)
	TinybirdBaseURL  string `mapstructure:"tinybirdbaseurl"`
	TinybirdToken    string `mapstructure:"tinybirdtoken"`
	TinybirdDataset  string `mapstructure:"tinybirddataset"`
	QueryTimeoutSecs int    `mapstructure:"querytimeoutsecs"`

	// Dashboard defaults
	DefaultTimezone string `mapstructure:"defaulttimezone"`
	DefaultLimit    int    `mapstructure:"defaultlimit"`

	// File paths
	DatabasePath string `mapstructure:"storagepath"`

	// Logging settings
	LogsDirectory    string `mapstructure:"logsdir"`
	LogsMaxSizeInMb  int    `mapstructure:"logsmaxsizeinmb"`
	LogsMaxBackups   int    `mapstructure:"logsmaxbackups"`
	LogsMaxAgeInDays int    `mapstructure:"logsmaxageindays"`

	// Database settings
	DatabaseMaxOpenConns int `mapstructure:"dbmaxopenconns"`
	DatabaseMaxIdleConns int `mapstructure:"dbmaxidleconns"`
}

var (
	cfg  *Config
	once sync.Once
)

// GetConfig returns the application configuration
func GetConfig() *Config {
	once.Do(func() {
		v := viper.New()

		// Set defaults
		v.SetDefault("appname", "vantage")
		v.SetDefault("appport", "3000")
		v.SetDefault("environment", Development)
		v.SetDefault("loglevel", string(LogLevelDebug))
		v.SetDefault("tinybirdbaseurl", "https://api.tinybird.co")
		v.SetDefault("tinybirdtoken", "")
		v.SetDefault("tinybirddataset", "analytics_events")
		v.SetDefault("querytimeoutsecs", 30)
		v.SetDefault("defaulttimezone", "UTC")
		v.SetDefault("defaultlimit", 10)
		v.SetDefault("storagepath", "storage/vantage.db")
		v.SetDefault("logsdir", "logs")
		v.SetDefault("logsmaxsizeinmb", 20)
		v.SetDefault("logsmaxbackups", 10)
		v.SetDefault("logsmaxageindays", 30)
		v.SetDefault("dbmaxopenconns", 0)
		v.SetDefault("dbmaxidleconns", 0)

		// Bind environment variables
		v.BindEnv("appname", "VANTAGE_APP_NAME")
		v.BindEnv("appport", "VANTAGE_APP_PORT")
		v.BindEnv("environment", "VANTAGE_ENV")
		v.BindEnv("loglevel", "VANTAGE_LOG_LEVEL")
		v.BindEnv("tinybirdbaseurl", "VANTAGE_TINYBIRD_BASE_URL")
		v.BindEnv("tinybirdtoken", "VANTAGE_TINYBIRD_TOKEN")
		v.BindEnv("tinybirddataset", "VANTAGE_TINYBIRD_DATASET")
		v.BindEnv("querytimeoutsecs", "VANTAGE_QUERY_TIMEOUT_SECONDS")
		v.BindEnv("defaulttimezone", "VANTAGE_DEFAULT_TIMEZONE")
		v.BindEnv("defaultlimit", "VANTAGE_DEFAULT_LIMIT")
		v.BindEnv("storagepath", "VANTAGE_STORAGE_PATH")
		v.BindEnv("logsdir", "VANTAGE_LOGS_DIR")
		v.BindEnv("logsmaxsizeinmb", "VANTAGE_LOGS_MAX_SIZE_MB")
		v.BindEnv("logsmaxbackups", "VANTAGE_LOGS_MAX_BACKUPS")
		v.BindEnv("logsmaxageindays", "VANTAGE_LOGS_MAX_AGE_DAYS")
		v.BindEnv("dbmaxopenconns", "VANTAGE_DB_MAX_OPEN_CONNS")
		v.BindEnv("dbmaxidleconns", "VANTAGE_DB_MAX_IDLE_CONNS")

		c := &Config{}
		if err := v.Unmarshal(c); err != nil {
			panic("failed to load configuration: " + err.Error())
		}

		cfg = c
	})

	return cfg
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// IsTest reports whether the app runs in test mode
func (c *Config) IsTest() bool {
	return c.Environment == Test
}
