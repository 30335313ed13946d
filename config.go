package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string         `yaml:"git_commit" envconfig:"BSAPI_GIT_COMMIT"`
	GitTag       string         `yaml:"git_tag" envconfig:"BSAPI_GIT_TAG"`
	BuildTime    string         `yaml:"build_time" envconfig:"BSAPI_BUILD_TIME"`
	IsProduction bool           `yaml:"is_production" envconfig:"BSAPI_IS_PRODUCTION"`
	LogLevel     zapcore.Level  `yaml:"log_level" envconfig:"BSAPI_LOG_LEVEL"`
	LogFile      string         `yaml:"log_file" envconfig:"BSAPI_LOG_FILE"`
	Server       ServerConfig   `yaml:"server"`
	Storage      StorageConfig  `yaml:"storage"`
	Postgres     PostgresConfig `yaml:"postgres"`
	SQLite       SQLiteConfig   `yaml:"sqlite"`
	Uploads      UploadsConfig  `yaml:"uploads"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"BSAPI_SERVER_HOST"`
	Port            string        `yaml:"port" envconfig:"BSAPI_SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"BSAPI_SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"BSAPI_SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"BSAPI_SERVER_SHUTDOWN_TIMEOUT"`
}

// StorageConfig selects which relational backend serves the catalog.
// Both backends expose the same tables but encode row values differently,
// so the entity model normalizes what comes out of either driver.
type StorageConfig struct {
	Backend string `yaml:"backend" envconfig:"BSAPI_STORAGE_BACKEND"` // "postgres" or "sqlite"
}

type PostgresConfig struct {
	Host            string        `yaml:"host" envconfig:"BSAPI_POSTGRES_HOST"`
	Port            string        `yaml:"port" envconfig:"BSAPI_POSTGRES_PORT"`
	User            string        `yaml:"user" envconfig:"BSAPI_POSTGRES_USER"`
	Password        string        `yaml:"password" envconfig:"BSAPI_POSTGRES_PASSWORD"`
	Database        string        `yaml:"database" envconfig:"BSAPI_POSTGRES_DATABASE"`
	SSLMode         string        `yaml:"ssl_mode" envconfig:"BSAPI_POSTGRES_SSL_MODE"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout" envconfig:"BSAPI_POSTGRES_CONNECT_TIMEOUT"`
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"BSAPI_POSTGRES_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"BSAPI_POSTGRES_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"BSAPI_POSTGRES_CONN_MAX_LIFETIME"`
}

type SQLiteConfig struct {
	FilePath    string        `yaml:"filepath" envconfig:"BSAPI_SQLITE_FILE_PATH"`
	BusyTimeout time.Duration `yaml:"busy_timeout" envconfig:"BSAPI_SQLITE_BUSY_TIMEOUT"`
}

type UploadsConfig struct {
	Dir     string `yaml:"dir" envconfig:"BSAPI_UPLOADS_DIR"`
	BaseURL string `yaml:"base_url" envconfig:"BSAPI_UPLOADS_BASE_URL"`
}

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and provides an instance of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	switch config.Storage.Backend {
	case "postgres":
		if len(config.Postgres.Host) == 0 || len(config.Postgres.Port) == 0 {
			return errors.New("make sure to set valid postgres address and port in configuration file")
		}
	case "sqlite":
		if len(config.SQLite.FilePath) == 0 {
			return errors.New("make sure to set a valid sqlite file path in configuration file")
		}
	default:
		return fmt.Errorf("unknown storage backend %q: must be postgres or sqlite", config.Storage.Backend)
	}

	if len(config.Uploads.Dir) == 0 {
		config.Uploads.Dir = "./uploads"
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `BSAPI`.
	err = LoadConfigEnvs("BSAPI", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
