package config

import (
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const DefaultSecret = "default-secret"

var ErrDatabaseURLRequired = errors.New("database URL is required")

type Config struct {
	Debug            bool     `yaml:"debug"`
	Dev              bool     `yaml:"dev"`
	Host             string   `yaml:"host"`
	Port             string   `yaml:"port"`
	Secret           string   `yaml:"secret"`
	DatabaseURL      string   `yaml:"database_url"`
	MigrationSource  string   `yaml:"migration_source"`
	OtelCollectorUrl string   `yaml:"otel_collector_url"`
	AllowOrigins     []string `yaml:"allow_origins"`
	FileStoragePath  string   `yaml:"file_storage_path"`
}

// Log buffers configuration-time messages until zap is available.
type Log struct {
	entries []entry
}

type entry struct {
	level   string
	message string
	err     error
}

func (l *Log) info(message string) {
	l.entries = append(l.entries, entry{level: "info", message: message})
}

func (l *Log) warn(message string, err error) {
	l.entries = append(l.entries, entry{level: "warn", message: message, err: err})
}

func (l *Log) FlushToZap(logger *zap.Logger) {
	for _, e := range l.entries {
		switch e.level {
		case "warn":
			logger.Warn(e.message, zap.Error(e.err))
		default:
			logger.Info(e.message)
		}
	}
	l.entries = nil
}

func defaultConfig() Config {
	return Config{
		Debug:            false,
		Dev:              false,
		Host:             "localhost",
		Port:             "8080",
		Secret:           DefaultSecret,
		DatabaseURL:      "",
		MigrationSource:  "file://migrations",
		OtelCollectorUrl: "",
		AllowOrigins:     []string{"http://localhost:5173"},
		FileStoragePath:  "uploads",
	}
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	return nil
}

// Load resolves configuration with increasing precedence: defaults, yaml
// config file, .env file, environment variables, command-line flags.
func Load() (Config, *Log) {
	cfgLog := &Log{}

	cfg := defaultConfig()
	cfg = cfg.loadConfigFile("config.yaml", cfgLog)
	cfg = cfg.loadEnvFile(cfgLog)
	cfg = cfg.loadEnv()
	cfg = cfg.loadFlags()

	return cfg, cfgLog
}

func (c Config) loadConfigFile(path string, cfgLog *Log) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cfgLog.warn("Failed to read config file", err)
		}
		return c
	}

	if err := yaml.Unmarshal(data, &c); err != nil {
		cfgLog.warn("Failed to parse config file, ignoring it", err)
		return c
	}

	cfgLog.info("Loaded config file " + path)
	return c
}

func (c Config) loadEnvFile(cfgLog *Log) Config {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			cfgLog.warn("Failed to load .env file", err)
		}
		return c
	}

	cfgLog.info("Loaded .env file")
	return c
}

func (c Config) loadEnv() Config {
	if v, ok := os.LookupEnv("DEBUG"); ok {
		c.Debug = v == "true" || v == "1"
	}
	if v, ok := os.LookupEnv("DEV"); ok {
		c.Dev = v == "true" || v == "1"
	}
	if v, ok := os.LookupEnv("HOST"); ok {
		c.Host = v
	}
	if v, ok := os.LookupEnv("PORT"); ok {
		c.Port = v
	}
	if v, ok := os.LookupEnv("SECRET"); ok {
		c.Secret = v
	}
	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		c.DatabaseURL = v
	}
	if v, ok := os.LookupEnv("MIGRATION_SOURCE"); ok {
		c.MigrationSource = v
	}
	if v, ok := os.LookupEnv("OTEL_COLLECTOR_URL"); ok {
		c.OtelCollectorUrl = v
	}
	if v, ok := os.LookupEnv("FILE_STORAGE_PATH"); ok {
		c.FileStoragePath = v
	}
	return c
}

func (c Config) loadFlags() Config {
	if flag.Parsed() {
		return c
	}

	flag.BoolVar(&c.Debug, "debug", c.Debug, "enable debug mode")
	flag.StringVar(&c.Host, "host", c.Host, "server host")
	flag.StringVar(&c.Port, "port", c.Port, "server port")
	flag.StringVar(&c.DatabaseURL, "database-url", c.DatabaseURL, "postgres connection string")
	flag.StringVar(&c.MigrationSource, "migration-source", c.MigrationSource, "migration source url")
	flag.Parse()

	return c
}
