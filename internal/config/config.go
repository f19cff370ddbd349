package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application level configuration. Values come from an optional
// YAML file and are overridden by environment variables.
type Config struct {
	ServerPort     string        `yaml:"server_port"`
	DBDriver       string        `yaml:"db_driver"`
	DatabaseDSN    string        `yaml:"database_dsn"`
	DBMaxOpenConns int           `yaml:"db_max_open_conns"`
	RedisAddr      string        `yaml:"redis_addr"`
	RedisDB        int           `yaml:"redis_db"`
	RedisPass      string        `yaml:"redis_password"`
	SecretKey      string        `yaml:"secret_key"`
	Algorithm      string        `yaml:"algorithm"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	CookieSecure   bool          `yaml:"cookie_secure"`
	LogLevel       string        `yaml:"log_level"`
	ErrorLogPath   string        `yaml:"error_log_path"`
	SwaggerHost    string        `yaml:"swagger_host"`
}

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	// DefaultSecretKey is a placeholder; a server must not sign tokens with it.
	DefaultSecretKey = "change-me"
)

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		ServerPort:     "8080",
		DBDriver:       DriverMySQL,
		DatabaseDSN:    "user:password@tcp(localhost:3306)/pomodoros?charset=utf8mb4&parseTime=True&loc=UTC",
		DBMaxOpenConns: 10,
		SecretKey:      DefaultSecretKey,
		Algorithm:      "HS256",
		TokenTTL:       15 * time.Minute,
		LogLevel:       "info",
	}
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// LoadFile reads a YAML file on top of the defaults, then applies environment
// overrides. An empty path behaves like Load.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
	switch c.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported token algorithm %q", c.Algorithm)
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key must not be empty")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database dsn must not be empty")
	}
	return nil
}

// ValidateServe adds the checks that only matter when issuing tokens.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.SecretKey == DefaultSecretKey {
		return fmt.Errorf("secret key is the default placeholder; set SECRET_KEY")
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerPort = getEnv("SERVER_PORT", c.ServerPort)
	c.DBDriver = strings.ToLower(getEnv("DB_DRIVER", c.DBDriver))
	c.DatabaseDSN = getEnv("DATABASE_DSN", c.DatabaseDSN)
	c.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", c.DBMaxOpenConns)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = getEnvInt("REDIS_DB", c.RedisDB)
	c.RedisPass = getEnv("REDIS_PASSWORD", c.RedisPass)
	c.SecretKey = getEnv("JWT_SECRET", c.SecretKey)
	c.SecretKey = getEnv("SECRET_KEY", c.SecretKey)
	c.Algorithm = strings.ToUpper(getEnv("ALGORITHM", c.Algorithm))
	if minutes := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 0); minutes > 0 {
		c.TokenTTL = time.Duration(minutes) * time.Minute
	}
	c.CookieSecure = getEnvBool("COOKIE_SECURE", c.CookieSecure)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.ErrorLogPath = getEnv("ERROR_LOG_PATH", c.ErrorLogPath)
	c.SwaggerHost = getEnv("SWAGGER_HOST", c.SwaggerHost)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
