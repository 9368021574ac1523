// Package config loads layered application configuration using koanf:
// built-in defaults, then an optional YAML file, then environment
// variables. ENV > file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file search path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfigPaths are searched in order; the first existing file wins.
var defaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/events-backend/config.yaml",
}

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
	MaxConns int32  `koanf:"max_conns"`
	MinConns int32  `koanf:"min_conns"`
}

// DSN builds a libpq-compatible connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// SecurityConfig holds auth and rate-limit settings.
type SecurityConfig struct {
	JWTSecret       string        `koanf:"jwt_secret"`
	TokenTTL        time.Duration `koanf:"token_ttl"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3001,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Name:     "events",
			SSLMode:  "disable",
			MaxConns: 20,
			MinConns: 2,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			TokenTTL:        8 * time.Hour,
			CORSOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
			LoginRateLimit:  10,
			LoginRateWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load assembles the configuration from defaults, an optional YAML file,
// and environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// CORS origins arrive from the environment as a comma-separated string.
	if v, ok := k.Get("security.cors_origins").(string); ok {
		origins := make([]string, 0, 4)
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if err := k.Set("security.cors_origins", origins); err != nil {
			return nil, fmt.Errorf("set cors origins: %w", err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot safely run with.
func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("database max_conns must be positive")
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// envTransform maps well-known environment variables onto koanf paths.
// Unknown variables are dropped so random environment entries cannot
// pollute the configuration.
func envTransform(key string) string {
	mappings := map[string]string{
		"HTTP_HOST":          "server.host",
		"HTTP_PORT":          "server.port",
		"HTTP_READ_TIMEOUT":  "server.read_timeout",
		"HTTP_WRITE_TIMEOUT": "server.write_timeout",
		"HTTP_IDLE_TIMEOUT":  "server.idle_timeout",

		"DB_HOST":      "database.host",
		"DB_PORT":      "database.port",
		"DB_USER":      "database.user",
		"DB_PASSWORD":  "database.password",
		"DB_NAME":      "database.name",
		"DB_SSLMODE":   "database.sslmode",
		"DB_MAX_CONNS": "database.max_conns",
		"DB_MIN_CONNS": "database.min_conns",

		"JWT_SECRET":        "security.jwt_secret",
		"TOKEN_TTL":         "security.token_ttl",
		"CORS_ORIGINS":      "security.cors_origins",
		"LOGIN_RATE_LIMIT":  "security.login_rate_limit",
		"LOGIN_RATE_WINDOW": "security.login_rate_window",

		"LOG_LEVEL":  "logging.level",
		"LOG_FORMAT": "logging.format",
	}
	if mapped, ok := mappings[key]; ok {
		return mapped
	}
	return ""
}
