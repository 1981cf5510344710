// Package config provides application configuration loaded from an optional
// YAML file and environment variables. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Admin    AdminConfig    `yaml:"admin"`
	Redis    RedisConfig    `yaml:"redis"`
	Log      LogConfig      `yaml:"log"`
	App      AppConfig      `yaml:"app"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
	IdleTimeout  int    `yaml:"idle_timeout"`  // seconds
}

// DatabaseConfig selects and locates the database.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // sqlite or postgres
	Path     string `yaml:"path"`   // sqlite file
	URLDSN   string `yaml:"dsn"`    // postgres URL, overrides the discrete fields
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	Debug    bool   `yaml:"debug"`
}

// AuthConfig holds session settings.
type AuthConfig struct {
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	RememberTTL   time.Duration `yaml:"remember_ttl"`
	SecureCookie  bool          `yaml:"secure_cookie"`
}

// AdminConfig describes the account seeded when no admin exists.
type AdminConfig struct {
	StudentID string `yaml:"student_id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
}

// RedisConfig enables shared session revocation when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool `yaml:"dev"`
	// Migrations selects schema management: "auto" (GORM AutoMigrate) or "sql" (golang-migrate, postgres only).
	Migrations string `yaml:"migrations"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DSN returns the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	if d.URLDSN != "" {
		return d.URLDSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	if d.URLDSN != "" {
		return d.URLDSN
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", ReadTimeout: 15, WriteTimeout: 15, IdleTimeout: 60},
		Database: DatabaseConfig{
			Driver:  DriverSQLite,
			Path:    "complaints.db",
			Host:    "localhost",
			Port:    5432,
			User:    "complaints",
			DBName:  "complaints",
			SSLMode: "disable",
		},
		Auth: AuthConfig{SessionTTL: 24 * time.Hour, RememberTTL: 30 * 24 * time.Hour},
		Admin: AdminConfig{
			StudentID: "admin001",
			Name:      "Administrator",
			Email:     "admin@college.edu",
			Password:  "admin123",
		},
		Log: LogConfig{Level: "info"},
		App: AppConfig{Dev: false, Migrations: "auto"},
	}
}

// Load reads the YAML file at path (ignored when it does not exist) and then
// applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(c *Config) {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.ReadTimeout = getEnvInt("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvInt("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.IdleTimeout = getEnvInt("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.URLDSN = getEnv("DATABASE_DSN", c.Database.URLDSN)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.DBName = getEnv("DB_NAME", c.Database.DBName)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.Debug = getEnvBool("DB_DEBUG", c.Database.Debug)

	c.Auth.SessionSecret = getEnv("SESSION_SECRET", c.Auth.SessionSecret)
	c.Auth.SessionTTL = getEnvDuration("SESSION_TTL", c.Auth.SessionTTL)
	c.Auth.RememberTTL = getEnvDuration("SESSION_REMEMBER_TTL", c.Auth.RememberTTL)
	c.Auth.SecureCookie = getEnvBool("SESSION_SECURE", c.Auth.SecureCookie)

	c.Admin.StudentID = getEnv("ADMIN_STUDENT_ID", c.Admin.StudentID)
	c.Admin.Name = getEnv("ADMIN_NAME", c.Admin.Name)
	c.Admin.Email = getEnv("ADMIN_EMAIL", c.Admin.Email)
	c.Admin.Password = getEnv("ADMIN_PASSWORD", c.Admin.Password)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = getEnvBool("LOG_PRETTY", c.Log.Pretty)

	c.App.Dev = getEnvBool("DEV", c.App.Dev)
	c.App.Migrations = getEnv("MIGRATIONS", c.App.Migrations)
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("config: DB_PATH is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URLDSN == "" && (c.Database.Host == "" || c.Database.DBName == "") {
			return errors.New("config: DB_HOST and DB_NAME are required for postgres")
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.Database.Driver)
	}
	switch c.App.Migrations {
	case "auto":
	case "sql":
		if c.Database.Driver != DriverPostgres {
			return errors.New("config: MIGRATIONS=sql requires the postgres driver")
		}
	default:
		return fmt.Errorf("config: unsupported MIGRATIONS %q", c.App.Migrations)
	}
	if c.Auth.SessionTTL <= 0 || c.Auth.RememberTTL <= 0 {
		return errors.New("config: session TTLs must be positive")
	}
	if c.Admin.StudentID == "" || c.Admin.Password == "" {
		return errors.New("config: admin student id and password are required")
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

// getEnvDuration parses values like "12h" or "45m".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
