package config

import (
	"fmt"
	"net"
	"time"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config is the process-wide configuration. It is built once at startup and
// passed by value; nothing mutates it afterwards.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig

	// StrictAffectedRows makes update and delete report 404 when no row
	// matched the id. Off by default, in which case a miss still succeeds.
	StrictAffectedRows bool

	// OptimizeSchedule is a cron expression for running PRAGMA optimize
	// against a SQLite database. Empty disables the job.
	OptimizeSchedule string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Bind           string
	Port           int
	CORSOrigins    []string
	RequestTimeout time.Duration
	// ReadTimeout is for reading the request body
	ReadTimeout time.Duration
	// IdleTimeout for keep-alive connections between requests
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds connection parameters for the database gateway
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// Path is the database file for the sqlite driver
	Path string
	// MaxIdle is the number of connections kept open between requests.
	// Zero closes every connection once its request is done.
	MaxIdle    int
	InitSchema bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
	File  string
}

// Default returns the configuration defaults, overridden by any matching
// settings found through the loader.
func Default(l *Loader) Config {
	return Config{
		Server: ServerConfig{
			Bind:            l.String("BIND", ""),
			Port:            l.Int("PORT", 5000),
			CORSOrigins:     l.StringSlice("CORS_ORIGINS", nil),
			RequestTimeout:  l.Duration("REQUEST_TIMEOUT", 30*time.Second),
			ReadTimeout:     15 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:     l.String("DB_DRIVER", DriverSQLite),
			Host:       l.String("DB_HOST", "localhost"),
			Port:       l.Int("DB_PORT", 0),
			User:       l.String("DB_USER", "root"),
			Password:   l.String("DB_PASSWORD", ""),
			Name:       l.String("DB_NAME", "fitness_center_db"),
			Path:       l.String("DB_PATH", "./fitness_center.db"),
			MaxIdle:    l.Int("DB_MAX_IDLE", 0),
			InitSchema: l.Bool("INIT_SCHEMA", false),
		},
		Log: LogConfig{
			Level: l.String("LOG_LEVEL", "info"),
			File:  l.String("LOG_FILE", ""),
		},
		StrictAffectedRows: l.Bool("STRICT_AFFECTED_ROWS", false),
		OptimizeSchedule:   l.String("OPTIMIZE_SCHEDULE", ""),
	}
}

// Validate checks the configuration for values the server cannot start with
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if c.Server.Bind != "" {
		if ip := net.ParseIP(c.Server.Bind); ip == nil {
			return fmt.Errorf("invalid bind address: %s", c.Server.Bind)
		}
	}

	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.Server.RequestTimeout)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres, DriverMySQL:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required for the %s driver", c.Database.Driver)
		}
		if c.Database.Name == "" {
			return fmt.Errorf("database name is required for the %s driver", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Database.Port < 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}

	if c.Database.MaxIdle < 0 {
		return fmt.Errorf("database max idle connections cannot be negative")
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	if s.Bind != "" {
		return net.JoinHostPort(s.Bind, fmt.Sprint(s.Port))
	}
	return fmt.Sprintf(":%d", s.Port)
}
