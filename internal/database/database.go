package database

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/saltyorg/fitcenter/internal/config"
)

// DB is the database gateway. It holds only the immutable connection
// parameters; every call checks out its own connection.
type DB struct {
	pool    *sql.DB
	driver  string
	dialect Dialect
}

// New opens a database handle for the configured driver and verifies that
// the database is reachable.
func New(cfg config.DatabaseConfig) (*DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A zero idle count closes each connection as soon as its request
	// releases it, so every request gets a fresh one.
	pool.SetMaxIdleConns(cfg.MaxIdle)

	if err := pool.Ping(); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Debug().Str("driver", cfg.Driver).Int("max_idle", cfg.MaxIdle).Msg("Database connection established")

	return wrap(pool, cfg.Driver), nil
}

func wrap(pool *sql.DB, driver string) *DB {
	return &DB{
		pool:    pool,
		driver:  driver,
		dialect: DialectFor(driver),
	}
}

// Driver returns the configured driver name
func (db *DB) Driver() string {
	return db.driver
}

// Close closes the underlying handle
func (db *DB) Close() error {
	return db.pool.Close()
}

// DSN builds the driver specific data source name from the connection parameters
func DSN(cfg config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", nil

	case config.DriverPostgres:
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		u := &url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(cfg.User, cfg.Password),
			Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
			Path:     "/" + cfg.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String(), nil

	case config.DriverMySQL:
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(port))
		mc.DBName = cfg.Name
		// Report matched rather than changed rows so a no-op update still counts
		mc.ClientFoundRows = true
		return mc.FormatDSN(), nil

	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
