package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/saltyorg/fitcenter/internal/config"
)

// Table layouts per driver. Columns are nullable because an update binds
// NULL for every field the client leaves out. member_id carries no foreign
// key; the service never checks it against Members.
var schemas = map[string]string{
	config.DriverSQLite: `
		CREATE TABLE IF NOT EXISTS Members (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			email TEXT,
			phone TEXT
		);

		CREATE TABLE IF NOT EXISTS WorkoutSessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			member_id INTEGER,
			date DATE,
			type TEXT,
			duration INTEGER
		);
	`,
	config.DriverPostgres: `
		CREATE TABLE IF NOT EXISTS Members (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255),
			email VARCHAR(255),
			phone VARCHAR(50)
		);

		CREATE TABLE IF NOT EXISTS WorkoutSessions (
			id SERIAL PRIMARY KEY,
			member_id INTEGER,
			date DATE,
			type VARCHAR(100),
			duration INTEGER
		);
	`,
	config.DriverMySQL: `
		CREATE TABLE IF NOT EXISTS Members (
			id INT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255),
			email VARCHAR(255),
			phone VARCHAR(50)
		);

		CREATE TABLE IF NOT EXISTS WorkoutSessions (
			id INT AUTO_INCREMENT PRIMARY KEY,
			member_id INT,
			date DATE,
			type VARCHAR(100),
			duration INT
		);
	`,
}

// Schema returns the table DDL for a driver
func Schema(driver string) (string, error) {
	ddl, ok := schemas[driver]
	if !ok {
		return "", fmt.Errorf("no schema for database driver %q", driver)
	}
	return strings.Join(splitSQLStatements(ddl), "\n\n") + "\n", nil
}

// EnsureSchema creates the Members and WorkoutSessions tables if they are missing.
// Existing tables are left as they are.
func (db *DB) EnsureSchema(ctx context.Context) error {
	ddl, ok := schemas[db.driver]
	if !ok {
		return fmt.Errorf("no schema for database driver %q", db.driver)
	}

	for i, stmt := range splitSQLStatements(ddl) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d failed: %w", i+1, err)
		}
	}

	log.Info().Str("driver", db.driver).Msg("Database schema ensured")
	return nil
}

// splitSQLStatements splits a SQL string into individual statements.
// It handles comments and only returns non-empty statements.
func splitSQLStatements(sql string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		// Skip empty lines and comments
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(trimmed)
		current.WriteString("\n")

		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" && stmt != ";" {
				statements = append(statements, stmt)
			}
			current.Reset()
		}
	}

	if remaining := strings.TrimSpace(current.String()); remaining != "" {
		statements = append(statements, remaining)
	}

	return statements
}
