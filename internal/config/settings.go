package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SettingsGetter is an interface for retrieving raw settings by key
type SettingsGetter interface {
	GetSetting(key string) (string, error)
}

// EnvGetter reads settings from the process environment
type EnvGetter struct{}

// GetSetting returns the environment variable named key, or "" if unset
func (EnvGetter) GetSetting(key string) (string, error) {
	return os.Getenv(key), nil
}

// MapGetter serves settings from a fixed map
type MapGetter map[string]string

// GetSetting returns the value stored under key
func (m MapGetter) GetSetting(key string) (string, error) {
	return m[key], nil
}

// Loader provides typed access to settings with default values
type Loader struct {
	db SettingsGetter
}

// NewLoader creates a new settings loader
func NewLoader(db SettingsGetter) *Loader {
	return &Loader{db: db}
}

// NewEnvLoader loads a .env file from the working directory if present and
// returns a loader backed by the process environment.
// Variables already set in the environment take precedence over the file.
func NewEnvLoader(files ...string) *Loader {
	_ = godotenv.Load(files...)
	return NewLoader(EnvGetter{})
}

// Int retrieves an integer setting, returning defaultVal if not found or invalid
func (l *Loader) Int(key string, defaultVal int) int {
	if val, _ := l.db.GetSetting(key); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			return v
		}
	}
	return defaultVal
}

// Bool retrieves a boolean setting, returning defaultVal if not found
// Recognizes "true" and "1" as true, anything else (including "false") as false
func (l *Loader) Bool(key string, defaultVal bool) bool {
	if val, _ := l.db.GetSetting(key); val != "" {
		return val == "true" || val == "1"
	}
	return defaultVal
}

// String retrieves a string setting, returning defaultVal if not found or empty
func (l *Loader) String(key, defaultVal string) string {
	if val, _ := l.db.GetSetting(key); val != "" {
		return val
	}
	return defaultVal
}

// StringSlice retrieves a comma separated setting, dropping empty items
func (l *Loader) StringSlice(key string, defaultVal []string) []string {
	val, _ := l.db.GetSetting(key)
	if val == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Duration retrieves a duration setting, returning defaultVal if not found or invalid
// Expects the value to be in Go duration format (e.g., "1h30m", "5s")
func (l *Loader) Duration(key string, defaultVal time.Duration) time.Duration {
	if val, _ := l.db.GetSetting(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
