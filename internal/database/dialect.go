package database

import (
	"strconv"
	"strings"

	"github.com/saltyorg/fitcenter/internal/config"
)

// Dialect describes how a driver spells positional parameters
type Dialect int

const (
	// DialectQuestion uses ? placeholders (SQLite, MySQL)
	DialectQuestion Dialect = iota
	// DialectDollar uses $1..$n placeholders (PostgreSQL)
	DialectDollar
)

// DialectFor returns the placeholder dialect for a driver name
func DialectFor(driver string) Dialect {
	if driver == config.DriverPostgres {
		return DialectDollar
	}
	return DialectQuestion
}

// Rebind rewrites ? placeholders into the dialect's form.
// Question marks inside single quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectDollar || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
