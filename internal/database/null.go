package database

import "time"

// dateColumns lists the columns declared DATE in the schema. Their values
// are reported as a bare date whatever time part the driver hands back.
var dateColumns = map[string]bool{
	"date": true,
}

// normalizeValue converts driver specific column values into plain JSON
// friendly values. Drivers disagree on how they hand back text and dates:
// MySQL returns []byte, PostgreSQL and SQLite DATE columns come back as
// time.Time.
func normalizeValue(column string, v any) any {
	switch val := v.(type) {
	case []byte:
		if dateColumns[column] {
			return dateOnly(string(val))
		}
		return string(val)
	case string:
		if dateColumns[column] {
			return dateOnly(val)
		}
		return val
	case time.Time:
		if dateColumns[column] {
			return val.Format(time.DateOnly)
		}
		return formatTime(val)
	default:
		return val
	}
}

// dateOnly trims a textual date that carries a time part. SQLite keeps DATE
// values as whatever text was inserted.
func dateOnly(s string) string {
	if len(s) > len(time.DateOnly) {
		if _, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return s[:len(time.DateOnly)]
		}
	}
	return s
}

// formatTime renders midnight values as a bare date and anything else as RFC3339
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	return t.Format(time.RFC3339)
}
