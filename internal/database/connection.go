package database

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"
)

// Row maps column names to values for one result row
type Row map[string]any

// Exec runs a single statement on its own connection and returns the number
// of rows it affected.
func (db *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return 0, err
	}
	defer release(conn)

	result, err := conn.ExecContext(ctx, db.dialect.Rebind(query), args...)
	if err != nil {
		return 0, &DatabaseError{Op: "exec", Err: err}
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, &DatabaseError{Op: "rows affected", Err: err}
	}
	return affected, nil
}

// Query runs a single statement on its own connection and returns every row.
// The result is never nil, so an empty match encodes as an empty list.
func (db *DB) Query(ctx context.Context, query string, args ...any) ([]Row, error) {
	conn, err := db.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release(conn)

	rows, err := conn.QueryContext(ctx, db.dialect.Rebind(query), args...)
	if err != nil {
		return nil, &DatabaseError{Op: "query", Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &DatabaseError{Op: "columns", Err: err}
	}

	result := []Row{}
	for rows.Next() {
		row, err := scanRow(rows, columns)
		if err != nil {
			return nil, &DatabaseError{Op: "scan", Err: err}
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &DatabaseError{Op: "query", Err: err}
	}
	return result, nil
}

// QueryOne returns the first row of the result, or nil if there is none
func (db *DB) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (db *DB) acquire(ctx context.Context) (*sql.Conn, error) {
	conn, err := db.pool.Conn(ctx)
	if err != nil {
		return nil, &DatabaseError{Op: "connect", Err: err}
	}
	return conn, nil
}

func release(conn *sql.Conn) {
	if err := conn.Close(); err != nil {
		log.Debug().Err(err).Msg("Failed to release database connection")
	}
}

func scanRow(rows *sql.Rows, columns []string) (Row, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}

	row := make(Row, len(columns))
	for i, col := range columns {
		row[col] = normalizeValue(col, values[i])
	}
	return row, nil
}
