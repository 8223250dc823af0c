package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/saltyorg/fitcenter/internal/config"
)

func setupMockDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	return wrap(sqlDB, driver), mock
}

func TestExec_ReleasesConnectionOnFailure(t *testing.T) {
	db, mock := setupMockDB(t, config.DriverMySQL)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM Members WHERE id = ?")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("Table 'fitness_center_db.Members' doesn't exist"))

	_, err := db.DeleteMember(context.Background(), 3)
	if err == nil {
		t.Fatal("expected error")
	}

	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) {
		t.Fatalf("expected DatabaseError, got %T", err)
	}
	if dbErr.Op != "exec" {
		t.Fatalf("expected exec op, got %q", dbErr.Op)
	}
	if err.Error() != "Table 'fitness_center_db.Members' doesn't exist" {
		t.Fatalf("expected driver message to pass through, got %q", err.Error())
	}

	if inUse := db.pool.Stats().InUse; inUse != 0 {
		t.Fatalf("expected connection to be released, %d still in use", inUse)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQuery_ReleasesConnectionOnFailure(t *testing.T) {
	db, mock := setupMockDB(t, config.DriverSQLite)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM WorkoutSessions WHERE member_id = ?")).
		WithArgs(int64(1)).
		WillReturnError(errors.New("no such table: WorkoutSessions"))

	_, err := db.ListWorkoutSessionsByMember(context.Background(), 1)

	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) || dbErr.Op != "query" {
		t.Fatalf("expected query DatabaseError, got %v", err)
	}
	if inUse := db.pool.Stats().InUse; inUse != 0 {
		t.Fatalf("expected connection to be released, %d still in use", inUse)
	}
}

func TestQuery_RebindsForPostgres(t *testing.T) {
	db, mock := setupMockDB(t, config.DriverPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM Members WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
			AddRow(int64(7), "Sam", "s@x.com", "123"))

	member, err := db.GetMember(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetMember returned error: %v", err)
	}
	if member["name"] != "Sam" {
		t.Fatalf("unexpected member: %v", member)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestQuery_NormalizesDriverValues(t *testing.T) {
	db, mock := setupMockDB(t, config.DriverMySQL)

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM WorkoutSessions WHERE member_id = ?")).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "date", "type", "duration", "notes"}).
			AddRow(int64(1), int64(2), day, []byte("Yoga"), int64(30), nil))

	sessions, err := db.ListWorkoutSessionsByMember(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListWorkoutSessionsByMember returned error: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s["date"] != "2024-03-09" {
		t.Fatalf("expected date-only string, got %#v", s["date"])
	}
	if s["type"] != "Yoga" {
		t.Fatalf("expected []byte to become string, got %#v", s["type"])
	}
	if v, ok := s["notes"]; !ok || v != nil {
		t.Fatalf("expected extra NULL column to be kept as nil, got %#v", s["notes"])
	}
}

func TestQuery_DateColumnDropsTimePart(t *testing.T) {
	db, mock := setupMockDB(t, config.DriverPostgres)

	stamp := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM WorkoutSessions WHERE member_id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "date", "logged_at"}).
			AddRow(int64(1), stamp, stamp))

	sessions, err := db.ListWorkoutSessionsByMember(context.Background(), 4)
	if err != nil {
		t.Fatalf("ListWorkoutSessionsByMember returned error: %v", err)
	}
	if sessions[0]["date"] != "2024-01-15" {
		t.Fatalf("expected bare date, got %#v", sessions[0]["date"])
	}
	if sessions[0]["logged_at"] != "2024-01-15T10:30:00Z" {
		t.Fatalf("expected RFC3339 for non-date column, got %#v", sessions[0]["logged_at"])
	}
}

func TestExec_BindsNilForOmittedFields(t *testing.T) {
	db, mock := setupMockDB(t, config.DriverSQLite)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE Members SET name = ?, email = ?, phone = ? WHERE id = ?")).
		WithArgs("Alex", nil, nil, int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := db.UpdateMember(context.Background(), 1, MemberFields{Name: strPtr("Alex")})
	if err != nil {
		t.Fatalf("UpdateMember returned error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected row, got %d", affected)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAcquire_FailsOnClosedPool(t *testing.T) {
	db, _ := setupMockDB(t, config.DriverSQLite)
	db.pool.Close()

	_, err := db.GetMember(context.Background(), 1)

	var dbErr *DatabaseError
	if !errors.As(err, &dbErr) || dbErr.Op != "connect" {
		t.Fatalf("expected connect DatabaseError, got %v", err)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)); got != "2024-01-02" {
		t.Fatalf("expected date only, got %s", got)
	}
	if got := formatTime(time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC)); got != "2024-01-02T13:04:05Z" {
		t.Fatalf("expected RFC3339, got %s", got)
	}
}

func TestNormalizeValue_DateColumn(t *testing.T) {
	tests := []struct {
		column string
		in     any
		want   any
	}{
		{"date", "2024-01-15 10:30:00", "2024-01-15"},
		{"date", []byte("2024-01-15T10:30:00Z"), "2024-01-15"},
		{"date", "2024-01-15", "2024-01-15"},
		{"date", "not a date at all", "not a date at all"},
		{"type", "2024-01-15 10:30:00", "2024-01-15 10:30:00"},
		{"date", nil, nil},
	}

	for _, tt := range tests {
		if got := normalizeValue(tt.column, tt.in); got != tt.want {
			t.Errorf("normalizeValue(%q, %#v) = %#v, want %#v", tt.column, tt.in, got, tt.want)
		}
	}
}
