package database

import "context"

// WorkoutSessionFields carries the writable workout session columns.
// A nil field is bound as NULL.
type WorkoutSessionFields struct {
	MemberID *int64
	Date     *string
	Type     *string
	Duration *int64
}

// CreateWorkoutSession inserts a new workout session.
// The member ID is not checked against Members.
func (db *DB) CreateWorkoutSession(ctx context.Context, s WorkoutSessionFields) error {
	_, err := db.Exec(ctx,
		"INSERT INTO WorkoutSessions (member_id, date, type, duration) VALUES (?, ?, ?, ?)",
		s.MemberID, s.Date, s.Type, s.Duration)
	return err
}

// ListWorkoutSessionsByMember returns all sessions recorded for a member
func (db *DB) ListWorkoutSessionsByMember(ctx context.Context, memberID int64) ([]Row, error) {
	return db.Query(ctx, "SELECT * FROM WorkoutSessions WHERE member_id = ?", memberID)
}

// UpdateWorkoutSession overwrites date, type and duration of a session and
// returns the number of rows matched. The member ID is never changed.
func (db *DB) UpdateWorkoutSession(ctx context.Context, id int64, s WorkoutSessionFields) (int64, error) {
	return db.Exec(ctx,
		"UPDATE WorkoutSessions SET date = ?, type = ?, duration = ? WHERE id = ?",
		s.Date, s.Type, s.Duration, id)
}

// DeleteWorkoutSession removes a session and returns the number of rows deleted
func (db *DB) DeleteWorkoutSession(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, "DELETE FROM WorkoutSessions WHERE id = ?", id)
}
