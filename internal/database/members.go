package database

import "context"

// MemberFields carries the writable member columns.
// A nil field is bound as NULL.
type MemberFields struct {
	Name  *string
	Email *string
	Phone *string
}

// CreateMember inserts a new member
func (db *DB) CreateMember(ctx context.Context, m MemberFields) error {
	_, err := db.Exec(ctx,
		"INSERT INTO Members (name, email, phone) VALUES (?, ?, ?)",
		m.Name, m.Email, m.Phone)
	return err
}

// GetMember retrieves a member by ID, returning nil if it does not exist
func (db *DB) GetMember(ctx context.Context, id int64) (Row, error) {
	return db.QueryOne(ctx, "SELECT * FROM Members WHERE id = ?", id)
}

// UpdateMember overwrites every writable column of a member and returns the
// number of rows matched. Omitted fields are written as NULL.
func (db *DB) UpdateMember(ctx context.Context, id int64, m MemberFields) (int64, error) {
	return db.Exec(ctx,
		"UPDATE Members SET name = ?, email = ?, phone = ? WHERE id = ?",
		m.Name, m.Email, m.Phone, id)
}

// DeleteMember removes a member and returns the number of rows deleted
func (db *DB) DeleteMember(ctx context.Context, id int64) (int64, error) {
	return db.Exec(ctx, "DELETE FROM Members WHERE id = ?", id)
}
