package database

// DatabaseError is returned for any failure while connecting to the database
// or running a statement. Its message is the driver's message unchanged.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return e.Err.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}
