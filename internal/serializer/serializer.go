// Package serializer renders database rows as JSON objects limited to a
// fixed, ordered set of fields per entity.
package serializer

import (
	"bytes"
	"encoding/json"
)

// Schema is an ordered allowlist of field names
type Schema []string

// Allowlists for the exposed entities
var (
	MemberSchema         = Schema{"id", "name", "email", "phone"}
	WorkoutSessionSchema = Schema{"id", "member_id", "date", "type", "duration"}
)

// Field is a single serialized key/value pair
type Field struct {
	Key   string
	Value any
}

// Object is a serialized row. It marshals as a JSON object with its keys in
// schema order.
type Object []Field

// Get returns the value stored under key and whether it is present
func (o Object) Get(key string) (any, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler
func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dump serializes one row. Fields missing from the row are omitted, fields
// present with a nil value are kept as null, and columns outside the schema
// are dropped.
func (s Schema) Dump(row map[string]any) Object {
	obj := make(Object, 0, len(s))
	for _, key := range s {
		if v, ok := row[key]; ok {
			obj = append(obj, Field{Key: key, Value: v})
		}
	}
	return obj
}

// DumpMany serializes a sequence of rows. The result is never nil.
func DumpMany[R ~map[string]any](s Schema, rows []R) []Object {
	out := make([]Object, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.Dump(map[string]any(row)))
	}
	return out
}
