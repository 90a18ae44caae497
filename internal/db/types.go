package db

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringSlice is a thin wrapper around []string that implements
// sql.Scanner and driver.Valuer so it works transparently with jsonb/text columns.
type StringSlice []string

// Scan implements sql.Scanner
func (s *StringSlice) Scan(src interface{}) error {
	if s == nil {
		return fmt.Errorf("dbtypes: Scan on nil *StringSlice")
	}
	if src == nil {
		*s = []string{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("dbtypes: cannot scan type %T into StringSlice", src)
	}
	out := []string{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*s = out
	return nil
}

// Value implements driver.Valuer
// Marshals the slice to JSON (works well with jsonb columns).
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// JSON holds an already-encoded JSON document stored in a jsonb column.
// The zero value is written as an empty object.
type JSON json.RawMessage

// MarshalJSON keeps the raw document when a record is serialized to API clients.
func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return j, nil
}

// UnmarshalJSON stores a copy of the raw document.
func (j *JSON) UnmarshalJSON(b []byte) error {
	if j == nil {
		return fmt.Errorf("dbtypes: UnmarshalJSON on nil *JSON")
	}
	*j = append((*j)[:0], b...)
	return nil
}

// Scan implements sql.Scanner
func (j *JSON) Scan(src interface{}) error {
	if j == nil {
		return fmt.Errorf("dbtypes: Scan on nil *JSON")
	}
	switch v := src.(type) {
	case nil:
		*j = JSON("{}")
	case []byte:
		*j = append(JSON(nil), v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("dbtypes: cannot scan type %T into JSON", src)
	}
	return nil
}

// Value implements driver.Valuer
func (j JSON) Value() (driver.Value, error) {
	if len(bytes.TrimSpace(j)) == 0 {
		return "{}", nil
	}
	if !json.Valid(j) {
		return nil, fmt.Errorf("dbtypes: invalid json document")
	}
	return string(j), nil
}

// MarshalDocument encodes v into a JSON column value.
func MarshalDocument(v any) (JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return JSON(b), nil
}

// Decode unmarshals the stored document into v.
func (j JSON) Decode(v any) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, v)
}
