package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// ── PostgreSQL TEXT[] custom type ──

// StringArray maps a PostgreSQL TEXT[] column, implementing the GORM
// Scanner/Valuer interfaces. Elements are fiche ids and badge ids; fiche
// ids arrive from clients, so the codec must survive any string, commas
// and braces included. Encoding is delegated to pq.StringArray, which
// quotes and escapes per the array literal grammar.
type StringArray []string

// Scan parses the PostgreSQL array literal into []string.
func (a *StringArray) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return fmt.Errorf("StringArray.Scan: %w", err)
	}
	*a = StringArray(arr)
	return nil
}

// Value serializes []string as a PostgreSQL array literal. A nil array
// stores as the empty array, never as NULL.
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	return pq.StringArray(a).Value()
}

// Contains reports whether the array holds s.
func (a StringArray) Contains(s string) bool {
	for _, v := range a {
		if v == s {
			return true
		}
	}
	return false
}

// AddUnique appends s unless already present (set semantics).
// Returns true when the element was added.
func (a *StringArray) AddUnique(s string) bool {
	if a.Contains(s) {
		return false
	}
	*a = append(*a, s)
	return true
}

// ── JSONB helpers shared by the document column types ──

func jsonbScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("jsonb scan: unsupported type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

func jsonbValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
