package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var errUnsupportedColumn = errors.New("unsupported column type for JSON value")

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		if len(v) == 0 {
			return nil
		}
		return json.Unmarshal(v, dest)
	case string:
		if v == "" {
			return nil
		}
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("%w: %T", errUnsupportedColumn, value)
	}
}

// SettingsMap stores arbitrary per-user preferences as a JSON column.
// Values are limited to what encoding/json round-trips: strings, numbers,
// booleans, nested objects and arrays.
type SettingsMap map[string]interface{}

func (m SettingsMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SettingsMap) Scan(value interface{}) error {
	return scanJSON(value, m)
}

// StringList stores a list of strings as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// IDList stores a list of entity IDs as a JSON column.
type IDList []uint64

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *IDList) Scan(value interface{}) error {
	return scanJSON(value, l)
}
