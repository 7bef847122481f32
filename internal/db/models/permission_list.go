package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrPermissionListScan is returned when a stored permission list cannot be
// decoded from its database representation.
var ErrPermissionListScan = errors.New("unsupported database value for permission list")

// PermissionList stores a role's permission strings as a JSON array in a
// single text column. Order is irrelevant; the resolver treats it as a set.
type PermissionList []string

// Value implements driver.Valuer, encoding the list as JSON.
func (p PermissionList) Value() (driver.Value, error) {
	if p == nil {
		return "[]", nil
	}

	raw, err := json.Marshal([]string(p))
	if err != nil {
		return nil, fmt.Errorf("failed to encode permission list: %w", err)
	}

	return string(raw), nil
}

// Scan implements sql.Scanner, decoding the JSON array written by Value.
func (p *PermissionList) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*p = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("%w: %T", ErrPermissionListScan, value)
	}

	if len(raw) == 0 {
		*p = nil
		return nil
	}

	if err := json.Unmarshal(raw, (*[]string)(p)); err != nil {
		return fmt.Errorf("failed to decode permission list: %w", err)
	}

	return nil
}
