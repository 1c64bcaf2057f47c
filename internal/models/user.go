package models

import (
	"database/sql/driver"
	"fmt"
)

// Role is the marketplace role a user picked after registration.
type Role string

const (
	// RoleUnset marks a user that registered but has not chosen a role yet.
	RoleUnset Role = ""
	// RoleAdvertiser marks a user that buys ad placements.
	RoleAdvertiser Role = "advertiser"
	// RolePublisher marks a channel owner that sells placements.
	RolePublisher Role = "publisher"
)

// Valid reports whether the role is one of the closed set, including unset.
func (r Role) Valid() bool {
	switch r {
	case RoleUnset, RoleAdvertiser, RolePublisher:
		return true
	}
	return false
}

// Scan implements sql.Scanner. A NULL column maps to RoleUnset.
func (r *Role) Scan(src interface{}) error {
	if src == nil {
		*r = RoleUnset
		return nil
	}
	var s string
	switch v := src.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("role: unsupported scan type %T", src)
	}
	role := Role(s)
	if !role.Valid() {
		return fmt.Errorf("role: unknown value %q", s)
	}
	*r = role
	return nil
}

// Value implements driver.Valuer. RoleUnset is stored as NULL.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("role: unknown value %q", string(r))
	}
	if r == RoleUnset {
		return nil, nil
	}
	return string(r), nil
}

// User is a marketplace account keyed by the Telegram user ID.
type User struct {
	ID      int64   `db:"id"`
	Role    Role    `db:"role"`
	Balance float64 `db:"balance"`
}
