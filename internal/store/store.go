// Package store holds the per-entity repositories. Entities stay plain data
// structs; every query the handlers need goes through a store method.
package store

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound covers both a genuinely absent row and an ownership
	// mismatch on owner-scoped lookups, so callers cannot tell them apart.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a uniqueness violation (email, phone, username).
	ErrConflict = errors.New("record already exists")
)

func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint")
}
