package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadySent is returned when recording a reminder that the ledger
// already holds for that session and kind.
var ErrAlreadySent = errors.New("reminder already sent")

// isUniqueViolation reports whether err is a SQLite unique constraint
// failure. modernc.org/sqlite surfaces these only as error strings.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
