package store

import (
	"errors"
	"strings"
)

// ErrNameTaken indicates a uniqueness violation on a name column
// (year names are unique store-wide).
var ErrNameTaken = errors.New("name already taken")

// isUniqueViolation reports whether err is a SQLite uniqueness
// constraint failure. The modernc driver surfaces these as plain
// errors carrying the SQLite message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
