package database

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrDuplicateSubmission is returned when inserting a submission whose
// post_id is already present in the catalog. The gathering pipeline checks
// for existing rows first, so hitting this indicates a contract violation.
var ErrDuplicateSubmission = errors.New("database: duplicate submission post id")

func isUniqueConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
