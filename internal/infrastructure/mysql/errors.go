package mysql

import (
	"errors"

	driver "github.com/go-sql-driver/mysql"
)

// Server error numbers the repositories translate into application errors.
const (
	ErrDuplicateEntry  = 1062
	ErrRowIsReferenced = 1451
	ErrNoReferencedRow = 1452
)

func hasErrorNumber(err error, number uint16) bool {
	var mysqlErr *driver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == number
	}
	return false
}

// IsDuplicateEntry reports a unique or primary key violation.
func IsDuplicateEntry(err error) bool {
	return hasErrorNumber(err, ErrDuplicateEntry)
}

// IsMissingReference reports a foreign key pointing at a row that does not exist.
func IsMissingReference(err error) bool {
	return hasErrorNumber(err, ErrNoReferencedRow)
}

// IsReferenced reports a delete or key update blocked by child rows.
func IsReferenced(err error) bool {
	return hasErrorNumber(err, ErrRowIsReferenced)
}
