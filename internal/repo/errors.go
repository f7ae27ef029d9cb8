package repo

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// ErrNotFound is returned when no row matches the given identifier.
var ErrNotFound = errors.New("not found")

// ErrDuplicateSerial is returned when a write violates the serial number
// uniqueness constraint.
var ErrDuplicateSerial = errors.New("duplicate serial number")

// uniqueViolation is the Postgres error code for unique_violation.
const uniqueViolation = "23505"

// mapWriteErr translates driver errors from asset writes into the repo's
// sentinel errors. Other errors pass through unchanged.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateSerial
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
