package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// IsTriggerRecursionError reports whether the error is MySQL's stored-program
// recursion limit (1456), raised when a trigger chain re-fires on the
// treatments table. Full-payload updates that trip it are retried with a
// minimal single-field update instead.
func IsTriggerRecursionError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1456
}

// IsForeignKeyConstraintError checks for a MySQL/MariaDB foreign key
// constraint failure (1452) so it can surface as a validation response
// instead of a generic 500.
func IsForeignKeyConstraintError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1452
}
