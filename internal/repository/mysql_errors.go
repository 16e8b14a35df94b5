package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers this package reacts to.
const (
	mysqlErrDuplicateKey = 1062
	mysqlErrLockWait     = 1205
	mysqlErrDeadlock     = 1213
)

func mysqlErrNumber(err error) uint16 {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

// isDuplicateKey reports a unique-constraint violation.
func isDuplicateKey(err error) bool {
	return mysqlErrNumber(err) == mysqlErrDuplicateKey
}

// isLockConflict reports a deadlock or lock wait timeout.  Both mean
// the transaction lost a race and was rolled back by the server; the
// operation itself may still be valid and can be retried.
func isLockConflict(err error) bool {
	n := mysqlErrNumber(err)
	return n == mysqlErrDeadlock || n == mysqlErrLockWait
}
