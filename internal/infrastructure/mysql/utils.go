package mysql

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntry checks for a unique-key violation (MySQL error 1062).
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return false
}
