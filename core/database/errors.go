package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// MySQL server error numbers for duplicate entry and foreign key failures.
const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// IsConstraintViolation reports whether err is an integrity constraint
// failure raised by the store, regardless of driver.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	// SQLSTATE class 23: integrity constraint violation
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry || myErr.Number == mysqlNoReferencedRow
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}

	return false
}
