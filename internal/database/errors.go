package database

import (
	"errors"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique constraint violation.
// Dialects that translate errors return gorm.ErrDuplicatedKey, the others
// are recognized by driver error number or message.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "sqlstate 23505")
}

// SupportsRowLocking reports whether the dialect understands SELECT ... FOR UPDATE
func SupportsRowLocking(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return true
	}
	return false
}
