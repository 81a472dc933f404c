package postgres

import (
	"strings"

	"onlyoomfs/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation reports whether err was caused by a unique
// constraint. GORM only translates driver errors into ErrDuplicatedKey when
// TranslateError is enabled, so the raw Postgres forms are matched as well.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "not-null constraint") ||
		strings.Contains(msg, "null value in column") ||
		strings.Contains(msg, "sqlstate 23502")
}
