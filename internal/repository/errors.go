package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "portfolio/internal/errors"
)

// isDuplicateKey reports whether err is a unique constraint violation. Dialects that implement
// gorm's error translation return gorm.ErrDuplicatedKey; the message checks cover the rest.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}

// notFound converts gorm's missing-record error into the domain sentinel.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return err
}
