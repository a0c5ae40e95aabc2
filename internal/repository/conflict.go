package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicate a write hit a unique index
var ErrDuplicate = errors.New("duplicate record")

// asConflict wraps unique-index violations in ErrDuplicate. gorm translates
// them only when TranslateError is on, so driver messages are matched too:
// sqlite reports "UNIQUE constraint failed", postgres SQLSTATE 23505.
func asConflict(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "sqlstate 23505") {
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}
