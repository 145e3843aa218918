package utils

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrorRecordNotFound = errors.New("record not found")

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError reports a referenced record that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(message string) error {
	return &NotFoundError{Message: message}
}

// ConflictError reports a unique-constraint violation (duplicate code or
// document number). Callers regenerate the number and retry.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func NewConflictError(message string) error {
	return &ConflictError{Message: message}
}

// StateError reports a mutation or transition not permitted in the record's
// current status.
type StateError struct {
	Message string
}

func (e *StateError) Error() string { return e.Message }

func NewStateError(message string) error {
	return &StateError{Message: message}
}

// TranslateDBError maps driver-level failures into the engine taxonomy.
// MySQL 1062 (duplicate entry) becomes ConflictError.
func TranslateDBError(err error) error {
	if err == nil {
		return nil
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return NewConflictError("duplicate entry")
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrorRecordNotFound) {
		return NewNotFoundError("record not found")
	}
	return err
}
