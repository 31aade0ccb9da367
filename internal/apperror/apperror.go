// Package apperror classifies failures into the small set of kinds the API
// reports and maps each kind to an HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type Kind string

const (
	Unauthorized Kind = "unauthorized"
	NotFound     Kind = "not_found"
	Validation   Kind = "validation"
	Duplicate    Kind = "duplicate"
	Database     Kind = "database"
	Unknown      Kind = "unknown"
)

// Error carries a kind and a message that is safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Status returns the HTTP status code for a kind.
func Status(kind Kind) int {
	switch kind {
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Validation:
		return http.StatusBadRequest
	case Duplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// From classifies any error. An *Error anywhere in the chain wins; otherwise
// gorm sentinels, driver unique violations and validator errors are
// recognised. Database and unknown errors get a generic message.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(NotFound, "Record not found", err)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return Wrap(Duplicate, "A record with the same unique value already exists", err)
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return Wrap(Validation, validationMessage(verrs), err)
	}

	if isDatabaseError(err) {
		return Wrap(Database, "Database error", err)
	}
	return Wrap(Unknown, "Internal server error", err)
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || // sqlite
		strings.Contains(msg, "duplicate entry") || // mysql
		strings.Contains(msg, "duplicate key value") // postgres
}

func isDatabaseError(err error) bool {
	for _, sentinel := range []error{
		gorm.ErrInvalidTransaction,
		gorm.ErrInvalidData,
		gorm.ErrInvalidField,
		gorm.ErrMissingWhereClause,
		gorm.ErrUnsupportedDriver,
		gorm.ErrForeignKeyViolated,
		gorm.ErrInvalidDB,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sql") || strings.Contains(msg, "database") || strings.Contains(msg, "constraint")
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "min", "gte":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param()))
		case "email":
			parts = append(parts, fmt.Sprintf("%s must be a valid email", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
