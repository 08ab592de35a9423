package store

import (
	"fmt"
	"strings"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

// ConflictError reports a uniqueness violation on a single client field.
// It matches ErrAlreadyExists under errors.Is.
type ConflictError struct {
	Field domain.Field

	// Constraint is the database constraint name when the driver reports one.
	Constraint string

	Err error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("store: %s already exists", e.Field)
}

func (e *ConflictError) Unwrap() error { return e.Err }

func (e *ConflictError) Is(target error) bool { return target == ErrAlreadyExists }

// ConflictFieldFromMessage recovers the conflicting client field from a
// driver's unique-violation message. Email is checked first so a message
// naming both resolves to email. This is a fallback for drivers that do not
// expose a structured constraint name.
func ConflictFieldFromMessage(msg string) (domain.Field, bool) {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, string(domain.FieldEmail)):
		return domain.FieldEmail, true
	case strings.Contains(msg, string(domain.FieldBusinessName)):
		return domain.FieldBusinessName, true
	default:
		return "", false
	}
}

// NewClientConflict builds the error for a unique violation on the clients
// table. When the field cannot be recovered the violation is reported as a
// plain ErrAlreadyExists so callers fall back to a generic message.
func NewClientConflict(field domain.Field, constraint string, cause error) error {
	if field == "" {
		var ok bool
		if field, ok = ConflictFieldFromMessage(constraint + " " + errString(cause)); !ok {
			return fmt.Errorf("%w: %v", ErrAlreadyExists, cause)
		}
	}
	return &ConflictError{Field: field, Constraint: constraint, Err: cause}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
