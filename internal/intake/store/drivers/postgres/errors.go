package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
	"github.com/aussiebroadwan/intake/internal/intake/store"
	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// clientConstraints maps the named unique constraints on clients to fields.
var clientConstraints = map[string]domain.Field{
	"clients_email_key":         domain.FieldEmail,
	"clients_business_name_key": domain.FieldBusinessName,
}

func asUniqueViolation(err error) (*pq.Error, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr, true
	}
	return nil, false
}

// mapClientInsert turns a clients insert failure into a ConflictError when it
// is a unique violation. The constraint name is authoritative; the message
// heuristic only applies to unknown constraints.
func mapClientInsert(err error) error {
	pqErr, ok := asUniqueViolation(err)
	if !ok {
		return fmt.Errorf("postgres: create client: %w", mapUnavailable(err))
	}
	return store.NewClientConflict(clientConstraints[pqErr.Constraint], pqErr.Constraint, err)
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return mapUnavailable(err)
}

// mapUnavailable wraps connection, authentication and shutdown failures.
func mapUnavailable(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", // connection_exception
			"28", // invalid_authorization_specification
			"53", // insufficient_resources
			"57": // operator_intervention
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}
	return err
}
