package domain

import "time"

// Operator is a staff account allowed to record clients.
type Operator struct {
	ID           string
	Email        string
	PasswordHash string     // argon2id PHC string
	ConfirmedAt  *time.Time // nil until the confirmation link is followed
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Confirmed reports whether the operator has confirmed their email.
func (o Operator) Confirmed() bool {
	return o.ConfirmedAt != nil
}

// Confirmation is a pending email-confirmation token for an operator. Only
// the SHA-256 fingerprint of the token is stored.
type Confirmation struct {
	ID         string
	OperatorID string
	TokenHash  string
	ExpiresAt  time.Time
	CreatedAt  time.Time
}

// Expired reports whether the confirmation is no longer usable at now.
func (c Confirmation) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
