package domain

import (
	"strings"
	"time"
)

// Field names a mutable client attribute. The values double as column names
// and as keys in field-level error maps.
type Field string

const (
	FieldName         Field = "name"
	FieldEmail        Field = "email"
	FieldBusinessName Field = "business_name"
)

// Client is a recorded prospective client. ID and CreatedAt are assigned by
// the store; records are never updated or deleted.
type Client struct {
	ID           string
	Name         string
	Email        string
	BusinessName string
	CreatedAt    time.Time
}

// Draft holds the operator-entered fields of a client not yet stored.
type Draft struct {
	Name         string
	Email        string
	BusinessName string
}

// Normalized trims surrounding whitespace from every field.
func (d Draft) Normalized() Draft {
	return Draft{
		Name:         strings.TrimSpace(d.Name),
		Email:        strings.TrimSpace(d.Email),
		BusinessName: strings.TrimSpace(d.BusinessName),
	}
}
