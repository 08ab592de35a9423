// Package validation checks client drafts before they reach the store.
//
// Every rule is evaluated per field and the first failing rule wins, so a
// field carries at most one message. Validate is pure: the same draft always
// yields the same Errors.
package validation

import (
	"maps"
	"regexp"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"

	"github.com/aussiebroadwan/intake/internal/intake/domain"
)

// Messages shown next to the offending field.
const (
	MsgNameRequired         = "Name is required"
	MsgNameLength           = "Name must be between 3 and 100 characters"
	MsgNameFormat           = "Name can only contain letters, spaces, hyphens and apostrophes"
	MsgEmailRequired        = "Email is required"
	MsgEmailFormat          = "Please enter a valid email address"
	MsgBusinessNameRequired = "Business name is required"
)

const (
	NameMinLength = 3
	NameMaxLength = 100
)

var (
	nameMin = strconv.Itoa(NameMinLength)
	nameMax = strconv.Itoa(NameMaxLength)

	// Letter runs joined by exactly one space, hyphen or apostrophe.
	namePattern = regexp.MustCompile(`^\p{L}+(?:[ '\-]\p{L}+)*$`)

	tldPattern = regexp.MustCompile(`^[A-Za-z]{2,}$`)
)

// Errors maps a field to its message. An absent key means the field passed.
type Errors map[domain.Field]string

// Valid reports whether there are no errors.
func (e Errors) Valid() bool { return len(e) == 0 }

// Has reports whether f has an error.
func (e Errors) Has(f domain.Field) bool {
	_, ok := e[f]
	return ok
}

// Clone returns an independent copy.
func (e Errors) Clone() Errors {
	if e == nil {
		return Errors{}
	}
	return maps.Clone(e)
}

// Validate returns the field errors for d. An empty map means d is valid.
func Validate(d domain.Draft) Errors {
	errs := Errors{}
	if msg, ok := Name(d.Name); !ok {
		errs[domain.FieldName] = msg
	}
	if msg, ok := Email(d.Email); !ok {
		errs[domain.FieldEmail] = msg
	}
	if msg, ok := BusinessName(d.BusinessName); !ok {
		errs[domain.FieldBusinessName] = msg
	}
	return errs
}

// Name checks a display name.
func Name(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return MsgNameRequired, false
	}
	if !govalidator.RuneLength(v, nameMin, nameMax) {
		return MsgNameLength, false
	}
	if !namePattern.MatchString(v) {
		return MsgNameFormat, false
	}
	return "", true
}

// Email checks an address.
func Email(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return MsgEmailRequired, false
	}
	if !govalidator.IsEmail(v) || !dottedDomain(v) {
		return MsgEmailFormat, false
	}
	return "", true
}

// dottedDomain requires the domain to have at least one dot, no empty
// labels and an alphabetic TLD of two or more letters.
func dottedDomain(addr string) bool {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return false
	}
	labels := strings.Split(addr[at+1:], ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if l == "" {
			return false
		}
	}
	return tldPattern.MatchString(labels[len(labels)-1])
}

// BusinessName only requires a non-blank value.
func BusinessName(v string) (string, bool) {
	if strings.TrimSpace(v) == "" {
		return MsgBusinessNameRequired, false
	}
	return "", true
}
