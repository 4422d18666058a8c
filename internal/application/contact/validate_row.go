package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

const (
	maxNameLength  = 200
	maxEmailLength = 254
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// RowValidator turns raw spreadsheet rows into typed candidates. Row ids are
// UUIDs, unique across rapid successive calls and safe for concurrent use.
type RowValidator struct {
	phone *phone.Normalizer
}

func NewRowValidator(normalizer *phone.Normalizer) *RowValidator {
	return &RowValidator{phone: normalizer}
}

// ToCandidate sanitizes and validates one raw row against the mapping. Every
// failing check is recorded, in the order name, phone, email; the stored
// phone is the normalized canonical form.
func (v *RowValidator) ToCandidate(raw domain.RawRow, mapping domain.ColumnMapping) *domain.Candidate {
	name := sanitizeText(phone.StringifyCell(raw[mapping.Name]))
	rawPhone := sanitizeText(phone.StringifyCell(raw[mapping.Phone]))
	email := sanitizeText(phone.StringifyCell(raw[mapping.Email]))
	company := sanitizeText(phone.StringifyCell(raw[mapping.Company]))
	notes := sanitizeText(phone.StringifyCell(raw[mapping.Notes]))

	errs := validateFields(name, rawPhone, email, v.phone)

	candidate := &domain.Candidate{
		ID:               uuid.NewString(),
		Name:             name,
		Phone:            v.phone.Normalize(rawPhone),
		Email:            email,
		Company:          company,
		Notes:            notes,
		IsValid:          len(errs) == 0,
		ValidationErrors: errs,
		DuplicateAction:  domain.ActionSkip,
	}
	candidate.Selected = candidate.IsValid

	return candidate
}

// validateFields runs the name, phone and email checks in that order and
// returns every failure. The engine reuses it to re-validate rows before
// writing.
func validateFields(name, rawPhone, email string, normalizer *phone.Normalizer) []string {
	var errs []string

	switch {
	case name == "":
		errs = append(errs, "name is required")
	case len(name) > maxNameLength:
		errs = append(errs, fmt.Sprintf("name too long (%d characters)", len(name)))
	case entirelyNumeric(name):
		errs = append(errs, "name cannot be only numbers")
	}

	if err := normalizer.Validate(rawPhone); err != nil {
		errs = append(errs, err.Error())
	}

	if email != "" {
		if len(email) > maxEmailLength {
			errs = append(errs, fmt.Sprintf("email too long (%d characters)", len(email)))
		} else if !emailPattern.MatchString(email) {
			errs = append(errs, "invalid email format")
		}
	}

	return errs
}

// sanitizeText trims, drops control characters and collapses internal
// whitespace runs to single spaces.
func sanitizeText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)

	return strings.Join(strings.Fields(cleaned), " ")
}

func entirelyNumeric(s string) bool {
	seen := false
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
		seen = true
	}
	return seen
}
