package contact_test

import (
	"strings"
	"testing"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

var testMapping = domain.ColumnMapping{
	Name:    "Name",
	Phone:   "Phone",
	Email:   "Email",
	Company: "Company",
	Notes:   "Notes",
}

func TestToCandidateValidRow(t *testing.T) {
	t.Parallel()

	v := app.NewRowValidator(phone.NewNormalizer())

	c := v.ToCandidate(domain.RawRow{
		"Name":    "  Ali   Rezaei ",
		"Phone":   "+98 912 345 6789",
		"Email":   "ali@example.com",
		"Company": "Acme",
		"Notes":   "met at expo",
	}, testMapping)

	if !c.IsValid {
		t.Fatalf("expected valid candidate, errors: %v", c.ValidationErrors)
	}
	if c.Name != "Ali Rezaei" {
		t.Fatalf("expected collapsed whitespace, got %q", c.Name)
	}
	if c.Phone != "+989123456789" {
		t.Fatalf("expected normalized phone, got %q", c.Phone)
	}
	if !c.Selected {
		t.Fatal("expected valid candidate to be selected")
	}
	if c.DuplicateAction != domain.ActionSkip {
		t.Fatalf("unexpected default action: %s", c.DuplicateAction)
	}
	if c.ID == "" {
		t.Fatal("expected generated row id")
	}
}

func TestToCandidateNumericPhoneCell(t *testing.T) {
	t.Parallel()

	v := app.NewRowValidator(phone.NewNormalizer())

	// Spreadsheet parsers deliver numeric cells as float64; the phone must
	// come out as plain digits, never scientific notation.
	c := v.ToCandidate(domain.RawRow{
		"Name":  "Numeric Cell",
		"Phone": 9.123456789e9,
	}, testMapping)

	if !c.IsValid {
		t.Fatalf("expected valid candidate, errors: %v", c.ValidationErrors)
	}
	if c.Phone != "9123456789" {
		t.Fatalf("expected plain digits, got %q", c.Phone)
	}
}

func TestToCandidateInvalidRows(t *testing.T) {
	t.Parallel()

	v := app.NewRowValidator(phone.NewNormalizer())

	tests := []struct {
		name    string
		row     domain.RawRow
		wantErr string
	}{
		{
			name:    "missing name",
			row:     domain.RawRow{"Phone": "+989123456789"},
			wantErr: "name is required",
		},
		{
			name:    "numeric name",
			row:     domain.RawRow{"Name": "12345", "Phone": "+989123456789"},
			wantErr: "name cannot be only numbers",
		},
		{
			name:    "name too long",
			row:     domain.RawRow{"Name": strings.Repeat("x", 201), "Phone": "+989123456789"},
			wantErr: "name too long (201 characters)",
		},
		{
			name:    "missing phone",
			row:     domain.RawRow{"Name": "Ali"},
			wantErr: "phone number is required",
		},
		{
			name:    "phone with letters",
			row:     domain.RawRow{"Name": "Ali", "Phone": "98abc1234567"},
			wantErr: "phone number contains letters",
		},
		{
			name:    "phone too short",
			row:     domain.RawRow{"Name": "Ali", "Phone": "12345"},
			wantErr: "phone number too short (5 digits)",
		},
		{
			name:    "phone all zeros",
			row:     domain.RawRow{"Name": "Ali", "Phone": "0000000000"},
			wantErr: "phone number cannot be all zeros",
		},
		{
			name:    "bad email",
			row:     domain.RawRow{"Name": "Ali", "Phone": "+989123456789", "Email": "not-an-email"},
			wantErr: "invalid email format",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := v.ToCandidate(tt.row, testMapping)

			if c.IsValid {
				t.Fatal("expected invalid candidate")
			}
			if c.Selected {
				t.Fatal("invalid candidate must not be selected")
			}
			found := false
			for _, e := range c.ValidationErrors {
				if e == tt.wantErr {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected error %q in %v", tt.wantErr, c.ValidationErrors)
			}
		})
	}
}

func TestToCandidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	v := app.NewRowValidator(phone.NewNormalizer())

	c := v.ToCandidate(domain.RawRow{
		"Phone": "123",
		"Email": "bad",
	}, testMapping)

	if len(c.ValidationErrors) != 3 {
		t.Fatalf("expected 3 errors (name, phone, email), got %v", c.ValidationErrors)
	}
	if c.ValidationErrors[0] != "name is required" {
		t.Fatalf("expected name error first, got %v", c.ValidationErrors)
	}
}

func TestToCandidateStripsControlCharacters(t *testing.T) {
	t.Parallel()

	v := app.NewRowValidator(phone.NewNormalizer())

	c := v.ToCandidate(domain.RawRow{
		"Name":  "Ali\x00Rezaei\t",
		"Phone": "+989123456789",
	}, testMapping)

	if c.Name != "AliRezaei" {
		t.Fatalf("expected control characters stripped, got %q", c.Name)
	}
}
