package contact_test

import (
	"testing"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

func TestAutoDetectMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers []string
		want    map[string]string // field -> header
	}{
		{
			name:    "exact headers",
			headers: []string{"Name", "Phone", "Email", "Company", "Notes"},
			want:    map[string]string{"name": "Name", "phone": "Phone", "email": "Email", "company": "Company", "notes": "Notes"},
		},
		{
			name:    "containment both ways",
			headers: []string{"Full Name", "Mobile Number", "E-Mail Address"},
			want:    map[string]string{"name": "Full Name", "phone": "Mobile Number", "email": "E-Mail Address"},
		},
		{
			name:    "abbreviated header matches alias",
			headers: []string{"Customer", "Mob"},
			want:    map[string]string{"name": "Customer", "phone": "Mob"},
		},
		{
			name:    "multilingual headers",
			headers: []string{"Nombre", "Teléfono", "Correo"},
			want:    map[string]string{"name": "Nombre", "phone": "Teléfono", "email": "Correo"},
		},
		{
			name:    "nothing matches",
			headers: []string{"Street", "City", "Zip"},
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapping := app.AutoDetectMapping(tt.headers)

			got := map[string]string{
				"name":    mapping.Name,
				"phone":   mapping.Phone,
				"email":   mapping.Email,
				"company": mapping.Company,
				"notes":   mapping.Notes,
			}
			for field, header := range tt.want {
				if got[field] != header {
					t.Errorf("field %s: expected %q, got %q", field, header, got[field])
				}
			}
			for field, header := range got {
				if header != "" && tt.want[field] == "" {
					t.Errorf("field %s: unexpected mapping to %q", field, header)
				}
			}
		})
	}
}

func TestAutoDetectMappingClaimsHeaderOnce(t *testing.T) {
	t.Parallel()

	// "Contact Number" contains both "contact" (a name alias would not match
	// it, but "contact name" could via containment) and "number"; the phone
	// field must still win it without stealing the real name column.
	mapping := app.AutoDetectMapping([]string{"Contact Name", "Contact Number"})

	if mapping.Name != "Contact Name" {
		t.Fatalf("unexpected name header: %q", mapping.Name)
	}
	if mapping.Phone != "Contact Number" {
		t.Fatalf("unexpected phone header: %q", mapping.Phone)
	}
}

func TestAutoDetectMappingIncomplete(t *testing.T) {
	t.Parallel()

	mapping := app.AutoDetectMapping([]string{"Name", "Address"})
	if mapping.IsComplete() {
		t.Fatal("expected incomplete mapping without a phone column")
	}
}
