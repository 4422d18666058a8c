package contact

import (
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

// Header aliases per semantic field, in priority order. Matching is
// case-insensitive and allows substring containment in either direction, so
// "Phone Number" matches the "phone" alias and "mob" matches "Mobile".
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{"name", []string{
		"name", "full name", "fullname", "contact name", "person",
		"customer", "client", "नाम", "nombre", "nome", "nom",
	}},
	{"phone", []string{
		"phone", "mobile", "phone number", "mobile number", "cell",
		"telephone", "tel", "contact number", "number", "mob", "whatsapp",
		"फ़ोन", "मोबाइल", "telefono", "teléfono", "telefone", "téléphone",
	}},
	{"email", []string{
		"email", "e-mail", "mail", "email address", "ईमेल", "correo",
	}},
	{"company", []string{
		"company", "organization", "organisation", "org", "employer",
		"business", "firm", "कंपनी", "empresa",
	}},
	{"notes", []string{
		"notes", "note", "comments", "comment", "remarks", "description",
		"टिप्पणी", "notas",
	}},
}

// AutoDetectMapping assigns spreadsheet headers to semantic fields by alias
// matching. Each header is claimed at most once and the first claim wins, so
// no two fields ever share a header. A field with no matching alias stays
// unmapped.
func AutoDetectMapping(headers []string) domain.ColumnMapping {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	claimed := make(map[int]bool, len(headers))
	var mapping domain.ColumnMapping

	for _, fa := range fieldAliases {
		idx := claimHeader(lowered, claimed, fa.aliases)
		if idx < 0 {
			continue
		}
		claimed[idx] = true

		switch fa.field {
		case "name":
			mapping.Name = headers[idx]
		case "phone":
			mapping.Phone = headers[idx]
		case "email":
			mapping.Email = headers[idx]
		case "company":
			mapping.Company = headers[idx]
		case "notes":
			mapping.Notes = headers[idx]
		}
	}

	return mapping
}

func claimHeader(lowered []string, claimed map[int]bool, aliases []string) int {
	for _, alias := range aliases {
		for i, header := range lowered {
			if claimed[i] || header == "" {
				continue
			}
			if header == alias || strings.Contains(header, alias) || strings.Contains(alias, header) {
				return i
			}
		}
	}
	return -1
}
