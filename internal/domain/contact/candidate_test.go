package contact_test

import (
	"testing"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

func TestColumnMappingIsComplete(t *testing.T) {
	t.Parallel()

	cases := []struct {
		mapping domain.ColumnMapping
		want    bool
	}{
		{domain.ColumnMapping{Name: "Name", Phone: "Phone"}, true},
		{domain.ColumnMapping{Name: "Name", Phone: "Phone", Email: "Email"}, true},
		{domain.ColumnMapping{Name: "Name"}, false},
		{domain.ColumnMapping{Phone: "Phone"}, false},
		{domain.ColumnMapping{Email: "Email", Company: "Company"}, false},
		{domain.ColumnMapping{}, false},
	}

	for _, tc := range cases {
		if got := tc.mapping.IsComplete(); got != tc.want {
			t.Errorf("IsComplete(%+v) = %v, want %v", tc.mapping, got, tc.want)
		}
	}
}
