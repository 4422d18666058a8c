package export

import (
	"bytes"
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

// EncodeCSV renders contacts as Name,Phone,Email,Company rows. Phone cells
// are wrapped in the ="..." formula-literal idiom so spreadsheet applications
// keep them as text instead of collapsing long digit strings into scientific
// notation.
func EncodeCSV(contacts []domain.DeviceContact, opts Options) ([]byte, error) {
	opts.emit(PhaseReading, 0, len(contacts))

	var buf bytes.Buffer
	buf.WriteString("Name,Phone,Email,Company\r\n")

	opts.emit(PhaseProcessing, 0, len(contacts))
	for i, c := range contacts {
		buf.WriteString(escapeField(c.Name))
		buf.WriteByte(',')
		buf.WriteString(phoneField(c.PhoneNumbers))
		buf.WriteByte(',')
		buf.WriteString(escapeField(strings.Join(c.Emails, "; ")))
		buf.WriteByte(',')
		buf.WriteString(escapeField(c.Company))
		buf.WriteString("\r\n")
		opts.emitRow(i, len(contacts))
	}

	opts.emit(PhaseWriting, len(contacts), len(contacts))
	out := buf.Bytes()
	opts.emit(PhaseDone, len(contacts), len(contacts))
	return out, nil
}

// phoneField joins the numbers into one formula literal. Normalized phone
// strings contain only digits and an optional "+", so nothing inside the
// quotes needs escaping.
func phoneField(numbers []string) string {
	if len(numbers) == 0 {
		return ""
	}
	return `="` + strings.Join(numbers, "; ") + `"`
}

// escapeField quote-wraps fields containing commas, quotes or newlines and
// doubles internal quotes.
func escapeField(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
