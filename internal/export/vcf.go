package export

import (
	"bytes"
	"fmt"

	"github.com/emersion/go-vcard"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

// EncodeVCF renders one version-3.0 vCard per contact. A contact that cannot
// be encoded degrades to a minimal stub card instead of failing the export.
func EncodeVCF(contacts []domain.DeviceContact, opts Options) ([]byte, error) {
	opts.emit(PhaseReading, 0, len(contacts))

	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	opts.emit(PhaseProcessing, 0, len(contacts))
	for i, c := range contacts {
		if err := enc.Encode(cardOf(c)); err != nil {
			if stubErr := enc.Encode(stubCard(c, i)); stubErr != nil {
				return nil, fmt.Errorf("encode vcard %d: %w", i, err)
			}
		}
		opts.emitRow(i, len(contacts))
	}

	opts.emit(PhaseWriting, len(contacts), len(contacts))
	out := buf.Bytes()
	opts.emit(PhaseDone, len(contacts), len(contacts))
	return out, nil
}

func cardOf(c domain.DeviceContact) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, "3.0")

	name := c.Name
	if name == "" {
		if len(c.PhoneNumbers) > 0 {
			name = c.PhoneNumbers[0]
		} else {
			name = "Unknown Contact"
		}
	}
	card.SetValue(vcard.FieldFormattedName, name)
	card.SetValue(vcard.FieldName, ";"+name+";;;")

	for _, number := range c.PhoneNumbers {
		if number != "" {
			card.AddValue(vcard.FieldTelephone, number)
		}
	}
	for _, email := range c.Emails {
		if email != "" {
			card.AddValue(vcard.FieldEmail, email)
		}
	}
	if c.Company != "" {
		card.SetValue(vcard.FieldOrganization, c.Company)
	}

	return card
}

func stubCard(c domain.DeviceContact, index int) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, "3.0")
	name := c.Name
	if name == "" {
		name = fmt.Sprintf("Contact %d", index+1)
	}
	card.SetValue(vcard.FieldFormattedName, name)
	card.SetValue(vcard.FieldName, ";"+name+";;;")
	return card
}
