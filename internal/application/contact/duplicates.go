package contact

import (
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

// DuplicateDetector cross-references candidate rows against the contact-store
// snapshot and against each other within the same batch.
type DuplicateDetector struct {
	phone *phone.Normalizer
}

func NewDuplicateDetector(normalizer *phone.Normalizer) *DuplicateDetector {
	return &DuplicateDetector{phone: normalizer}
}

// BuildLookupIndex maps each lookup key to the store contact owning it. When
// two contacts normalize to the same key the first one encountered wins; this
// is a known, stable imprecision and is not corrected.
func (d *DuplicateDetector) BuildLookupIndex(contacts []domain.DeviceContact) map[string]domain.DeviceContact {
	index := make(map[string]domain.DeviceContact)
	for _, c := range contacts {
		keys := c.LookupKeys
		if len(keys) == 0 {
			for _, number := range c.PhoneNumbers {
				keys = append(keys, d.phone.LookupKey(number))
			}
		}
		for _, key := range keys {
			if key == "" {
				continue
			}
			if _, ok := index[key]; !ok {
				index[key] = c
			}
		}
	}
	return index
}

// Check classifies each valid candidate as new or duplicate. Order matters:
// the first occurrence of a key in the batch is eligible to be new, every
// later occurrence is a duplicate even when no store contact has the key.
// Invalid candidates land in neither bucket. Every classified candidate gets
// defaultAction until the caller overrides it.
func (d *DuplicateDetector) Check(candidates []*domain.Candidate, existing []domain.DeviceContact, defaultAction domain.DuplicateAction) domain.DuplicateCheckResult {
	index := d.BuildLookupIndex(existing)
	seen := make(map[string]bool, len(candidates))

	result := domain.DuplicateCheckResult{TotalExisting: len(existing)}

	for _, c := range candidates {
		if !c.IsValid {
			continue
		}

		key := d.phone.LookupKey(c.Phone)
		match, inStore := index[key]

		c.DuplicateAction = defaultAction
		c.ExistingContactID = ""

		switch {
		case seen[key]:
			c.IsDuplicate = true
			if inStore {
				c.ExistingContactID = match.ID
			}
			result.Duplicates = append(result.Duplicates, c)
		case inStore:
			c.IsDuplicate = true
			c.ExistingContactID = match.ID
			result.Duplicates = append(result.Duplicates, c)
		default:
			c.IsDuplicate = false
			result.NewContacts = append(result.NewContacts, c)
		}

		seen[key] = true
	}

	return result
}
