package export

import (
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

// MergeByLookupKey collapses contacts sharing a phone lookup key. The first
// occurrence survives; later duplicates only extend its phone and email lists
// with values it does not already have (emails compared case-insensitively)
// and backfill the company when it was absent. Returns the merged set and the
// number of contacts removed.
func MergeByLookupKey(contacts []domain.DeviceContact, normalizer *phone.Normalizer) ([]domain.DeviceContact, int) {
	merged := make([]domain.DeviceContact, 0, len(contacts))
	owner := make(map[string]int)

	for _, c := range contacts {
		keys := keysOf(c, normalizer)

		// Phone entries without digits produce the empty key; it never
		// links two contacts.
		target := -1
		for _, key := range keys {
			if key == "" {
				continue
			}
			if idx, ok := owner[key]; ok {
				target = idx
				break
			}
		}

		if target < 0 {
			merged = append(merged, cloneContact(c, keys))
			for _, key := range keys {
				if key == "" {
					continue
				}
				if _, ok := owner[key]; !ok {
					owner[key] = len(merged) - 1
				}
			}
			continue
		}

		survivor := &merged[target]
		for i, number := range c.PhoneNumbers {
			if keys[i] == "" {
				continue
			}
			if !containsString(survivor.LookupKeys, keys[i]) {
				survivor.PhoneNumbers = append(survivor.PhoneNumbers, number)
				survivor.LookupKeys = append(survivor.LookupKeys, keys[i])
			}
			if _, ok := owner[keys[i]]; !ok {
				owner[keys[i]] = target
			}
		}
		for _, email := range c.Emails {
			if email != "" && !containsFold(survivor.Emails, email) {
				survivor.Emails = append(survivor.Emails, email)
			}
		}
		if survivor.Company == "" {
			survivor.Company = c.Company
		}
	}

	return merged, len(contacts) - len(merged)
}

func keysOf(c domain.DeviceContact, normalizer *phone.Normalizer) []string {
	keys := make([]string, len(c.PhoneNumbers))
	for i, number := range c.PhoneNumbers {
		keys[i] = normalizer.LookupKey(number)
	}
	return keys
}

func cloneContact(c domain.DeviceContact, keys []string) domain.DeviceContact {
	out := c
	out.PhoneNumbers = append([]string(nil), c.PhoneNumbers...)
	out.Emails = append([]string(nil), c.Emails...)
	out.LookupKeys = append([]string(nil), keys...)
	return out
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

func containsFold(values []string, v string) bool {
	for _, existing := range values {
		if strings.EqualFold(existing, v) {
			return true
		}
	}
	return false
}
