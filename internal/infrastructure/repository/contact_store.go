package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

// ContactStore persists contacts in Postgres. Phone numbers and emails are
// stored as text arrays so a contact keeps every number it has ever been
// merged with.
type ContactStore struct {
	pool  *pgxpool.Pool
	phone *phone.Normalizer
}

func NewContactStore(pool *pgxpool.Pool, normalizer *phone.Normalizer) *ContactStore {
	return &ContactStore{pool: pool, phone: normalizer}
}

// CheckPermission reports whether the store is reachable and writable. A
// failed ping maps to a denied permission rather than an error so callers
// can surface it as a terminal import state.
func (s *ContactStore) CheckPermission(ctx context.Context) (domain.Permission, error) {
	if err := s.pool.Ping(ctx); err != nil {
		return domain.Permission{Granted: false, CanAskAgain: true}, nil
	}
	return domain.Permission{Granted: true, CanAskAgain: true}, nil
}

func (s *ContactStore) ListContacts(ctx context.Context) ([]domain.DeviceContact, error) {
	rows, err := s.pool.Query(ctx, `
SELECT id, name, phone_numbers, emails, company
FROM contacts
ORDER BY created_at
`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]domain.DeviceContact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contact.LookupKeys = s.lookupKeysOf(contact.PhoneNumbers)
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return contacts, nil
}

func (s *ContactStore) GetContact(ctx context.Context, contactID string) (*domain.DeviceContact, error) {
	row := s.pool.QueryRow(ctx, `
SELECT id, name, phone_numbers, emails, company
FROM contacts
WHERE id = $1
`, contactID)

	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}

	contact.LookupKeys = s.lookupKeysOf(contact.PhoneNumbers)
	return &contact, nil
}

func (s *ContactStore) AddContact(ctx context.Context, payload domain.ContactPayload) (string, error) {
	var id string

	err := s.pool.QueryRow(ctx, `
INSERT INTO contacts (name, phone_numbers, emails, company, notes, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
RETURNING id
`, payload.Name, phonesOf(payload), emailsOf(payload), payload.Company, payload.Notes).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("add contact: %w", err)
	}

	return id, nil
}

// UpdateContact overwrites the name, appends the phone and email when they
// are not already present, and fills company and notes only when the stored
// contact has none.
func (s *ContactStore) UpdateContact(ctx context.Context, contactID string, payload domain.ContactPayload) error {
	tag, err := s.pool.Exec(ctx, `
UPDATE contacts SET
  name = $2,
  phone_numbers = CASE
    WHEN $3 = '' OR $3 = ANY(phone_numbers) THEN phone_numbers
    ELSE array_append(phone_numbers, $3)
  END,
  emails = CASE
    WHEN $4 = '' OR $4 = ANY(emails) THEN emails
    ELSE array_append(emails, $4)
  END,
  company = CASE WHEN company = '' THEN $5 ELSE company END,
  notes = CASE WHEN notes = '' THEN $6 ELSE notes END,
  updated_at = NOW()
WHERE id = $1
`, contactID, payload.Name, payload.Phone, payload.Email, payload.Company, payload.Notes)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}

	return nil
}

func (s *ContactStore) RemoveContact(ctx context.Context, contactID string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM contacts WHERE id = $1", contactID)
	if err != nil {
		return fmt.Errorf("remove contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}

	return nil
}

func (s *ContactStore) lookupKeysOf(numbers []string) []string {
	keys := make([]string, 0, len(numbers))
	for _, number := range numbers {
		if key := s.phone.LookupKey(number); key != "" {
			keys = append(keys, key)
		}
	}
	return keys
}

func scanContact(row pgx.Row) (domain.DeviceContact, error) {
	var contact domain.DeviceContact
	err := row.Scan(
		&contact.ID,
		&contact.Name,
		&contact.PhoneNumbers,
		&contact.Emails,
		&contact.Company,
	)
	return contact, err
}

func phonesOf(payload domain.ContactPayload) []string {
	if payload.Phone == "" {
		return []string{}
	}
	return []string{payload.Phone}
}

func emailsOf(payload domain.ContactPayload) []string {
	if payload.Email == "" {
		return []string{}
	}
	return []string{payload.Email}
}
