package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

type GetContactInput struct {
	ID string
}

type GetContactOutput struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PhoneNumbers []string `json:"phone_numbers"`
	Emails       []string `json:"emails"`
	Company      string   `json:"company,omitempty"`
}

type GetContact interface {
	Execute(ctx context.Context, in GetContactInput) (GetContactOutput, error)
}

type contactGetter interface {
	GetContact(ctx context.Context, id string) (*domain.DeviceContact, error)
}

type getContact struct {
	store contactGetter
}

func NewGetContact(store contactGetter) GetContact {
	return &getContact{store: store}
}

func (uc *getContact) Execute(ctx context.Context, in GetContactInput) (GetContactOutput, error) {
	if !uuidPattern.MatchString(in.ID) {
		return GetContactOutput{}, ErrInvalidContactID
	}

	found, err := uc.store.GetContact(ctx, in.ID)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return GetContactOutput{}, ErrContactNotFound
		}
		return GetContactOutput{}, fmt.Errorf("%w: %v", ErrGetContact, err)
	}

	return GetContactOutput{
		ID:           found.ID,
		Name:         found.Name,
		PhoneNumbers: found.PhoneNumbers,
		Emails:       found.Emails,
		Company:      found.Company,
	}, nil
}
