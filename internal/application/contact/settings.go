package contact

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

type UpdateSettingsInput struct {
	BatchSize     int    `json:"batch_size"`
	DefaultAction string `json:"default_duplicate_action"`
	CountryCode   string `json:"default_country_code"`
}

type ManageSettings interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, in UpdateSettingsInput) (domain.Settings, error)
}

type manageSettings struct {
	repo domain.SettingsRepository
}

func NewManageSettings(repo domain.SettingsRepository) ManageSettings {
	return &manageSettings{repo: repo}
}

func (uc *manageSettings) Get(ctx context.Context) (domain.Settings, error) {
	settings, err := uc.repo.Load(ctx)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings, nil
}

func (uc *manageSettings) Update(ctx context.Context, in UpdateSettingsInput) (domain.Settings, error) {
	action := domain.DuplicateAction(in.DefaultAction)
	switch action {
	case "", domain.ActionSkip, domain.ActionUpdate, domain.ActionForceAdd:
	default:
		return domain.Settings{}, ErrInvalidImportAction
	}

	if in.BatchSize < 0 {
		in.BatchSize = 0
	}

	settings := domain.Settings{
		BatchSize:     in.BatchSize,
		DefaultAction: action,
		CountryCode:   in.CountryCode,
	}
	if err := uc.repo.Save(ctx, settings); err != nil {
		return domain.Settings{}, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
