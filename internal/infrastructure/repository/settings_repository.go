package repository

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRowID pins the settings table to a single row.
const settingsRowID = 1

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Load returns the stored defaults, or the built-in defaults when nothing
// has been saved yet.
func (r *SettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	var row models.Settings

	err := r.db.WithContext(ctx).First(&row, "id = ?", settingsRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("load settings: %w", err)
	}

	return domain.Settings{
		BatchSize:     row.BatchSize,
		DefaultAction: domain.DuplicateAction(row.DefaultAction),
		CountryCode:   row.CountryCode,
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings domain.Settings) error {
	row := models.Settings{
		ID:            settingsRowID,
		BatchSize:     settings.BatchSize,
		DefaultAction: string(settings.DefaultAction),
		CountryCode:   settings.CountryCode,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"batch_size", "default_action", "country_code", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	return nil
}
