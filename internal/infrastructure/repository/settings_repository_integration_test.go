package repository_test

import (
	"context"
	"os"
	"testing"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const importSettingsSchema = `
    CREATE TABLE IF NOT EXISTS import_settings (
      id INT PRIMARY KEY,
      batch_size INT NOT NULL DEFAULT 100,
      default_action TEXT NOT NULL DEFAULT 'skip',
      country_code TEXT NOT NULL DEFAULT '',
      updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    );
    `

func TestSettingsRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}

	if err := db.Exec(importSettingsSchema).Error; err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := db.Exec("DELETE FROM import_settings").Error; err != nil {
		t.Fatalf("failed to cleanup import_settings: %v", err)
	}

	repo := repository.NewSettingsRepository(db)

	settings, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if settings.BatchSize != 100 || settings.DefaultAction != domain.ActionSkip {
		t.Fatalf("unexpected defaults: %+v", settings)
	}

	err = repo.Save(context.Background(), domain.Settings{
		BatchSize:     50,
		DefaultAction: domain.ActionUpdate,
		CountryCode:   "+98",
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Saving again exercises the single-row upsert.
	err = repo.Save(context.Background(), domain.Settings{
		BatchSize:     25,
		DefaultAction: domain.ActionForceAdd,
		CountryCode:   "+1",
	})
	if err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	settings, err = repo.Load(context.Background())
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if settings.BatchSize != 25 || settings.DefaultAction != domain.ActionForceAdd || settings.CountryCode != "+1" {
		t.Fatalf("unexpected settings after save: %+v", settings)
	}
}
