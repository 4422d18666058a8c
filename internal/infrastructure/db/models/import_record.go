package models

import "time"

// ImportRecord is one completed import, kept as an append-only, size-capped
// history. CreatedIDs is a JSON array of the contact ids the run added.
type ImportRecord struct {
	ID              string `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	FileName        string `gorm:"type:text;not null"`
	TotalCount      int    `gorm:"not null;default:0"`
	SuccessfulCount int    `gorm:"not null;default:0"`
	FailedCount     int    `gorm:"not null;default:0"`
	SkippedCount    int    `gorm:"not null;default:0"`
	UpdatedCount    int    `gorm:"not null;default:0"`
	CreatedIDs      string `gorm:"type:jsonb;not null;default:'[]'"`
	CanUndo         bool   `gorm:"not null;default:false"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ImportRecord) TableName() string {
	return "import_records"
}

// Settings is the single-row import defaults table.
type Settings struct {
	ID            int    `gorm:"primaryKey"`
	BatchSize     int    `gorm:"not null;default:100"`
	DefaultAction string `gorm:"type:text;not null;default:'skip'"`
	CountryCode   string `gorm:"type:text;not null;default:''"`
	UpdatedAt     time.Time
}

func (Settings) TableName() string {
	return "import_settings"
}
