package models

import "time"

type ImportJob struct {
	ID                string  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SourcePath        string  `gorm:"type:text;not null"`
	Status            string  `gorm:"type:text;not null"`
	DefaultAction     string  `gorm:"type:text;not null;default:'skip'"`
	CountryCode       string  `gorm:"type:text;not null;default:''"`
	ProgressProcessed int     `gorm:"not null;default:0"`
	ProgressTotal     int     `gorm:"not null;default:0"`
	SuccessfulCount   int     `gorm:"not null;default:0"`
	UpdatedCount      int     `gorm:"not null;default:0"`
	SkippedCount      int     `gorm:"not null;default:0"`
	FailedCount       int     `gorm:"not null;default:0"`
	Attempts          int     `gorm:"not null;default:0"`
	MaxAttempts       int     `gorm:"not null;default:5"`
	ErrorMessage      *string `gorm:"type:text"`
	HeartbeatAt       *time.Time
	LeaseExpiresAt    *time.Time
	StartedAt         *time.Time
	FinishedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (ImportJob) TableName() string {
	return "import_jobs"
}
