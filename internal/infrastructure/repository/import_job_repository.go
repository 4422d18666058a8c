package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

type ImportJobRepository struct {
	db *gorm.DB
}

func NewImportJobRepository(db *gorm.DB) *ImportJobRepository {
	return &ImportJobRepository{db: db}
}

func (r *ImportJobRepository) Enqueue(ctx context.Context, job domain.ImportJob) (string, error) {
	action := string(job.DefaultAction)
	if action == "" {
		action = string(domain.ActionSkip)
	}

	row := models.ImportJob{
		SourcePath:    job.SourcePath,
		Status:        "queued",
		DefaultAction: action,
		CountryCode:   job.CountryCode,
		MaxAttempts:   5,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return "", fmt.Errorf("create import job: %w", err)
	}

	return row.ID, nil
}

// ClaimNext atomically claims the oldest runnable job: queued, or running
// with an expired lease. Returns nil when there is nothing to claim.
func (r *ImportJobRepository) ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error) {
	var row models.ImportJob

	res := r.db.WithContext(ctx).Raw(`
UPDATE import_jobs SET
  status = 'running',
  attempts = attempts + 1,
  started_at = COALESCE(started_at, NOW()),
  heartbeat_at = NOW(),
  lease_expires_at = NOW() + make_interval(secs => ?),
  updated_at = NOW()
WHERE id = (
  SELECT id FROM import_jobs
  WHERE status = 'queued'
     OR (status = 'running' AND lease_expires_at < NOW())
  ORDER BY created_at
  LIMIT 1
  FOR UPDATE SKIP LOCKED
)
RETURNING id, source_path, status, default_action, country_code, attempts, max_attempts
`, leaseDuration.Seconds()).Scan(&row)
	if res.Error != nil {
		return nil, fmt.Errorf("claim import job: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}

	return &domain.ImportJob{
		ID:            row.ID,
		SourcePath:    row.SourcePath,
		Status:        row.Status,
		DefaultAction: domain.DuplicateAction(row.DefaultAction),
		CountryCode:   row.CountryCode,
		Attempts:      row.Attempts,
		MaxAttempts:   row.MaxAttempts,
	}, nil
}

func (r *ImportJobRepository) Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error {
	err := r.db.WithContext(ctx).Exec(`
UPDATE import_jobs SET
  heartbeat_at = NOW(),
  lease_expires_at = NOW() + make_interval(secs => ?),
  updated_at = NOW()
WHERE id = ?
`, leaseDuration.Seconds(), jobID).Error
	if err != nil {
		return fmt.Errorf("heartbeat import job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(progressColumns(progress)).Error
	if err != nil {
		return fmt.Errorf("update import job progress: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) Complete(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	cols := progressColumns(progress)
	cols["status"] = "succeeded"
	cols["finished_at"] = time.Now().UTC()

	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(cols).Error
	if err != nil {
		return fmt.Errorf("complete import job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) Requeue(ctx context.Context, jobID string, reason string) error {
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":           "queued",
			"error_message":    reason,
			"lease_expires_at": nil,
		}).Error
	if err != nil {
		return fmt.Errorf("requeue import job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) Fail(ctx context.Context, jobID string, reason string) error {
	err := r.db.WithContext(ctx).Model(&models.ImportJob{}).
		Where("id = ?", jobID).
		Updates(map[string]any{
			"status":        "failed",
			"error_message": reason,
			"finished_at":   time.Now().UTC(),
		}).Error
	if err != nil {
		return fmt.Errorf("fail import job: %w", err)
	}
	return nil
}

func (r *ImportJobRepository) GetStatus(ctx context.Context, jobID string) (*domain.ImportJobStatus, error) {
	var row models.ImportJob

	err := r.db.WithContext(ctx).First(&row, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get import job: %w", err)
	}

	status := &domain.ImportJobStatus{
		ID:         row.ID,
		SourcePath: row.SourcePath,
		Status:     row.Status,
		Progress: domain.ImportProgress{
			Total:      row.ProgressTotal,
			Processed:  row.ProgressProcessed,
			Successful: row.SuccessfulCount,
			Failed:     row.FailedCount,
			Skipped:    row.SkippedCount,
			Updated:    row.UpdatedCount,
		},
		CreatedAt:  row.CreatedAt,
		FinishedAt: row.FinishedAt,
	}
	if row.ErrorMessage != nil {
		status.ErrorMessage = *row.ErrorMessage
	}
	return status, nil
}

func progressColumns(p domain.ImportProgress) map[string]any {
	return map[string]any{
		"progress_processed": p.Processed,
		"progress_total":     p.Total,
		"successful_count":   p.Successful,
		"updated_count":      p.Updated,
		"skipped_count":      p.Skipped,
		"failed_count":       p.Failed,
	}
}
