package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/infrastructure/db/models"
	"gorm.io/gorm"
)

// maxHistoryRecords caps how many import records are retained. Older
// records are pruned on save, oldest first.
const maxHistoryRecords = 50

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Save(ctx context.Context, record domain.ImportRecord) error {
	ids, err := json.Marshal(record.CreatedIDs)
	if err != nil {
		return fmt.Errorf("encode created ids: %w", err)
	}

	row := models.ImportRecord{
		ID:              record.ID,
		FileName:        record.FileName,
		TotalCount:      record.Total,
		SuccessfulCount: record.Successful,
		FailedCount:     record.Failed,
		SkippedCount:    record.Skipped,
		UpdatedCount:    record.Updated,
		CreatedIDs:      string(ids),
		CanUndo:         record.CanUndo,
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("create import record: %w", err)
		}
		return tx.Exec(`
DELETE FROM import_records
WHERE id NOT IN (
  SELECT id FROM import_records ORDER BY created_at DESC LIMIT ?
)
`, maxHistoryRecords).Error
	})
}

func (r *HistoryRepository) List(ctx context.Context) ([]domain.ImportRecord, error) {
	var rows []models.ImportRecord

	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(maxHistoryRecords).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list import records: %w", err)
	}

	records := make([]domain.ImportRecord, 0, len(rows))
	for _, row := range rows {
		record, err := recordOf(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *HistoryRepository) Get(ctx context.Context, recordID string) (*domain.ImportRecord, error) {
	var row models.ImportRecord

	err := r.db.WithContext(ctx).First(&row, "id = ?", recordID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("get import record: %w", err)
	}

	record, err := recordOf(row)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *HistoryRepository) MarkUndone(ctx context.Context, recordID string) error {
	res := r.db.WithContext(ctx).Model(&models.ImportRecord{}).
		Where("id = ?", recordID).
		Update("can_undo", false)
	if res.Error != nil {
		return fmt.Errorf("mark import record undone: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func recordOf(row models.ImportRecord) (domain.ImportRecord, error) {
	var createdIDs []string
	if row.CreatedIDs != "" {
		if err := json.Unmarshal([]byte(row.CreatedIDs), &createdIDs); err != nil {
			return domain.ImportRecord{}, fmt.Errorf("decode created ids: %w", err)
		}
	}

	return domain.ImportRecord{
		ID:         row.ID,
		FileName:   row.FileName,
		ImportedAt: row.CreatedAt,
		Total:      row.TotalCount,
		Successful: row.SuccessfulCount,
		Failed:     row.FailedCount,
		Skipped:    row.SkippedCount,
		Updated:    row.UpdatedCount,
		CreatedIDs: createdIDs,
		CanUndo:    row.CanUndo,
	}, nil
}
