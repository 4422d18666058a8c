package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

type ImportRecordOutput struct {
	ID         string    `json:"id"`
	FileName   string    `json:"file_name"`
	ImportedAt time.Time `json:"imported_at"`
	Total      int       `json:"total"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Skipped    int       `json:"skipped"`
	Updated    int       `json:"updated"`
	CanUndo    bool      `json:"can_undo"`
}

type ListHistory interface {
	Execute(ctx context.Context) ([]ImportRecordOutput, error)
}

type listHistory struct {
	history domain.HistoryRepository
}

func NewListHistory(history domain.HistoryRepository) ListHistory {
	return &listHistory{history: history}
}

func (uc *listHistory) Execute(ctx context.Context) ([]ImportRecordOutput, error) {
	records, err := uc.history.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list import history: %w", err)
	}

	out := make([]ImportRecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, ImportRecordOutput{
			ID:         r.ID,
			FileName:   r.FileName,
			ImportedAt: r.ImportedAt,
			Total:      r.Total,
			Successful: r.Successful,
			Failed:     r.Failed,
			Skipped:    r.Skipped,
			Updated:    r.Updated,
			CanUndo:    r.CanUndo,
		})
	}
	return out, nil
}

type UndoImportInput struct {
	RecordID string
}

type UndoImportOutput struct {
	Removed int `json:"removed"`
	Failed  int `json:"failed"`
}

type UndoImport interface {
	Execute(ctx context.Context, in UndoImportInput) (UndoImportOutput, error)
}

type undoImport struct {
	history domain.HistoryRepository
	store   domain.ContactStore
	phone   *phone.Normalizer
}

func NewUndoImport(history domain.HistoryRepository, store domain.ContactStore, normalizer *phone.Normalizer) UndoImport {
	return &undoImport{history: history, store: store, phone: normalizer}
}

func (uc *undoImport) Execute(ctx context.Context, in UndoImportInput) (UndoImportOutput, error) {
	if !uuidPattern.MatchString(in.RecordID) {
		return UndoImportOutput{}, ErrRecordNotFound
	}

	record, err := uc.history.Get(ctx, in.RecordID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return UndoImportOutput{}, ErrRecordNotFound
		}
		return UndoImportOutput{}, fmt.Errorf("get import record: %w", err)
	}

	if !record.CanUndo || len(record.CreatedIDs) == 0 {
		return UndoImportOutput{}, ErrRecordNotUndoable
	}

	engine := NewEngine(uc.store, uc.phone, EngineConfig{})
	result := engine.Undo(ctx, record.CreatedIDs)

	if result.Failed == 0 {
		if err := uc.history.MarkUndone(ctx, record.ID); err != nil {
			return UndoImportOutput{}, fmt.Errorf("mark record undone: %w", err)
		}
	}

	return UndoImportOutput{Removed: result.Removed, Failed: result.Failed}, nil
}
