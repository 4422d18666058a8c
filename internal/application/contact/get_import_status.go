package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

type GetImportStatusInput struct {
	JobID string
}

type GetImportStatusOutput struct {
	JobID        string     `json:"job_id"`
	SourcePath   string     `json:"source_path"`
	Status       string     `json:"status"`
	Total        int        `json:"total"`
	Processed    int        `json:"processed"`
	Successful   int        `json:"successful"`
	Failed       int        `json:"failed"`
	Skipped      int        `json:"skipped"`
	Updated      int        `json:"updated"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

type GetImportStatus interface {
	Execute(ctx context.Context, in GetImportStatusInput) (GetImportStatusOutput, error)
}

type jobStatusGetter interface {
	GetStatus(ctx context.Context, jobID string) (*domain.ImportJobStatus, error)
}

type getImportStatus struct {
	repo jobStatusGetter
}

func NewGetImportStatus(repo jobStatusGetter) GetImportStatus {
	return &getImportStatus{repo: repo}
}

func (uc *getImportStatus) Execute(ctx context.Context, in GetImportStatusInput) (GetImportStatusOutput, error) {
	if !uuidPattern.MatchString(in.JobID) {
		return GetImportStatusOutput{}, ErrJobNotFound
	}

	status, err := uc.repo.GetStatus(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return GetImportStatusOutput{}, ErrJobNotFound
		}
		return GetImportStatusOutput{}, fmt.Errorf("get import status: %w", err)
	}

	return GetImportStatusOutput{
		JobID:        status.ID,
		SourcePath:   status.SourcePath,
		Status:       status.Status,
		Total:        status.Progress.Total,
		Processed:    status.Progress.Processed,
		Successful:   status.Progress.Successful,
		Failed:       status.Progress.Failed,
		Skipped:      status.Progress.Skipped,
		Updated:      status.Progress.Updated,
		ErrorMessage: status.ErrorMessage,
		CreatedAt:    status.CreatedAt,
		FinishedAt:   status.FinishedAt,
	}, nil
}
