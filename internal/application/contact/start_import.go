package contact

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

type StartImportInput struct {
	SourcePath    string
	DefaultAction string
	CountryCode   string
}

type StartImportOutput struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"`
}

type StartImport interface {
	Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error)
}

type importJobEnqueuer interface {
	Enqueue(ctx context.Context, job domain.ImportJob) (string, error)
}

type startImport struct {
	importJobRepo importJobEnqueuer
}

func NewStartImport(importJobRepo importJobEnqueuer) StartImport {
	return &startImport{importJobRepo: importJobRepo}
}

func (uc *startImport) Execute(ctx context.Context, in StartImportInput) (StartImportOutput, error) {
	sourcePath := strings.TrimSpace(in.SourcePath)
	ext := strings.ToLower(filepath.Ext(sourcePath))
	if sourcePath == "" || (ext != ".csv" && ext != ".xlsx") {
		return StartImportOutput{}, ErrInvalidImportSource
	}

	action := domain.DuplicateAction(strings.TrimSpace(in.DefaultAction))
	switch action {
	case "", domain.ActionSkip, domain.ActionUpdate, domain.ActionForceAdd:
	default:
		return StartImportOutput{}, ErrInvalidImportAction
	}

	jobID, err := uc.importJobRepo.Enqueue(ctx, domain.ImportJob{
		SourcePath:    sourcePath,
		Status:        "queued",
		DefaultAction: action,
		CountryCode:   strings.TrimSpace(in.CountryCode),
	})
	if err != nil {
		return StartImportOutput{}, fmt.Errorf("%w: %v", ErrEnqueueImportJob, err)
	}

	return StartImportOutput{
		JobID:  jobID,
		Status: "queued",
	}, nil
}
