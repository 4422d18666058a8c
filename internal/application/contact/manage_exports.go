package contact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// exportFileManager is the file-management side of the export store.
type exportFileManager interface {
	List(ctx context.Context) ([]ExportFileInfo, error)
	Remove(ctx context.Context, fileName string) error
}

type ListExportFiles interface {
	Execute(ctx context.Context) ([]ExportFileInfo, error)
}

type listExportFiles struct {
	files exportFileManager
}

func NewListExportFiles(files exportFileManager) ListExportFiles {
	return &listExportFiles{files: files}
}

func (uc *listExportFiles) Execute(ctx context.Context) ([]ExportFileInfo, error) {
	files, err := uc.files.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list export files: %w", err)
	}
	return files, nil
}

type RemoveExportFile interface {
	Execute(ctx context.Context, fileName string) error
}

type removeExportFile struct {
	files exportFileManager
}

func NewRemoveExportFile(files exportFileManager) RemoveExportFile {
	return &removeExportFile{files: files}
}

func (uc *removeExportFile) Execute(ctx context.Context, fileName string) error {
	if strings.TrimSpace(fileName) == "" {
		return ErrExportFileNotFound
	}

	if err := uc.files.Remove(ctx, fileName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrExportFileNotFound
		}
		return fmt.Errorf("remove export file: %w", err)
	}
	return nil
}
