package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
)

// ExportStore writes export files into a dedicated directory and exposes the
// small amount of file management the host needs: list, stat, remove.
type ExportStore struct {
	Dir string
}

func NewExportStore(dir string) *ExportStore {
	if dir == "" {
		dir = "exports"
	}
	return &ExportStore{Dir: dir}
}

func (s *ExportStore) Write(ctx context.Context, fileName string, data []byte) (app.ExportFileInfo, error) {
	_ = ctx

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return app.ExportFileInfo{}, fmt.Errorf("create export dir %s: %w", s.Dir, err)
	}

	path := filepath.Join(s.Dir, filepath.Base(fileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return app.ExportFileInfo{}, fmt.Errorf("write export file %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return app.ExportFileInfo{}, fmt.Errorf("stat export file %s: %w", path, err)
	}

	return app.ExportFileInfo{
		Name: info.Name(),
		Path: path,
		Size: info.Size(),
	}, nil
}

func (s *ExportStore) List(ctx context.Context) ([]app.ExportFileInfo, error) {
	_ = ctx

	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list export dir %s: %w", s.Dir, err)
	}

	files := make([]app.ExportFileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, app.ExportFileInfo{
			Name: info.Name(),
			Path: filepath.Join(s.Dir, info.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

func (s *ExportStore) Remove(ctx context.Context, fileName string) error {
	_ = ctx

	path := filepath.Join(s.Dir, filepath.Base(fileName))
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove export file %s: %w", path, err)
	}
	return nil
}
