package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/xuri/excelize/v2"
)

const DefaultMaxRows = 10000

// TableSource reads spreadsheet/CSV files under a base directory and parses
// them into a header row plus data rows.
type TableSource struct {
	BaseDir string
	MaxRows int
}

func NewTableSource(baseDir string, maxRows int) *TableSource {
	if baseDir == "" {
		baseDir = "."
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &TableSource{BaseDir: baseDir, MaxRows: maxRows}
}

func (s *TableSource) open(sourcePath string) (*os.File, error) {
	path := sourcePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.BaseDir, sourcePath)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}
	return f, nil
}

// ReadTable parses the file at sourcePath. CSV and XLSX are supported; for a
// workbook only the first sheet is read. Cell values are raw strings, never
// display-formatted, so long numbers keep their digits.
func (s *TableSource) ReadTable(ctx context.Context, sourcePath string) (domain.Table, error) {
	_ = ctx

	f, err := s.open(sourcePath)
	if err != nil {
		return domain.Table{}, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(sourcePath)) {
	case ".xlsx":
		return s.readXLSX(f)
	default:
		return s.readCSV(f)
	}
}

func (s *TableSource) readCSV(r io.Reader) (domain.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return domain.Table{}, domain.ErrNoColumns
	}
	if err != nil {
		return domain.Table{}, fmt.Errorf("read csv header: %w", err)
	}
	if !hasAnyHeader(headers) {
		return domain.Table{}, domain.ErrNoColumns
	}

	table := domain.Table{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domain.Table{}, fmt.Errorf("read csv row %d: %w", len(table.Rows)+2, err)
		}
		if row := rowOf(headers, record); row != nil {
			table.Rows = append(table.Rows, row)
		}
		if len(table.Rows) > s.MaxRows {
			return domain.Table{}, fmt.Errorf("%w (limit %d)", domain.ErrTooManyRows, s.MaxRows)
		}
	}

	if len(table.Rows) == 0 {
		return domain.Table{}, domain.ErrEmptyTable
	}
	return table, nil
}

func (s *TableSource) readXLSX(r io.Reader) (domain.Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return domain.Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return domain.Table{}, domain.ErrNoSheets
	}

	// Raw cell values keep a numeric phone cell as its full digit string
	// instead of the sheet's display format.
	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return domain.Table{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 || !hasAnyHeader(rows[0]) {
		return domain.Table{}, domain.ErrNoColumns
	}

	headers := rows[0]
	table := domain.Table{Headers: headers}
	for _, record := range rows[1:] {
		if row := rowOf(headers, record); row != nil {
			table.Rows = append(table.Rows, row)
		}
		if len(table.Rows) > s.MaxRows {
			return domain.Table{}, fmt.Errorf("%w (limit %d)", domain.ErrTooManyRows, s.MaxRows)
		}
	}

	if len(table.Rows) == 0 {
		return domain.Table{}, domain.ErrEmptyTable
	}
	return table, nil
}

func hasAnyHeader(headers []string) bool {
	for _, h := range headers {
		if strings.TrimSpace(h) != "" {
			return true
		}
	}
	return false
}

// rowOf maps one record onto its headers, dropping rows that are entirely
// empty.
func rowOf(headers, record []string) domain.RawRow {
	row := make(domain.RawRow, len(headers))
	empty := true
	for i, header := range headers {
		if header == "" || i >= len(record) {
			continue
		}
		row[header] = record[i]
		if strings.TrimSpace(record[i]) != "" {
			empty = false
		}
	}
	if empty {
		return nil
	}
	return row
}
