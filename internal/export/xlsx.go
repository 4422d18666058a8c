package export

import (
	"fmt"
	"strings"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/xuri/excelize/v2"
)

// EncodeXLSX renders contacts into a single-sheet workbook. The phone column
// is explicitly text-typed with a text number format, overriding the numeric
// inference that would corrupt long numbers.
func EncodeXLSX(contacts []domain.DeviceContact, opts Options) ([]byte, error) {
	opts.emit(PhaseReading, 0, len(contacts))

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	// NumFmt 49 is the built-in "@" text format.
	textStyle, err := f.NewStyle(&excelize.Style{NumFmt: 49})
	if err != nil {
		return nil, fmt.Errorf("create text style: %w", err)
	}
	if err := f.SetColStyle(sheet, "B", textStyle); err != nil {
		return nil, fmt.Errorf("style phone column: %w", err)
	}

	headers := []string{"Name", "Phone", "Email", "Company"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header %s: %w", h, err)
		}
	}

	opts.emit(PhaseProcessing, 0, len(contacts))
	for i, c := range contacts {
		row := i + 2
		values := []string{
			c.Name,
			strings.Join(c.PhoneNumbers, "; "),
			strings.Join(c.Emails, "; "),
			c.Company,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellStr(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
		}
		opts.emitRow(i, len(contacts))
	}

	opts.emit(PhaseWriting, len(contacts), len(contacts))
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}

	opts.emit(PhaseDone, len(contacts), len(contacts))
	return buf.Bytes(), nil
}
