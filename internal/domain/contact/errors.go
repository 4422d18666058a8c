package contact

import "errors"

var (
	ErrContactNotFound  = errors.New("contact not found")
	ErrRecordNotFound   = errors.New("import record not found")
	ErrPermissionDenied = errors.New("contact store permission denied")
)

// Input errors abort a parse before any candidate rows are produced.
var (
	ErrNoSheets    = errors.New("workbook has no sheets")
	ErrNoColumns   = errors.New("file has no columns")
	ErrEmptyTable  = errors.New("file has no data rows")
	ErrTooManyRows = errors.New("file has too many rows")
)
