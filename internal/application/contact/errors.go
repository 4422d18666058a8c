package contact

import "errors"

var (
	ErrInvalidImportSource = errors.New("invalid import source")
	ErrInvalidImportAction = errors.New("invalid duplicate action")
	ErrEnqueueImportJob    = errors.New("failed to enqueue import job")
	ErrIncompleteMapping   = errors.New("name and phone columns could not be detected")
	ErrInvalidContactID    = errors.New("invalid contact id")
	ErrContactNotFound     = errors.New("contact not found")
	ErrGetContact          = errors.New("failed to get contact")
	ErrJobNotFound         = errors.New("import job not found")
	ErrRecordNotFound      = errors.New("import record not found")
	ErrRecordNotUndoable   = errors.New("import record cannot be undone")
	ErrInvalidExportFormat = errors.New("invalid export format")
	ErrExportNoContacts    = errors.New("no contacts to export")
	ErrExportStorageFull   = errors.New("not enough storage to write export file")
	ErrExportPermission    = errors.New("permission denied writing export file")
	ErrExportFailed        = errors.New("failed to write export file")
	ErrExportFileNotFound  = errors.New("export file not found")
)
