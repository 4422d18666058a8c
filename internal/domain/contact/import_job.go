package contact

import "time"

// ImportJob is one queued import of a spreadsheet file.
type ImportJob struct {
	ID            string
	SourcePath    string
	Status        string
	DefaultAction DuplicateAction
	CountryCode   string
	Attempts      int
	MaxAttempts   int
}

// ImportJobStatus is the queryable view of a job: lifecycle status plus the
// latest progress counts the worker reported.
type ImportJobStatus struct {
	ID           string
	SourcePath   string
	Status       string
	Progress     ImportProgress
	ErrorMessage string
	CreatedAt    time.Time
	FinishedAt   *time.Time
}

// RunState is the bulk-import engine lifecycle.
type RunState string

const (
	RunNotStarted       RunState = "not_started"
	RunRunning          RunState = "running"
	RunCompleted        RunState = "completed"
	RunCancelled        RunState = "cancelled"
	RunPermissionDenied RunState = "permission_denied"
)

// RowError records one row that could not be written.
type RowError struct {
	RowID  string
	Name   string
	Reason string
}

// ImportProgress is the single-writer progress record the engine emits after
// every row. Processed always equals Successful+Failed+Skipped+Updated.
type ImportProgress struct {
	Total      int
	Processed  int
	Successful int
	Failed     int
	Skipped    int
	Updated    int

	CurrentBatch int
	TotalBatches int

	State       RunState
	IsRunning   bool
	IsCancelled bool

	Errors []RowError
}

// ImportRecord is the persisted summary of one completed run. CreatedIDs
// lists the store contacts the run added, which is what makes undo possible.
type ImportRecord struct {
	ID         string
	FileName   string
	ImportedAt time.Time
	Total      int
	Successful int
	Failed     int
	Skipped    int
	Updated    int
	CreatedIDs []string
	CanUndo    bool
}

// UndoResult reports an undo attempt over a record's created contacts.
type UndoResult struct {
	Removed int
	Failed  int
}

// Settings are the user-tunable import defaults.
type Settings struct {
	BatchSize     int             `json:"batch_size"`
	DefaultAction DuplicateAction `json:"default_duplicate_action"`
	CountryCode   string          `json:"default_country_code"`
}

// DefaultSettings returns the defaults used before anything is saved.
func DefaultSettings() Settings {
	return Settings{
		BatchSize:     100,
		DefaultAction: ActionSkip,
		CountryCode:   "",
	}
}
