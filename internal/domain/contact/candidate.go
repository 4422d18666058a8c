package contact

// RawRow is one parsed spreadsheet row keyed by its original header. Values
// are strings for text cells and float64 for numeric cells, exactly as the
// file parser delivers them.
type RawRow map[string]any

// Table is a parsed spreadsheet: the header row plus every data row.
type Table struct {
	Headers []string
	Rows    []RawRow
}

// ColumnMapping binds the semantic fields to spreadsheet headers. An empty
// header means the field is unmapped.
type ColumnMapping struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

// IsComplete reports whether the mapping can drive an import: name and phone
// are both required, the rest are optional.
func (m ColumnMapping) IsComplete() bool {
	return m.Name != "" && m.Phone != ""
}

// DuplicateAction is the per-row resolution for a detected collision.
type DuplicateAction string

const (
	ActionSkip     DuplicateAction = "skip"
	ActionUpdate   DuplicateAction = "update"
	ActionForceAdd DuplicateAction = "force_add"
)

// Candidate is one spreadsheet row after mapping and validation, not yet
// written to the contact store. Phone holds the normalized canonical form,
// never the raw cell value.
type Candidate struct {
	ID      string
	Name    string
	Phone   string
	Email   string
	Company string
	Notes   string

	IsValid          bool
	ValidationErrors []string

	IsDuplicate       bool
	DuplicateAction   DuplicateAction
	ExistingContactID string

	Selected bool
}

// DeviceContact is an immutable snapshot of a contact already in the store.
// LookupKeys holds the pre-normalized duplicate-matching keys, one per phone
// number.
type DeviceContact struct {
	ID           string
	Name         string
	PhoneNumbers []string
	LookupKeys   []string
	Emails       []string
	Company      string
}

// ContactPayload is the write shape accepted by the contact store.
type ContactPayload struct {
	Name    string
	Phone   string
	Email   string
	Company string
	Notes   string
}

// DuplicateCheckResult partitions a candidate batch against the store
// snapshot. Invalid candidates appear in neither bucket. TotalExisting is the
// number of store contacts considered, reported for diagnostics only.
type DuplicateCheckResult struct {
	NewContacts   []*Candidate
	Duplicates    []*Candidate
	TotalExisting int
}
