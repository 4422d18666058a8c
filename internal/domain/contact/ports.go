package contact

import "context"

// Permission is the contact-store access state.
type Permission struct {
	Granted     bool
	CanAskAgain bool
}

// ContactStore is the device address book the pipeline reads and writes.
// Implementations serialize their own writes; the engine never calls it
// concurrently within one run.
type ContactStore interface {
	CheckPermission(ctx context.Context) (Permission, error)
	ListContacts(ctx context.Context) ([]DeviceContact, error)
	AddContact(ctx context.Context, payload ContactPayload) (string, error)
	UpdateContact(ctx context.Context, id string, payload ContactPayload) error
	RemoveContact(ctx context.Context, id string) error
}

// ImportJobRepository enqueues import jobs for the background worker.
type ImportJobRepository interface {
	Enqueue(ctx context.Context, job ImportJob) (string, error)
}

// HistoryRepository persists the capped, most-recent-first import history.
type HistoryRepository interface {
	Save(ctx context.Context, record ImportRecord) error
	List(ctx context.Context) ([]ImportRecord, error)
	Get(ctx context.Context, id string) (*ImportRecord, error)
	MarkUndone(ctx context.Context, id string) error
}

// SettingsRepository loads and saves the import defaults.
type SettingsRepository interface {
	Load(ctx context.Context) (Settings, error)
	Save(ctx context.Context, settings Settings) error
}
