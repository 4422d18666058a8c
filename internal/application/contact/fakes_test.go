package contact_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

// fakeContactStore is an in-memory contact store with failure injection.
type fakeContactStore struct {
	mu sync.Mutex

	permissionDenied bool
	revokeAfter      int // deny permission after this many checks, 0 means never
	permChecks       int

	contacts []domain.DeviceContact

	addFailures    map[string]int // phone -> remaining failures before success
	updateErr      error
	removeFailures map[string]int // id -> remaining failures before success

	added   []domain.ContactPayload
	updated map[string]domain.ContactPayload
	removed []string
	nextID  int
}

func newFakeContactStore() *fakeContactStore {
	return &fakeContactStore{
		addFailures:    make(map[string]int),
		removeFailures: make(map[string]int),
		updated:        make(map[string]domain.ContactPayload),
	}
}

func (s *fakeContactStore) CheckPermission(ctx context.Context) (domain.Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.permChecks++
	if s.permissionDenied {
		return domain.Permission{Granted: false, CanAskAgain: true}, nil
	}
	if s.revokeAfter > 0 && s.permChecks > s.revokeAfter {
		return domain.Permission{Granted: false, CanAskAgain: true}, nil
	}
	return domain.Permission{Granted: true, CanAskAgain: true}, nil
}

func (s *fakeContactStore) ListContacts(ctx context.Context) ([]domain.DeviceContact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DeviceContact(nil), s.contacts...), nil
}

func (s *fakeContactStore) AddContact(ctx context.Context, payload domain.ContactPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if remaining := s.addFailures[payload.Phone]; remaining > 0 {
		s.addFailures[payload.Phone] = remaining - 1
		return "", fmt.Errorf("store write failed for %s", payload.Phone)
	}
	s.nextID++
	id := fmt.Sprintf("contact-%d", s.nextID)
	s.added = append(s.added, payload)
	return id, nil
}

func (s *fakeContactStore) UpdateContact(ctx context.Context, id string, payload domain.ContactPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updated[id] = payload
	return nil
}

func (s *fakeContactStore) RemoveContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if remaining := s.removeFailures[id]; remaining > 0 {
		s.removeFailures[id] = remaining - 1
		return fmt.Errorf("remove failed for %s", id)
	}
	s.removed = append(s.removed, id)
	return nil
}

type fakeWorkerRepo struct {
	claimedJob       *domain.ImportJob
	claimErr         error
	progressCalls    []domain.ImportProgress
	completeProgress *domain.ImportProgress
	requeueCalled    bool
	failCalled       bool
	lastReason       string
}

func (f *fakeWorkerRepo) ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error) {
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	job := f.claimedJob
	f.claimedJob = nil
	return job, nil
}

func (f *fakeWorkerRepo) Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error {
	return nil
}

func (f *fakeWorkerRepo) UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	f.progressCalls = append(f.progressCalls, progress)
	return nil
}

func (f *fakeWorkerRepo) Complete(ctx context.Context, jobID string, progress domain.ImportProgress) error {
	f.completeProgress = &progress
	return nil
}

func (f *fakeWorkerRepo) Requeue(ctx context.Context, jobID string, reason string) error {
	f.requeueCalled = true
	f.lastReason = reason
	return nil
}

func (f *fakeWorkerRepo) Fail(ctx context.Context, jobID string, reason string) error {
	f.failCalled = true
	f.lastReason = reason
	return nil
}

type fakeTableReader struct {
	table domain.Table
	err   error
}

func (f *fakeTableReader) ReadTable(ctx context.Context, sourcePath string) (domain.Table, error) {
	if f.err != nil {
		return domain.Table{}, f.err
	}
	return f.table, nil
}

type fakeHistoryRepo struct {
	saved   []domain.ImportRecord
	records map[string]*domain.ImportRecord
	undone  []string
	saveErr error
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{records: make(map[string]*domain.ImportRecord)}
}

func (f *fakeHistoryRepo) Save(ctx context.Context, record domain.ImportRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	stored := record
	f.records[record.ID] = &stored
	return nil
}

func (f *fakeHistoryRepo) List(ctx context.Context) ([]domain.ImportRecord, error) {
	return append([]domain.ImportRecord(nil), f.saved...), nil
}

func (f *fakeHistoryRepo) Get(ctx context.Context, id string) (*domain.ImportRecord, error) {
	record, ok := f.records[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeHistoryRepo) MarkUndone(ctx context.Context, id string) error {
	record, ok := f.records[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	record.CanUndo = false
	f.undone = append(f.undone, id)
	return nil
}

type fakeSettingsRepo struct {
	settings domain.Settings
	saved    *domain.Settings
	loadErr  error
}

func (f *fakeSettingsRepo) Load(ctx context.Context) (domain.Settings, error) {
	if f.loadErr != nil {
		return domain.Settings{}, f.loadErr
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings domain.Settings) error {
	f.saved = &settings
	return nil
}
