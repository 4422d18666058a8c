package contact

import (
	"context"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

const maxStoredRowErrors = 100

// EngineConfig tunes one import run. Zero values fall back to the defaults
// set by NewEngine.
type EngineConfig struct {
	BatchSize            int
	RetryAttempts        int
	RetryDelay           time.Duration
	BatchDelay           time.Duration
	PermissionCheckEvery int
}

// ProgressFunc receives a progress snapshot after every processed row and on
// every state transition. Snapshots arrive in order from a single writer.
type ProgressFunc func(domain.ImportProgress)

// RunResult is the frozen outcome of one run. CreatedIDs lists the store
// contacts the run added, in write order.
type RunResult struct {
	Progress   domain.ImportProgress
	CreatedIDs []string
}

// Engine orchestrates batched writes to the contact store with retry,
// permission re-validation, cooperative cancellation and per-row progress.
type Engine struct {
	store domain.ContactStore
	phone *phone.Normalizer
	cfg   EngineConfig
}

func NewEngine(store domain.ContactStore, normalizer *phone.Normalizer, cfg EngineConfig) *Engine {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 2
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 200 * time.Millisecond
	}
	if cfg.PermissionCheckEvery <= 0 {
		cfg.PermissionCheckEvery = 5
	}

	return &Engine{store: store, phone: normalizer, cfg: cfg}
}

// Run processes candidates in fixed-size batches. Cancellation is observed
// through ctx at row and batch boundaries; rows already written stay written.
// Permission loss, before or during the run, stops all further writes and
// leaves prior writes in place.
func (e *Engine) Run(ctx context.Context, candidates []*domain.Candidate, onProgress ProgressFunc) RunResult {
	progress := domain.ImportProgress{
		Total:        len(candidates),
		TotalBatches: (len(candidates) + e.cfg.BatchSize - 1) / e.cfg.BatchSize,
		State:        domain.RunNotStarted,
	}

	emit := func() {
		if onProgress != nil {
			snapshot := progress
			snapshot.Errors = append([]domain.RowError(nil), progress.Errors...)
			onProgress(snapshot)
		}
	}

	recordError := func(c *domain.Candidate, reason string) {
		if len(progress.Errors) < maxStoredRowErrors {
			progress.Errors = append(progress.Errors, domain.RowError{
				RowID:  c.ID,
				Name:   c.Name,
				Reason: reason,
			})
		}
	}

	perm, err := e.store.CheckPermission(ctx)
	if err != nil || !perm.Granted {
		progress.State = domain.RunPermissionDenied
		progress.Processed = progress.Total
		progress.Failed = progress.Total
		progress.Errors = append(progress.Errors, domain.RowError{Reason: "contact store permission not granted"})
		emit()
		return RunResult{Progress: progress}
	}

	progress.State = domain.RunRunning
	progress.IsRunning = true

	var createdIDs []string
	sessionKeys := make(map[string]bool)

	finish := func(state domain.RunState) RunResult {
		progress.State = state
		progress.IsRunning = false
		progress.IsCancelled = state == domain.RunCancelled
		emit()
		return RunResult{Progress: progress, CreatedIDs: createdIDs}
	}

	for batch := 0; batch < progress.TotalBatches; batch++ {
		progress.CurrentBatch = batch + 1

		if batch > 0 && batch%e.cfg.PermissionCheckEvery == 0 {
			perm, err := e.store.CheckPermission(ctx)
			if err != nil || !perm.Granted {
				progress.Errors = append(progress.Errors, domain.RowError{Reason: "contact store permission revoked mid-run"})
				return finish(domain.RunPermissionDenied)
			}
		}

		start := batch * e.cfg.BatchSize
		end := min(start+e.cfg.BatchSize, len(candidates))

		for _, c := range candidates[start:end] {
			if ctx.Err() != nil {
				return finish(domain.RunCancelled)
			}

			e.processRow(ctx, c, &progress, sessionKeys, &createdIDs, recordError)
			progress.Processed++
			emit()
		}

		if batch+1 < progress.TotalBatches && e.cfg.BatchDelay > 0 {
			if !sleepWithContext(ctx, e.cfg.BatchDelay) {
				return finish(domain.RunCancelled)
			}
		}
	}

	return finish(domain.RunCompleted)
}

func (e *Engine) processRow(ctx context.Context, c *domain.Candidate, progress *domain.ImportProgress, sessionKeys map[string]bool, createdIDs *[]string, recordError func(*domain.Candidate, string)) {
	// Deselected rows were excluded by the caller before the run; they count
	// against the total but never reach the store.
	if !c.IsValid || !c.Selected {
		progress.Skipped++
		return
	}

	// Rows are mutated by the caller between detection and import, so they
	// are validated again here; a failure now is a failure, not a skip.
	if errs := validateFields(c.Name, c.Phone, c.Email, e.phone); len(errs) > 0 {
		progress.Failed++
		recordError(c, errs[0])
		return
	}

	key := e.phone.LookupKey(c.Phone)

	if c.IsDuplicate {
		switch c.DuplicateAction {
		case domain.ActionUpdate:
			if c.ExistingContactID == "" {
				progress.Skipped++
				return
			}
			if err := e.writeWithRetry(ctx, func() error {
				return e.store.UpdateContact(ctx, c.ExistingContactID, payloadOf(c))
			}); err != nil {
				progress.Failed++
				recordError(c, err.Error())
				return
			}
			progress.Updated++
			return

		case domain.ActionForceAdd:
			id, err := e.addWithRetry(ctx, c)
			if err != nil {
				progress.Failed++
				recordError(c, err.Error())
				return
			}
			sessionKeys[key] = true
			*createdIDs = append(*createdIDs, id)
			progress.Successful++
			return

		default:
			progress.Skipped++
			return
		}
	}

	// Two distinct rows can share a number without being flagged against the
	// store; the second one is a session duplicate, not a second contact.
	if sessionKeys[key] {
		progress.Skipped++
		return
	}

	id, err := e.addWithRetry(ctx, c)
	if err != nil {
		progress.Failed++
		recordError(c, err.Error())
		return
	}
	sessionKeys[key] = true
	*createdIDs = append(*createdIDs, id)
	progress.Successful++
}

func (e *Engine) addWithRetry(ctx context.Context, c *domain.Candidate) (string, error) {
	var id string
	err := e.writeWithRetry(ctx, func() error {
		var addErr error
		id, addErr = e.store.AddContact(ctx, payloadOf(c))
		return addErr
	})
	return id, err
}

func (e *Engine) writeWithRetry(ctx context.Context, write func() error) error {
	var err error
	for attempt := 0; attempt <= e.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			if !sleepWithContext(ctx, e.cfg.RetryDelay) {
				return err
			}
		}
		if err = write(); err == nil {
			return nil
		}
	}
	return err
}

// Undo removes the contacts a completed run created, retrying each removal
// once. It takes its own context and is independent of the original run.
func (e *Engine) Undo(ctx context.Context, createdIDs []string) domain.UndoResult {
	var result domain.UndoResult
	for _, id := range createdIDs {
		err := e.store.RemoveContact(ctx, id)
		if err != nil {
			err = e.store.RemoveContact(ctx, id)
		}
		if err != nil {
			result.Failed++
		} else {
			result.Removed++
		}
	}
	return result
}

func payloadOf(c *domain.Candidate) domain.ContactPayload {
	return domain.ContactPayload{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Company: c.Company,
		Notes:   c.Notes,
	}
}
