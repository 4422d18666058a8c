package contact

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

// TableReader opens an import source and parses it into a header row plus
// data rows.
type TableReader interface {
	ReadTable(ctx context.Context, sourcePath string) (domain.Table, error)
}

type importWorkerJobRepo interface {
	ClaimNext(ctx context.Context, leaseDuration time.Duration) (*domain.ImportJob, error)
	Heartbeat(ctx context.Context, jobID string, leaseDuration time.Duration) error
	UpdateProgress(ctx context.Context, jobID string, progress domain.ImportProgress) error
	Complete(ctx context.Context, jobID string, progress domain.ImportProgress) error
	Requeue(ctx context.Context, jobID string, reason string) error
	Fail(ctx context.Context, jobID string, reason string) error
}

type ImportWorkerConfig struct {
	Workers           int
	BatchSize         int
	BatchDelay        time.Duration
	PollInterval      time.Duration
	LeaseDuration     time.Duration
	HeartbeatInterval time.Duration
	ProgressEvery     int
}

// ImportWorker claims queued import jobs and runs them through the full
// pipeline: parse, map columns, validate rows, detect duplicates, bulk
// import, record history.
type ImportWorker struct {
	repo     importWorkerJobRepo
	source   TableReader
	store    domain.ContactStore
	history  domain.HistoryRepository
	settings domain.SettingsRepository
	phone    *phone.Normalizer
	cfg      ImportWorkerConfig

	once sync.Once
}

func NewImportWorker(repo importWorkerJobRepo, source TableReader, store domain.ContactStore, history domain.HistoryRepository, settings domain.SettingsRepository, normalizer *phone.Normalizer, cfg ImportWorkerConfig) *ImportWorker {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.LeaseDuration <= 0 {
		cfg.LeaseDuration = 60 * time.Second
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = cfg.LeaseDuration / 2
	}
	if cfg.ProgressEvery <= 0 {
		cfg.ProgressEvery = 50
	}

	return &ImportWorker{
		repo:     repo,
		source:   source,
		store:    store,
		history:  history,
		settings: settings,
		phone:    normalizer,
		cfg:      cfg,
	}
}

func (w *ImportWorker) Start(ctx context.Context) {
	w.once.Do(func() {
		for i := 0; i < w.cfg.Workers; i++ {
			go w.workerLoop(ctx)
		}
	})
}

func (w *ImportWorker) workerLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := w.repo.ClaimNext(ctx, w.cfg.LeaseDuration)
		if err != nil {
			log.Printf("claim next import job failed: %v", err)
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if job == nil {
			if !sleepWithContext(ctx, w.cfg.PollInterval) {
				return
			}
			continue
		}

		if err := w.ProcessJob(ctx, *job); err != nil {
			log.Printf("process import job %s failed: %v", job.ID, err)
		}
	}
}

func (w *ImportWorker) ProcessJob(ctx context.Context, job domain.ImportJob) error {
	table, err := w.source.ReadTable(ctx, job.SourcePath)
	if err != nil {
		if isInputError(err) {
			return w.failJob(ctx, job, err)
		}
		return w.onProcessingError(ctx, job, fmt.Errorf("read import source: %w", err))
	}

	mapping := AutoDetectMapping(table.Headers)
	if !mapping.IsComplete() {
		return w.failJob(ctx, job, ErrIncompleteMapping)
	}

	settings := w.loadSettings(ctx)
	defaultAction := job.DefaultAction
	if defaultAction == "" {
		defaultAction = settings.DefaultAction
	}
	if defaultAction == "" {
		defaultAction = domain.ActionSkip
	}
	countryCode := job.CountryCode
	if countryCode == "" {
		countryCode = settings.CountryCode
	}
	batchSize := settings.BatchSize
	if batchSize <= 0 {
		batchSize = w.cfg.BatchSize
	}

	validator := NewRowValidator(w.phone)
	candidates := make([]*domain.Candidate, 0, len(table.Rows))
	for _, row := range table.Rows {
		c := validator.ToCandidate(row, mapping)
		if c.IsValid && countryCode != "" {
			c.Phone = w.phone.ApplyCountryCode(c.Phone, countryCode)
		}
		candidates = append(candidates, c)
	}

	snapshot, err := w.store.ListContacts(ctx)
	if err != nil {
		return w.onProcessingError(ctx, job, fmt.Errorf("list contacts: %w", err))
	}

	detector := NewDuplicateDetector(w.phone)
	detector.Check(candidates, snapshot, defaultAction)

	engine := NewEngine(w.store, w.phone, EngineConfig{
		BatchSize:  batchSize,
		BatchDelay: w.cfg.BatchDelay,
	})

	lastBeat := time.Now()
	sinceUpdate := 0
	result := engine.Run(ctx, candidates, func(p domain.ImportProgress) {
		sinceUpdate++
		if sinceUpdate >= w.cfg.ProgressEvery || !p.IsRunning {
			sinceUpdate = 0
			if err := w.repo.UpdateProgress(ctx, job.ID, p); err != nil {
				log.Printf("update progress for job %s failed: %v", job.ID, err)
			}
		}
		if time.Since(lastBeat) >= w.cfg.HeartbeatInterval {
			lastBeat = time.Now()
			if err := w.repo.Heartbeat(ctx, job.ID, w.cfg.LeaseDuration); err != nil {
				log.Printf("heartbeat for job %s failed: %v", job.ID, err)
			}
		}
	})

	switch result.Progress.State {
	case domain.RunCancelled:
		return w.onProcessingError(ctx, job, errors.New("import run cancelled"))

	case domain.RunPermissionDenied:
		return w.failJob(ctx, job, domain.ErrPermissionDenied)

	default:
		record := domain.ImportRecord{
			ID:         uuid.NewString(),
			FileName:   filepath.Base(job.SourcePath),
			ImportedAt: time.Now().UTC(),
			Total:      result.Progress.Total,
			Successful: result.Progress.Successful,
			Failed:     result.Progress.Failed,
			Skipped:    result.Progress.Skipped,
			Updated:    result.Progress.Updated,
			CreatedIDs: result.CreatedIDs,
			CanUndo:    len(result.CreatedIDs) > 0,
		}
		if err := w.history.Save(ctx, record); err != nil {
			log.Printf("save import record for job %s failed: %v", job.ID, err)
		}

		if err := w.repo.Complete(ctx, job.ID, result.Progress); err != nil {
			return w.onProcessingError(ctx, job, fmt.Errorf("complete job: %w", err))
		}
		return nil
	}
}

func (w *ImportWorker) loadSettings(ctx context.Context) domain.Settings {
	settings, err := w.settings.Load(ctx)
	if err != nil {
		log.Printf("load settings failed, using defaults: %v", err)
		return domain.Settings{}
	}
	return settings
}

func (w *ImportWorker) failJob(ctx context.Context, job domain.ImportJob, cause error) error {
	if err := w.repo.Fail(ctx, job.ID, truncateReason(cause.Error())); err != nil {
		return fmt.Errorf("%v; fail update failed: %w", cause, err)
	}
	return cause
}

func (w *ImportWorker) onProcessingError(ctx context.Context, job domain.ImportJob, err error) error {
	reason := truncateReason(err.Error())
	if job.Attempts < job.MaxAttempts {
		if requeueErr := w.repo.Requeue(ctx, job.ID, reason); requeueErr != nil {
			return fmt.Errorf("%v; requeue failed: %w", err, requeueErr)
		}
		return err
	}

	if failErr := w.repo.Fail(ctx, job.ID, reason); failErr != nil {
		return fmt.Errorf("%v; fail update failed: %w", err, failErr)
	}
	return err
}

func isInputError(err error) bool {
	return errors.Is(err, domain.ErrNoSheets) ||
		errors.Is(err, domain.ErrNoColumns) ||
		errors.Is(err, domain.ErrEmptyTable) ||
		errors.Is(err, domain.ErrTooManyRows)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncateReason(reason string) string {
	const maxLen = 1000
	reason = strings.TrimSpace(reason)
	if len(reason) <= maxLen {
		return reason
	}
	return reason[:maxLen]
}
