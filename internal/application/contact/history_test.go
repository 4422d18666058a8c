package contact_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

const recordID = "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e"

func TestListHistory(t *testing.T) {
	t.Parallel()

	history := newFakeHistoryRepo()
	_ = history.Save(context.Background(), domain.ImportRecord{
		ID:         recordID,
		FileName:   "contacts.csv",
		ImportedAt: time.Now(),
		Total:      3,
		Successful: 3,
		CanUndo:    true,
	})

	uc := app.NewListHistory(history)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0].FileName != "contacts.csv" || !out[0].CanUndo {
		t.Fatalf("unexpected record: %+v", out[0])
	}
}

func TestUndoImportRemovesCreatedContacts(t *testing.T) {
	t.Parallel()

	history := newFakeHistoryRepo()
	_ = history.Save(context.Background(), domain.ImportRecord{
		ID:         recordID,
		FileName:   "contacts.csv",
		CreatedIDs: []string{"contact-1", "contact-2"},
		CanUndo:    true,
	})
	store := newFakeContactStore()

	uc := app.NewUndoImport(history, store, phone.NewNormalizer())

	out, err := uc.Execute(context.Background(), app.UndoImportInput{RecordID: recordID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Removed != 2 || out.Failed != 0 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if len(store.removed) != 2 {
		t.Fatalf("expected 2 removals, got %d", len(store.removed))
	}
	if len(history.undone) != 1 {
		t.Fatal("expected record marked undone")
	}
}

func TestUndoImportPartialFailureKeepsRecordUndoable(t *testing.T) {
	t.Parallel()

	history := newFakeHistoryRepo()
	_ = history.Save(context.Background(), domain.ImportRecord{
		ID:         recordID,
		CreatedIDs: []string{"contact-1", "contact-2"},
		CanUndo:    true,
	})
	store := newFakeContactStore()
	store.removeFailures["contact-2"] = 2

	uc := app.NewUndoImport(history, store, phone.NewNormalizer())

	out, err := uc.Execute(context.Background(), app.UndoImportInput{RecordID: recordID})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out.Removed != 1 || out.Failed != 1 {
		t.Fatalf("unexpected result: %+v", out)
	}
	if len(history.undone) != 0 {
		t.Fatal("record with failed removals must stay undoable")
	}
}

func TestUndoImportNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewUndoImport(newFakeHistoryRepo(), newFakeContactStore(), phone.NewNormalizer())

	_, err := uc.Execute(context.Background(), app.UndoImportInput{RecordID: recordID})
	if !errors.Is(err, app.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	_, err = uc.Execute(context.Background(), app.UndoImportInput{RecordID: "not-a-uuid"})
	if !errors.Is(err, app.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for malformed id, got %v", err)
	}
}

func TestUndoImportNotUndoable(t *testing.T) {
	t.Parallel()

	history := newFakeHistoryRepo()
	_ = history.Save(context.Background(), domain.ImportRecord{
		ID:         recordID,
		CreatedIDs: []string{"contact-1"},
		CanUndo:    false,
	})

	uc := app.NewUndoImport(history, newFakeContactStore(), phone.NewNormalizer())

	_, err := uc.Execute(context.Background(), app.UndoImportInput{RecordID: recordID})
	if !errors.Is(err, app.ErrRecordNotUndoable) {
		t.Fatalf("expected ErrRecordNotUndoable, got %v", err)
	}
}
