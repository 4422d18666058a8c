package contact

import (
	"context"
	"fmt"
	"strings"
	"time"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	"github.com/mohammadpnp/contact-import/internal/export"
	"github.com/mohammadpnp/contact-import/internal/phone"
)

type ExportContactsInput struct {
	Format      string
	Deduplicate bool
}

type ExportContactsOutput struct {
	FileName     string `json:"file_name"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
	ContactCount int    `json:"contact_count"`
	MergedCount  int    `json:"merged_count"`
}

type ExportContacts interface {
	Execute(ctx context.Context, in ExportContactsInput) (ExportContactsOutput, error)
}

// ExportFileInfo describes a written export file.
type ExportFileInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// ExportFileWriter persists an encoded export under the export directory.
type ExportFileWriter interface {
	Write(ctx context.Context, fileName string, data []byte) (ExportFileInfo, error)
}

type exportContacts struct {
	store  domain.ContactStore
	writer ExportFileWriter
	phone  *phone.Normalizer
	now    func() time.Time
}

func NewExportContacts(store domain.ContactStore, writer ExportFileWriter, normalizer *phone.Normalizer) ExportContacts {
	return &exportContacts{store: store, writer: writer, phone: normalizer, now: time.Now}
}

func (uc *exportContacts) Execute(ctx context.Context, in ExportContactsInput) (ExportContactsOutput, error) {
	format := strings.ToLower(strings.TrimSpace(in.Format))
	switch format {
	case "vcf", "csv", "xlsx":
	default:
		return ExportContactsOutput{}, ErrInvalidExportFormat
	}

	contacts, err := uc.store.ListContacts(ctx)
	if err != nil {
		return ExportContactsOutput{}, fmt.Errorf("list contacts: %w", err)
	}
	if len(contacts) == 0 {
		return ExportContactsOutput{}, ErrExportNoContacts
	}

	merged := 0
	if in.Deduplicate {
		contacts, merged = export.MergeByLookupKey(contacts, uc.phone)
	}

	var data []byte
	switch format {
	case "vcf":
		data, err = export.EncodeVCF(contacts, export.Options{})
	case "csv":
		data, err = export.EncodeCSV(contacts, export.Options{})
	case "xlsx":
		data, err = export.EncodeXLSX(contacts, export.Options{})
	}
	if err != nil {
		return ExportContactsOutput{}, fmt.Errorf("encode %s export: %w", format, err)
	}

	fileName := fmt.Sprintf("contacts_export_%s.%s", uc.now().Format("20060102_150405"), format)
	info, err := uc.writer.Write(ctx, fileName, data)
	if err != nil {
		return ExportContactsOutput{}, classifyExportError(err)
	}

	return ExportContactsOutput{
		FileName:     info.Name,
		Path:         info.Path,
		Size:         info.Size,
		ContactCount: len(contacts),
		MergedCount:  merged,
	}, nil
}

// classifyExportError maps raw filesystem failures onto user-facing
// categories while keeping the underlying message.
func classifyExportError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no space") || strings.Contains(msg, "disk full") || strings.Contains(msg, "quota"):
		return fmt.Errorf("%w: %v", ErrExportStorageFull, err)
	case strings.Contains(msg, "permission denied") || strings.Contains(msg, "access is denied"):
		return fmt.Errorf("%w: %v", ErrExportPermission, err)
	default:
		return fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
}
