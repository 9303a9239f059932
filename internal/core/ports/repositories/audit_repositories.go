package repositories

import (
	"context"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
)

// AuditReader defines read operations for the audit log
type AuditReader interface {
	// LatestAuditEntry returns the newest entry, or apperrors.ErrNotFound on an empty log.
	LatestAuditEntry(ctx context.Context) (*domain.AuditEntry, error)

	// ListAuditEntries returns up to limit entries newest first with a sequence
	// strictly below beforeSequence. A beforeSequence of 0 starts at the newest entry.
	ListAuditEntries(ctx context.Context, limit int, beforeSequence int64) ([]domain.AuditEntry, error)

	// CountAuditEntries returns the length of the log.
	CountAuditEntries(ctx context.Context) (int, error)
}

// AuditWriter appends to the audit log. There is no update or delete.
type AuditWriter interface {
	// AppendAuditEntry appends entry. Its sequence must follow the latest entry
	// and its PrevHash must equal the latest entry's hash.
	AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepositoryFacade combines all audit-related repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
