package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
)

type auditRepository struct {
	store *Store
}

func newAuditRepository(store *Store) portsrepo.AuditRepositoryFacade {
	return &auditRepository{store: store}
}

var _ portsrepo.AuditRepositoryFacade = (*auditRepository)(nil)

func (r *auditRepository) AppendAuditEntry(ctx context.Context, entry domain.AuditEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	wantSeq := int64(1)
	if n := len(r.store.audit); n > 0 {
		last := r.store.audit[n-1]
		wantSeq = last.Sequence + 1
		if entry.PrevHash != last.Hash {
			return fmt.Errorf("%w: audit entry %s does not chain to %s", apperrors.ErrValidation, entry.EntryID, last.EntryID)
		}
	}
	if entry.Sequence != wantSeq {
		return fmt.Errorf("%w: audit entry sequence %d, expected %d", apperrors.ErrValidation, entry.Sequence, wantSeq)
	}
	r.store.audit = append(r.store.audit, entry)
	return nil
}

func (r *auditRepository) LatestAuditEntry(ctx context.Context) (*domain.AuditEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := len(r.store.audit)
	if n == 0 {
		return nil, fmt.Errorf("%w: audit log is empty", apperrors.ErrNotFound)
	}
	entry := r.store.audit[n-1]
	return &entry, nil
}

func (r *auditRepository) ListAuditEntries(ctx context.Context, limit int, beforeSequence int64) ([]domain.AuditEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := make([]domain.AuditEntry, 0)
	for i := len(r.store.audit) - 1; i >= 0; i-- {
		if limit > 0 && len(entries) >= limit {
			break
		}
		entry := r.store.audit[i]
		if beforeSequence > 0 && entry.Sequence >= beforeSequence {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *auditRepository) CountAuditEntries(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.audit), nil
}
