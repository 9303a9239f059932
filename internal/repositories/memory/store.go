// Package memory keeps the ledger's records in process memory. Nothing
// survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
)

// Store is the single mutable home of accounts, invoices and the audit log.
// It is owned by the application root and handed to the repositories.
type Store struct {
	mu sync.RWMutex

	accounts map[domain.Role]domain.Account

	// invoices is kept oldest first; invoiceIdx maps an ID to its slice position.
	invoices   []domain.Invoice
	invoiceIdx map[string]int

	// audit is kept oldest first.
	audit []domain.AuditEntry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:   make(map[domain.Role]domain.Account),
		invoiceIdx: make(map[string]int),
	}
}

var _ portsrepo.TransactionManager = (*Store)(nil)

type snapshot struct {
	accounts map[domain.Role]domain.Account
	invoices []domain.Invoice
	audit    []domain.AuditEntry
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := snapshot{
		accounts: make(map[domain.Role]domain.Account, len(s.accounts)),
		invoices: make([]domain.Invoice, len(s.invoices)),
		audit:    make([]domain.AuditEntry, len(s.audit)),
	}
	for role, acc := range s.accounts {
		snap.accounts[role] = acc
	}
	for i, inv := range s.invoices {
		snap.invoices[i] = inv.Clone()
	}
	copy(snap.audit, s.audit)
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = snap.accounts
	s.invoices = snap.invoices
	s.audit = snap.audit
	s.invoiceIdx = make(map[string]int, len(snap.invoices))
	for i, inv := range snap.invoices {
		s.invoiceIdx[inv.InvoiceID] = i
	}
}

// RunInTx snapshots the store, runs fn and restores the snapshot if fn fails.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := s.snapshot()
	if err := fn(ctx); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}
