package memory

import (
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository onto the same store.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newAccountRepository(store),
		InvoiceRepo: newInvoiceRepository(store),
		AuditRepo:   newAuditRepository(store),
		TxManager:   store,
	}
}
