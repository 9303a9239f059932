package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
)

type invoiceRepository struct {
	store *Store
}

func newInvoiceRepository(store *Store) portsrepo.InvoiceRepositoryFacade {
	return &invoiceRepository{store: store}
}

var _ portsrepo.InvoiceRepositoryFacade = (*invoiceRepository)(nil)

func (r *invoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.invoiceIdx[invoice.InvoiceID]; exists {
		return fmt.Errorf("%w: invoice %s already exists", apperrors.ErrDuplicate, invoice.InvoiceID)
	}
	r.store.invoiceIdx[invoice.InvoiceID] = len(r.store.invoices)
	r.store.invoices = append(r.store.invoices, invoice.Clone())
	return nil
}

func (r *invoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	idx, ok := r.store.invoiceIdx[invoice.InvoiceID]
	if !ok {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoice.InvoiceID)
	}
	current := r.store.invoices[idx]
	if !current.Status.CanMoveTo(invoice.Status) {
		return fmt.Errorf("%w: %s cannot move from %s to %s",
			apperrors.ErrInvalidTransition, invoice.InvoiceID, current.Status, invoice.Status)
	}
	r.store.invoices[idx] = invoice.Clone()
	return nil
}

func (r *invoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	idx, ok := r.store.invoiceIdx[invoiceID]
	if !ok {
		return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	inv := r.store.invoices[idx].Clone()
	return &inv, nil
}

func (r *invoiceRepository) ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	invoices := make([]domain.Invoice, 0, len(r.store.invoices))
	for i := len(r.store.invoices) - 1; i >= 0; i-- {
		inv := r.store.invoices[i]
		if status != nil && inv.Status != *status {
			continue
		}
		invoices = append(invoices, inv.Clone())
	}
	return invoices, nil
}

func (r *invoiceRepository) CountInvoices(ctx context.Context) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.invoices), nil
}
