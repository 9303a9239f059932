package repositories

import (
	"context"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns invoices newest first, optionally restricted to one status.
	ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error)

	// CountInvoices returns how many invoices have ever been registered.
	CountInvoices(ctx context.Context) (int, error)
}

// InvoiceWriter defines write operations for invoices. Invoices are never deleted.
type InvoiceWriter interface {
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
