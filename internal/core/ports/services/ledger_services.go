package services

import (
	"context"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for participant accounts
type AccountReaderSvc interface {
	// ListAccounts returns the seller, investor and buyer accounts.
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	// GetAccountByRole returns the account of one participant.
	GetAccountByRole(ctx context.Context, role domain.Role) (*domain.Account, error)
}

// InvoiceReaderSvc defines read operations for invoices
type InvoiceReaderSvc interface {
	// ListInvoices returns invoices newest first, optionally filtered by status.
	ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error)

	// GetInvoice returns one invoice by ID.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceLifecycleSvc defines the four ledger state transitions
type InvoiceLifecycleSvc interface {
	// RegisterInvoice records a new invoice for the seller.
	RegisterInvoice(ctx context.Context, amount decimal.Decimal, description string) (*domain.Invoice, error)

	// MakeOffer attaches the investor's offer to an invoice, replacing any earlier offer.
	MakeOffer(ctx context.Context, invoiceID string, offerAmount decimal.Decimal) (*domain.Invoice, error)

	// AcceptFinancing disburses the offered amount from the investor to the seller.
	AcceptFinancing(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// SettleInvoice pays the invoice face value from the buyer.
	SettleInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// AuditReaderSvc defines read operations for the audit log
type AuditReaderSvc interface {
	// ListAuditEntries returns one newest-first page of the audit log.
	ListAuditEntries(ctx context.Context, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error)

	// VerifyAuditChain recomputes every entry hash and checks the chain links.
	VerifyAuditChain(ctx context.Context) (*domain.AuditVerification, error)
}

// LedgerSummarySvc defines aggregate reads
type LedgerSummarySvc interface {
	GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	AccountReaderSvc
	InvoiceReaderSvc
	InvoiceLifecycleSvc
	AuditReaderSvc
	LedgerSummarySvc
}
