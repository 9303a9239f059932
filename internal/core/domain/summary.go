package domain

import "github.com/shopspring/decimal"

// LedgerSummary aggregates the current ledger state.
type LedgerSummary struct {
	TotalBalance      decimal.Decimal          `json:"totalBalance"`
	Balances          map[Role]decimal.Decimal `json:"balances"`
	InvoicesByStatus  map[InvoiceStatus]int    `json:"invoicesByStatus"`
	OutstandingAmount decimal.Decimal          `json:"outstandingAmount"`
	FinancedAmount    decimal.Decimal          `json:"financedAmount"`
	AuditEntries      int                      `json:"auditEntries"`
}
