package dto

import (
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DueDateLayout is the wire format of invoice due dates.
const DueDateLayout = "2006-01-02"

// RegisterInvoiceRequest defines the data needed to register an invoice.
type RegisterInvoiceRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required,dgt0"`
	Description string          `json:"description" binding:"required"`
}

// MakeOfferRequest carries an investor's term sheet amount.
type MakeOfferRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dgt0"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=CREATED OFFER_MADE FINANCED PAID"`
}

// OfferResponse is one financing offer on an invoice.
type OfferResponse struct {
	InvestorName string          `json:"investorName"`
	Amount       decimal.Decimal `json:"amount"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID      string               `json:"invoiceID"`
	Amount         decimal.Decimal      `json:"amount"`
	SellerName     string               `json:"sellerName"`
	BuyerName      string               `json:"buyerName"`
	Description    string               `json:"description"`
	Status         domain.InvoiceStatus `json:"status"`
	StatusLabel    string               `json:"statusLabel"`
	DueDate        string               `json:"dueDate"`
	Offers         []OfferResponse      `json:"offers"`
	FinancedAmount *decimal.Decimal     `json:"financedAmount,omitempty"`
	SettledTo      domain.Role          `json:"settledTo,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
}

// ListInvoicesResponse wraps a newest-first list of invoices.
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// InvoiceActionResponse is returned by every invoice state change, with the
// confirmation message shown to the acting participant.
type InvoiceActionResponse struct {
	Message string          `json:"message"`
	Invoice InvoiceResponse `json:"invoice"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	offers := make([]OfferResponse, len(inv.Offers))
	for i, o := range inv.Offers {
		offers[i] = OfferResponse{InvestorName: o.InvestorName, Amount: o.Amount}
	}
	return InvoiceResponse{
		InvoiceID:      inv.InvoiceID,
		Amount:         inv.Amount,
		SellerName:     inv.SellerName,
		BuyerName:      inv.BuyerName,
		Description:    inv.Description,
		Status:         inv.Status,
		StatusLabel:    inv.Status.Label(),
		DueDate:        inv.DueDate.Format(DueDateLayout),
		Offers:         offers,
		FinancedAmount: inv.FinancedAmount,
		SettledTo:      inv.SettledTo,
		CreatedAt:      inv.CreatedAt,
		LastUpdatedAt:  inv.LastUpdatedAt,
	}
}

// ToListInvoicesResponse converts a slice of domain.Invoice to ListInvoicesResponse.
func ToListInvoicesResponse(invoices []domain.Invoice) ListInvoicesResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(&inv)
	}
	return ListInvoicesResponse{Invoices: res}
}
