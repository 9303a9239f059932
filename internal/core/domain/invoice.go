package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle state of an invoice. Statuses only move forward.
type InvoiceStatus string

const (
	StatusCreated   InvoiceStatus = "CREATED"
	StatusOfferMade InvoiceStatus = "OFFER_MADE"
	StatusFinanced  InvoiceStatus = "FINANCED"
	StatusPaid      InvoiceStatus = "PAID"
)

// InvoiceStatuses lists every status in lifecycle order.
var InvoiceStatuses = []InvoiceStatus{StatusCreated, StatusOfferMade, StatusFinanced, StatusPaid}

var statusRank = map[InvoiceStatus]int{
	StatusCreated:   1,
	StatusOfferMade: 2,
	StatusFinanced:  3,
	StatusPaid:      4,
}

var statusLabels = map[InvoiceStatus]string{
	StatusCreated:   "Pending Financing",
	StatusOfferMade: "Offer Received",
	StatusFinanced:  "Financed (Cash Received)",
	StatusPaid:      "Settled (Closed)",
}

// IsValid reports whether s is a known status.
func (s InvoiceStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank is the position of s in the lifecycle, 0 for unknown statuses.
func (s InvoiceStatus) Rank() int {
	return statusRank[s]
}

// Label is the human readable status shown to participants.
func (s InvoiceStatus) Label() string {
	return statusLabels[s]
}

// CanMoveTo reports whether moving from s to next keeps the lifecycle monotonic.
// Staying in the same status is allowed (an offer may be replaced).
func (s InvoiceStatus) CanMoveTo(next InvoiceStatus) bool {
	return s.IsValid() && next.IsValid() && next.Rank() >= s.Rank()
}

// Offer is an investor's proposed financing amount for one invoice.
type Offer struct {
	InvestorName string          `json:"investorName"`
	Amount       decimal.Decimal `json:"amount"`
}

// Invoice is a receivable the seller registers for financing.
type Invoice struct {
	InvoiceID      string           `json:"invoiceID"`
	Amount         decimal.Decimal  `json:"amount"`
	SellerName     string           `json:"sellerName"`
	BuyerName      string           `json:"buyerName"`
	Description    string           `json:"description"`
	Status         InvoiceStatus    `json:"status"`
	DueDate        time.Time        `json:"dueDate"`
	Offers         []Offer          `json:"offers"`
	FinancedAmount *decimal.Decimal `json:"financedAmount,omitempty"`
	SettledTo      Role             `json:"settledTo,omitempty"`
	AuditFields
}

// CurrentOffer returns the live offer, if any.
func (i *Invoice) CurrentOffer() (Offer, bool) {
	if len(i.Offers) == 0 {
		return Offer{}, false
	}
	return i.Offers[0], true
}

// Clone returns a deep copy so callers cannot mutate stored state through shared slices or pointers.
func (i Invoice) Clone() Invoice {
	c := i
	if i.Offers != nil {
		c.Offers = make([]Offer, len(i.Offers))
		copy(c.Offers, i.Offers)
	}
	if i.FinancedAmount != nil {
		fa := *i.FinancedAmount
		c.FinancedAmount = &fa
	}
	return c
}
