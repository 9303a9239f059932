package domain_test

import (
	"testing"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatus_CanMoveTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.InvoiceStatus
		to   domain.InvoiceStatus
		want bool
	}{
		{name: "created to offer made", from: domain.StatusCreated, to: domain.StatusOfferMade, want: true},
		{name: "offer made replaced", from: domain.StatusOfferMade, to: domain.StatusOfferMade, want: true},
		{name: "offer made to financed", from: domain.StatusOfferMade, to: domain.StatusFinanced, want: true},
		{name: "financed to paid", from: domain.StatusFinanced, to: domain.StatusPaid, want: true},
		{name: "created straight to paid", from: domain.StatusCreated, to: domain.StatusPaid, want: true},
		{name: "financed back to offer made", from: domain.StatusFinanced, to: domain.StatusOfferMade, want: false},
		{name: "paid back to created", from: domain.StatusPaid, to: domain.StatusCreated, want: false},
		{name: "unknown target", from: domain.StatusCreated, to: domain.InvoiceStatus("VOID"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanMoveTo(tt.to))
		})
	}
}

func TestInvoiceStatus_Label(t *testing.T) {
	assert.Equal(t, "Pending Financing", domain.StatusCreated.Label())
	assert.Equal(t, "Offer Received", domain.StatusOfferMade.Label())
	assert.Equal(t, "Financed (Cash Received)", domain.StatusFinanced.Label())
	assert.Equal(t, "Settled (Closed)", domain.StatusPaid.Label())
	assert.Empty(t, domain.InvoiceStatus("VOID").Label())
}

func TestInvoice_Clone(t *testing.T) {
	financed := decimal.NewFromInt(9800)
	original := domain.Invoice{
		InvoiceID:      "INV-2024-001",
		Amount:         decimal.NewFromInt(10000),
		Offers:         []domain.Offer{{InvestorName: "Lakshmi Capital Corp.", Amount: financed}},
		FinancedAmount: &financed,
	}

	clone := original.Clone()
	clone.Offers[0].Amount = decimal.NewFromInt(1)
	*clone.FinancedAmount = decimal.NewFromInt(2)

	assert.True(t, original.Offers[0].Amount.Equal(decimal.NewFromInt(9800)))
	assert.True(t, original.FinancedAmount.Equal(decimal.NewFromInt(9800)))
}

func TestInvoice_CurrentOffer(t *testing.T) {
	inv := domain.Invoice{}
	_, ok := inv.CurrentOffer()
	assert.False(t, ok)

	inv.Offers = []domain.Offer{{InvestorName: "Lakshmi Capital Corp.", Amount: decimal.NewFromInt(9800)}}
	offer, ok := inv.CurrentOffer()
	assert.True(t, ok)
	assert.Equal(t, "Lakshmi Capital Corp.", offer.InvestorName)
}
