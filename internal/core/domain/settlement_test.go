package domain_test

import (
	"testing"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSettlementPolicy(t *testing.T) {
	p, err := domain.ParseSettlementPolicy("")
	require.NoError(t, err)
	assert.Equal(t, domain.SettleToBeneficiary, p)

	p, err = domain.ParseSettlementPolicy("financed-only")
	require.NoError(t, err)
	assert.Equal(t, domain.SettleFinancedOnly, p)

	_, err = domain.ParseSettlementPolicy("seller")
	assert.Error(t, err)
}

func TestSettlementPolicy_AllowsAndPayee(t *testing.T) {
	tests := []struct {
		name      string
		policy    domain.SettlementPolicy
		status    domain.InvoiceStatus
		wantAllow bool
		wantPayee domain.Role
	}{
		{"beneficiary pays seller when never financed", domain.SettleToBeneficiary, domain.StatusCreated, true, domain.RoleSeller},
		{"beneficiary pays seller on open offer", domain.SettleToBeneficiary, domain.StatusOfferMade, true, domain.RoleSeller},
		{"beneficiary pays investor when financed", domain.SettleToBeneficiary, domain.StatusFinanced, true, domain.RoleInvestor},
		{"investor policy always pays investor", domain.SettleToInvestor, domain.StatusCreated, true, domain.RoleInvestor},
		{"financed only rejects created", domain.SettleFinancedOnly, domain.StatusCreated, false, domain.RoleInvestor},
		{"financed only accepts financed", domain.SettleFinancedOnly, domain.StatusFinanced, true, domain.RoleInvestor},
		{"paid is never settled twice", domain.SettleToInvestor, domain.StatusPaid, false, domain.RoleInvestor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantAllow, tt.policy.Allows(tt.status))
			assert.Equal(t, tt.wantPayee, tt.policy.Payee(tt.status))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := domain.ParseRole("investor")
	assert.True(t, ok)
	assert.Equal(t, domain.RoleInvestor, r)
	assert.Equal(t, "Investor", r.Title())

	_, ok = domain.ParseRole("auditor")
	assert.False(t, ok)
}
