package domain

import "fmt"

// SettlementPolicy decides which invoices a buyer may settle and who receives the payment.
type SettlementPolicy string

const (
	// SettleToBeneficiary pays the investor for financed invoices and the seller otherwise.
	SettleToBeneficiary SettlementPolicy = "beneficiary"
	// SettleToInvestor always pays the investor, whatever the invoice status.
	SettleToInvestor SettlementPolicy = "investor"
	// SettleFinancedOnly only allows settling financed invoices, paying the investor.
	SettleFinancedOnly SettlementPolicy = "financed-only"
)

// ParseSettlementPolicy validates a configured policy name. An empty name selects SettleToBeneficiary.
func ParseSettlementPolicy(s string) (SettlementPolicy, error) {
	switch p := SettlementPolicy(s); p {
	case "":
		return SettleToBeneficiary, nil
	case SettleToBeneficiary, SettleToInvestor, SettleFinancedOnly:
		return p, nil
	default:
		return "", fmt.Errorf("unknown settlement policy %q", s)
	}
}

// Allows reports whether an invoice in status may be settled. Paid invoices never may.
func (p SettlementPolicy) Allows(status InvoiceStatus) bool {
	if !status.IsValid() || status == StatusPaid {
		return false
	}
	if p == SettleFinancedOnly {
		return status == StatusFinanced
	}
	return true
}

// Payee returns the role credited when an invoice in status is settled.
func (p SettlementPolicy) Payee(status InvoiceStatus) Role {
	if p == SettleToBeneficiary && status != StatusFinanced {
		return RoleSeller
	}
	return RoleInvestor
}
