package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Role identifies which of the three fixed participants an account belongs to.
type Role string

const (
	RoleSeller   Role = "SELLER"
	RoleInvestor Role = "INVESTOR"
	RoleBuyer    Role = "BUYER"
)

// Roles lists every role in display order.
var Roles = []Role{RoleSeller, RoleInvestor, RoleBuyer}

// ParseRole resolves a role name case-insensitively ("seller", "Seller", "SELLER").
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleSeller, RoleInvestor, RoleBuyer:
		return r, true
	}
	return "", false
}

// Title returns the role as shown in audit details, e.g. "Investor".
func (r Role) Title() string {
	if r == "" {
		return ""
	}
	s := strings.ToLower(string(r))
	return strings.ToUpper(s[:1]) + s[1:]
}

// Account represents one participant's operating account.
type Account struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Role      Role            `json:"role"`
	Balance   decimal.Decimal `json:"balance"`
	AuditFields
}

// DefaultAccounts returns the three fixed participants with the given opening balances.
// Roles missing from balances open at zero.
func DefaultAccounts(balances map[Role]decimal.Decimal) []Account {
	return []Account{
		{AccountID: "ACC_SELLER_01", Name: "Siva Electronics Ltd.", Role: RoleSeller, Balance: balances[RoleSeller]},
		{AccountID: "ACC_INVEST_99", Name: "Lakshmi Capital Corp.", Role: RoleInvestor, Balance: balances[RoleInvestor]},
		{AccountID: "ACC_BUYER_55", Name: "Rahul Retailers Inc.", Role: RoleBuyer, Balance: balances[RoleBuyer]},
	}
}

// DefaultOpeningBalances are the demo balances the ledger starts with.
func DefaultOpeningBalances() map[Role]decimal.Decimal {
	return map[Role]decimal.Decimal{
		RoleSeller:   decimal.NewFromInt(1000),
		RoleInvestor: decimal.NewFromInt(50000),
		RoleBuyer:    decimal.NewFromInt(5000),
	}
}
