package dto

import (
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Role          domain.Role     `json:"role"`
	Balance       decimal.Decimal `json:"balance"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListAccountsResponse wraps the three participant accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		Role:          acc.Role,
		Balance:       acc.Balance,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}
