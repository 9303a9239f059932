package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByRole retrieves the account owned by the given role.
	FindAccountByRole(ctx context.Context, role domain.Role) (*domain.Account, error)

	// ListAccounts retrieves every account in role display order.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccountBalances applies signed balance changes to several accounts at once.
	// Either every change is applied or none is.
	UpdateAccountBalances(ctx context.Context, balanceChanges map[domain.Role]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
