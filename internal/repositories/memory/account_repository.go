package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type accountRepository struct {
	store *Store
}

func newAccountRepository(store *Store) portsrepo.AccountRepositoryFacade {
	return &accountRepository{store: store}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	if _, ok := domain.ParseRole(string(account.Role)); !ok {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, account.Role)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.accounts[account.Role]; exists {
		return fmt.Errorf("%w: account for role %s already exists", apperrors.ErrDuplicate, account.Role)
	}
	r.store.accounts[account.Role] = account
	return nil
}

func (r *accountRepository) FindAccountByRole(ctx context.Context, role domain.Role) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accounts[role]
	if !ok {
		return nil, fmt.Errorf("%w: account for role %s", apperrors.ErrNotFound, role)
	}
	return &acc, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(r.store.accounts))
	for _, role := range domain.Roles {
		if acc, ok := r.store.accounts[role]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (r *accountRepository) UpdateAccountBalances(ctx context.Context, balanceChanges map[domain.Role]decimal.Decimal, userID string, now time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Check every account first so a missing one leaves all balances untouched.
	for role := range balanceChanges {
		if _, ok := r.store.accounts[role]; !ok {
			return fmt.Errorf("%w: account for role %s", apperrors.ErrNotFound, role)
		}
	}

	for role, change := range balanceChanges {
		acc := r.store.accounts[role]
		acc.Balance = acc.Balance.Add(change)
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		r.store.accounts[role] = acc
	}
	return nil
}
