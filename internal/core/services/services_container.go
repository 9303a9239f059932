package services

import (
	"context"
	"fmt"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rokkam_money_app/internal/core/ports/services"
	"github.com/SscSPs/rokkam_money_app/internal/platform/config"
	"github.com/SscSPs/rokkam_money_app/internal/platform/metrics"
	"github.com/SscSPs/rokkam_money_app/internal/utils"
	"github.com/shopspring/decimal"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
// and bootstraps the ledger into its genesis state.
func NewServiceContainer(ctx context.Context, cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.LedgerMetrics) (*portssvc.ServiceContainer, error) {
	policy, err := domain.ParseSettlementPolicy(cfg.SettlementPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid SETTLEMENT_POLICY: %w", err)
	}

	hasher, err := utils.NewAuditHasher(cfg.AuditHashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_HASH_KEY: %w", err)
	}

	ledger := NewLedgerService(repos, hasher,
		WithInvoiceIDPrefix(cfg.InvoiceIDPrefix),
		WithDefaultDueDate(cfg.DefaultDueDate),
		WithSettlementPolicy(policy),
		WithInvestorOverdraft(cfg.AllowInvestorOverdraft),
		WithMetrics(m),
	)

	err = ledger.Bootstrap(ctx, GenesisConfig{
		OpeningBalances: map[domain.Role]decimal.Decimal{
			domain.RoleSeller:   cfg.SellerOpeningBalance,
			domain.RoleInvestor: cfg.InvestorOpeningBalance,
			domain.RoleBuyer:    cfg.BuyerOpeningBalance,
		},
		SeedDemoInvoice: cfg.SeedDemoInvoice,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap ledger: %w", err)
	}

	return &portssvc.ServiceContainer{Ledger: ledger}, nil
}
