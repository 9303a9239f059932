package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/apperrors"
	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
	portsrepo "github.com/SscSPs/rokkam_money_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/rokkam_money_app/internal/core/ports/services"
	"github.com/SscSPs/rokkam_money_app/internal/dto"
	"github.com/SscSPs/rokkam_money_app/internal/platform/metrics"
	"github.com/SscSPs/rokkam_money_app/internal/utils"
	"github.com/SscSPs/rokkam_money_app/internal/utils/pagination"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// Action names used for metrics and logs.
const (
	ActionRegisterInvoice = "register_invoice"
	ActionMakeOffer       = "make_offer"
	ActionAcceptFinancing = "accept_financing"
	ActionSettleInvoice   = "settle_invoice"
)

const (
	defaultAuditPageSize = 50
	systemActor          = "SYSTEM"
)

var demoInvoiceDueDate = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

// GenesisConfig describes the state the ledger starts from.
type GenesisConfig struct {
	OpeningBalances map[domain.Role]decimal.Decimal
	SeedDemoInvoice bool
}

// LedgerService is the invoice financing state machine. Every action runs to
// completion under one lock, so actions never interleave.
type LedgerService struct {
	BaseService
	mu sync.Mutex

	accountRepo portsrepo.AccountRepositoryFacade
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	auditRepo   portsrepo.AuditRepositoryFacade
	txManager   portsrepo.TransactionManager
	hasher      *utils.AuditHasher
	metrics     *metrics.LedgerMetrics

	invoiceIDPrefix        string
	defaultDueDate         time.Time
	settlementPolicy       domain.SettlementPolicy
	allowInvestorOverdraft bool
	now                    func() time.Time
}

// LedgerOption is a functional option for configuring the ledger service
type LedgerOption func(*LedgerService)

// WithInvoiceIDPrefix sets the prefix of generated invoice IDs.
func WithInvoiceIDPrefix(prefix string) LedgerOption {
	return func(s *LedgerService) {
		s.invoiceIDPrefix = prefix
	}
}

// WithDefaultDueDate sets the due date given to newly registered invoices.
func WithDefaultDueDate(due time.Time) LedgerOption {
	return func(s *LedgerService) {
		s.defaultDueDate = due
	}
}

// WithSettlementPolicy selects which invoices may be settled and who is paid.
func WithSettlementPolicy(policy domain.SettlementPolicy) LedgerOption {
	return func(s *LedgerService) {
		s.settlementPolicy = policy
	}
}

// WithInvestorOverdraft lets the investor disburse more than its balance.
func WithInvestorOverdraft(allow bool) LedgerOption {
	return func(s *LedgerService) {
		s.allowInvestorOverdraft = allow
	}
}

// WithMetrics records action outcomes and balances.
func WithMetrics(m *metrics.LedgerMetrics) LedgerOption {
	return func(s *LedgerService) {
		s.metrics = m
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *LedgerService) {
		s.now = now
	}
}

// NewLedgerService creates a ledger over the given repositories.
func NewLedgerService(repos portsrepo.RepositoryProvider, hasher *utils.AuditHasher, options ...LedgerOption) *LedgerService {
	svc := &LedgerService{
		accountRepo:      repos.AccountRepo,
		invoiceRepo:      repos.InvoiceRepo,
		auditRepo:        repos.AuditRepo,
		txManager:        repos.TxManager,
		hasher:           hasher,
		invoiceIDPrefix:  "INV-2024",
		defaultDueDate:   time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		settlementPolicy: domain.SettleToBeneficiary,
		now:              func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// Bootstrap creates the three participant accounts, the genesis audit entry
// and optionally the demo invoice. It fails with ErrDuplicate if the ledger
// already holds an audit log.
func (s *LedgerService) Bootstrap(ctx context.Context, genesis GenesisConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.auditRepo.CountAuditEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to count audit entries: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%w: ledger already bootstrapped", apperrors.ErrDuplicate)
	}

	now := s.now()
	accounts := domain.DefaultAccounts(genesis.OpeningBalances)

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		for _, acc := range accounts {
			acc.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: systemActor, LastUpdatedAt: now, LastUpdatedBy: systemActor}
			if err := s.accountRepo.SaveAccount(ctx, acc); err != nil {
				return fmt.Errorf("failed to save account %s: %w", acc.AccountID, err)
			}
		}
		if err := s.appendAudit(ctx, domain.AuditEventSystemInit, domain.AuditDetailGenesis, now); err != nil {
			return err
		}
		if !genesis.SeedDemoInvoice {
			return nil
		}
		demo := domain.Invoice{
			InvoiceID:   s.nextInvoiceID(0),
			Amount:      decimal.NewFromInt(10000),
			SellerName:  accounts[0].Name,
			BuyerName:   accounts[2].Name,
			Description: "Q4 Circuit Board Supply",
			Status:      domain.StatusCreated,
			DueDate:     demoInvoiceDueDate,
			Offers:      []domain.Offer{},
			AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: systemActor, LastUpdatedAt: now, LastUpdatedBy: systemActor},
		}
		if err := s.invoiceRepo.SaveInvoice(ctx, demo); err != nil {
			return fmt.Errorf("failed to save demo invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to bootstrap ledger")
		return err
	}

	s.refreshGauges(ctx)
	s.LogInfo(ctx, "Ledger bootstrapped",
		slog.Bool("demo_invoice", genesis.SeedDemoInvoice),
		slog.String("settlement_policy", string(s.settlementPolicy)))
	return nil
}

// RegisterInvoice records a new Created invoice for the seller. An empty
// amount or description changes nothing and reports ErrValidation.
func (s *LedgerService) RegisterInvoice(ctx context.Context, amount decimal.Decimal, description string) (*domain.Invoice, error) {
	description = strings.TrimSpace(description)
	if amount.IsZero() || description == "" {
		return nil, s.finish(ctx, ActionRegisterInvoice, fmt.Errorf("%w: amount and description are required", apperrors.ErrValidation))
	}
	if amount.IsNegative() {
		return nil, s.finish(ctx, ActionRegisterInvoice, fmt.Errorf("%w: invoice amount must be positive", apperrors.ErrValidation))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seller, err := s.accountRepo.FindAccountByRole(ctx, domain.RoleSeller)
	if err != nil {
		return nil, s.finish(ctx, ActionRegisterInvoice, fmt.Errorf("failed to load seller account: %w", err))
	}
	buyer, err := s.accountRepo.FindAccountByRole(ctx, domain.RoleBuyer)
	if err != nil {
		return nil, s.finish(ctx, ActionRegisterInvoice, fmt.Errorf("failed to load buyer account: %w", err))
	}
	count, err := s.invoiceRepo.CountInvoices(ctx)
	if err != nil {
		return nil, s.finish(ctx, ActionRegisterInvoice, fmt.Errorf("failed to count invoices: %w", err))
	}

	now := s.now()
	invoice := domain.Invoice{
		InvoiceID:   s.nextInvoiceID(count),
		Amount:      amount,
		SellerName:  seller.Name,
		BuyerName:   buyer.Name,
		Description: description,
		Status:      domain.StatusCreated,
		DueDate:     s.defaultDueDate,
		Offers:      []domain.Offer{},
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     seller.AccountID,
			LastUpdatedAt: now,
			LastUpdatedBy: seller.AccountID,
		},
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
			return fmt.Errorf("failed to save invoice %s: %w", invoice.InvoiceID, err)
		}
		return s.appendAudit(ctx, domain.AuditEventInvoiceRegistered,
			fmt.Sprintf("ID: %s | Val: %s", invoice.InvoiceID, utils.FormatRupees(amount)), now)
	})
	if err != nil {
		return nil, s.finish(ctx, ActionRegisterInvoice, err)
	}

	s.LogInfo(ctx, "Invoice registered",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("amount", amount.String()))
	_ = s.finish(ctx, ActionRegisterInvoice, nil)
	return &invoice, nil
}

// MakeOffer records the investor's term sheet on a Created invoice, or
// replaces the live offer on an OfferMade one. The offer is not bounded by
// the invoice face value.
func (s *LedgerService) MakeOffer(ctx context.Context, invoiceID string, offerAmount decimal.Decimal) (*domain.Invoice, error) {
	if offerAmount.IsZero() || invoiceID == "" {
		return nil, s.finish(ctx, ActionMakeOffer, fmt.Errorf("%w: invoice ID and offer amount are required", apperrors.ErrValidation))
	}
	if offerAmount.IsNegative() {
		return nil, s.finish(ctx, ActionMakeOffer, fmt.Errorf("%w: offer amount must be positive", apperrors.ErrValidation))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, s.finish(ctx, ActionMakeOffer, err)
	}
	if invoice.Status != domain.StatusCreated && invoice.Status != domain.StatusOfferMade {
		return nil, s.finish(ctx, ActionMakeOffer, fmt.Errorf("%w: invoice %s is %s and no longer accepts offers",
			apperrors.ErrInvalidTransition, invoiceID, invoice.Status))
	}
	investor, err := s.accountRepo.FindAccountByRole(ctx, domain.RoleInvestor)
	if err != nil {
		return nil, s.finish(ctx, ActionMakeOffer, fmt.Errorf("failed to load investor account: %w", err))
	}

	if offerAmount.GreaterThan(invoice.Amount) {
		s.LogWarn(ctx, "Offer exceeds invoice face value",
			slog.String("invoice_id", invoiceID),
			slog.String("offer", offerAmount.String()),
			slog.String("face_value", invoice.Amount.String()))
	}

	now := s.now()
	invoice.Status = domain.StatusOfferMade
	invoice.Offers = []domain.Offer{{InvestorName: investor.Name, Amount: offerAmount}}
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = investor.AccountID

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
		}
		return s.appendAudit(ctx, domain.AuditEventTermSheetIssued,
			fmt.Sprintf("Ref: %s | Offer: %s", invoiceID, utils.FormatRupees(offerAmount)), now)
	})
	if err != nil {
		return nil, s.finish(ctx, ActionMakeOffer, err)
	}

	s.LogInfo(ctx, "Financing offer issued",
		slog.String("invoice_id", invoiceID),
		slog.String("offer", offerAmount.String()))
	_ = s.finish(ctx, ActionMakeOffer, nil)
	return invoice, nil
}

// AcceptFinancing moves the live offer amount from the investor to the
// seller and marks the invoice Financed. The invoice is re-read from the
// store, so only an OfferMade invoice with an offer qualifies.
func (s *LedgerService) AcceptFinancing(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, s.finish(ctx, ActionAcceptFinancing, err)
	}
	offer, hasOffer := invoice.CurrentOffer()
	if invoice.Status != domain.StatusOfferMade || !hasOffer {
		return nil, s.finish(ctx, ActionAcceptFinancing, fmt.Errorf("%w: invoice %s is %s without an open offer",
			apperrors.ErrInvalidTransition, invoiceID, invoice.Status))
	}

	seller, err := s.accountRepo.FindAccountByRole(ctx, domain.RoleSeller)
	if err != nil {
		return nil, s.finish(ctx, ActionAcceptFinancing, fmt.Errorf("failed to load seller account: %w", err))
	}
	investor, err := s.accountRepo.FindAccountByRole(ctx, domain.RoleInvestor)
	if err != nil {
		return nil, s.finish(ctx, ActionAcceptFinancing, fmt.Errorf("failed to load investor account: %w", err))
	}
	if !s.allowInvestorOverdraft && investor.Balance.LessThan(offer.Amount) {
		return nil, s.finish(ctx, ActionAcceptFinancing, fmt.Errorf("%w: investor balance %s cannot cover %s",
			apperrors.ErrInsufficientFunds, investor.Balance, offer.Amount))
	}

	now := s.now()
	financed := offer.Amount
	invoice.Status = domain.StatusFinanced
	invoice.FinancedAmount = &financed
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = seller.AccountID

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.transfer(ctx, domain.RoleInvestor, domain.RoleSeller, offer.Amount, seller.AccountID, now); err != nil {
			return err
		}
		if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
		}
		return s.appendAudit(ctx, domain.AuditEventCapitalDisbursed,
			fmt.Sprintf("From: Investor -> Seller | Amt: %s", utils.FormatRupees(offer.Amount)), now)
	})
	if err != nil {
		return nil, s.finish(ctx, ActionAcceptFinancing, err)
	}

	s.LogInfo(ctx, "Capital disbursed",
		slog.String("invoice_id", invoiceID),
		slog.String("amount", offer.Amount.String()))
	_ = s.finish(ctx, ActionAcceptFinancing, nil)
	return invoice, nil
}

// SettleInvoice moves the invoice face value from the buyer to the payee
// chosen by the settlement policy and marks the invoice Paid. If the buyer
// cannot cover the amount nothing changes and ErrInsufficientFunds is returned.
func (s *LedgerService) SettleInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return nil, s.finish(ctx, ActionSettleInvoice, err)
	}
	if !s.settlementPolicy.Allows(invoice.Status) {
		return nil, s.finish(ctx, ActionSettleInvoice, fmt.Errorf("%w: invoice %s is %s and cannot be settled under the %s policy",
			apperrors.ErrInvalidTransition, invoiceID, invoice.Status, s.settlementPolicy))
	}

	buyer, err := s.accountRepo.FindAccountByRole(ctx, domain.RoleBuyer)
	if err != nil {
		return nil, s.finish(ctx, ActionSettleInvoice, fmt.Errorf("failed to load buyer account: %w", err))
	}
	if buyer.Balance.LessThan(invoice.Amount) {
		return nil, s.finish(ctx, ActionSettleInvoice, fmt.Errorf("%w: buyer balance %s cannot cover %s",
			apperrors.ErrInsufficientFunds, buyer.Balance, invoice.Amount))
	}

	now := s.now()
	payee := s.settlementPolicy.Payee(invoice.Status)
	invoice.Status = domain.StatusPaid
	invoice.SettledTo = payee
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = buyer.AccountID

	err = s.txManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.transfer(ctx, domain.RoleBuyer, payee, invoice.Amount, buyer.AccountID, now); err != nil {
			return err
		}
		if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
			return fmt.Errorf("failed to update invoice %s: %w", invoiceID, err)
		}
		return s.appendAudit(ctx, domain.AuditEventInvoiceSettled,
			fmt.Sprintf("From: Buyer -> %s | Amt: %s", payee.Title(), utils.FormatRupees(invoice.Amount)), now)
	})
	if err != nil {
		return nil, s.finish(ctx, ActionSettleInvoice, err)
	}

	s.LogInfo(ctx, "Invoice settled",
		slog.String("invoice_id", invoiceID),
		slog.String("payee", string(payee)),
		slog.String("amount", invoice.Amount.String()))
	_ = s.finish(ctx, ActionSettleInvoice, nil)
	return invoice, nil
}

func (s *LedgerService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *LedgerService) GetAccountByRole(ctx context.Context, role domain.Role) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accountRepo.FindAccountByRole(ctx, role)
}

func (s *LedgerService) ListInvoices(ctx context.Context, status *domain.InvoiceStatus) ([]domain.Invoice, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.invoiceRepo.ListInvoices(ctx, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices")
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (s *LedgerService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
}

func (s *LedgerService) ListAuditEntries(ctx context.Context, params dto.ListAuditEntriesParams) (*dto.ListAuditEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultAuditPageSize
	}

	var before int64
	if params.NextToken != nil && *params.NextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = seq
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Fetch one extra entry to learn whether another page exists.
	entries, err := s.auditRepo.ListAuditEntries(ctx, limit+1, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit entries")
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeSequenceToken(entries[limit-1].Sequence)
		nextToken = &token
	}

	return &dto.ListAuditEntriesResponse{
		Entries:   dto.ToAuditEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *LedgerService) VerifyAuditChain(ctx context.Context) (*domain.AuditVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.auditRepo.ListAuditEntries(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	result := &domain.AuditVerification{Valid: true, Entries: len(entries)}
	prevHash := utils.GenesisPrevHash
	wantSeq := int64(1)
	// entries are newest first; the chain is checked from the oldest.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Sequence != wantSeq || e.PrevHash != prevHash || !s.hasher.Verify(e) {
			broken := e.Sequence
			result.Valid = false
			result.BrokenAt = &broken
			s.LogWarn(ctx, "Audit chain verification failed", slog.Int64("sequence", broken), slog.String("entry_id", e.EntryID))
			break
		}
		prevHash = e.Hash
		wantSeq++
	}
	return result, nil
}

func (s *LedgerService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	auditCount, err := s.auditRepo.CountAuditEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count audit entries: %w", err)
	}

	summary := &domain.LedgerSummary{
		TotalBalance:      decimal.Zero,
		Balances:          make(map[domain.Role]decimal.Decimal, len(accounts)),
		InvoicesByStatus:  make(map[domain.InvoiceStatus]int, len(domain.InvoiceStatuses)),
		OutstandingAmount: decimal.Zero,
		FinancedAmount:    decimal.Zero,
		AuditEntries:      auditCount,
	}
	for _, acc := range accounts {
		summary.Balances[acc.Role] = acc.Balance
		summary.TotalBalance = summary.TotalBalance.Add(acc.Balance)
	}
	for _, st := range domain.InvoiceStatuses {
		summary.InvoicesByStatus[st] = 0
	}
	for _, inv := range invoices {
		summary.InvoicesByStatus[inv.Status]++
		if inv.Status != domain.StatusPaid {
			summary.OutstandingAmount = summary.OutstandingAmount.Add(inv.Amount)
		}
		if inv.Status == domain.StatusFinanced && inv.FinancedAmount != nil {
			summary.FinancedAmount = summary.FinancedAmount.Add(*inv.FinancedAmount)
		}
	}
	return summary, nil
}

func (s *LedgerService) nextInvoiceID(existing int) string {
	return fmt.Sprintf("%s-%03d", s.invoiceIDPrefix, existing+1)
}

// transfer debits from and credits to by amount in one balance update, so the
// total across accounts is unchanged.
func (s *LedgerService) transfer(ctx context.Context, from, to domain.Role, amount decimal.Decimal, actorID string, now time.Time) error {
	err := s.accountRepo.UpdateAccountBalances(ctx, map[domain.Role]decimal.Decimal{
		from: amount.Neg(),
		to:   amount,
	}, actorID, now)
	if err != nil {
		return fmt.Errorf("failed to move %s from %s to %s: %w", amount, from, to, err)
	}
	return nil
}

// appendAudit chains a new entry onto the latest one. Callers hold s.mu.
func (s *LedgerService) appendAudit(ctx context.Context, event, detail string, now time.Time) error {
	entry := domain.AuditEntry{
		EntryID:   "TXN-" + ulid.Make().String(),
		Sequence:  1,
		PrevHash:  utils.GenesisPrevHash,
		Event:     event,
		Detail:    detail,
		CreatedAt: now,
	}

	latest, err := s.auditRepo.LatestAuditEntry(ctx)
	switch {
	case err == nil:
		entry.Sequence = latest.Sequence + 1
		entry.PrevHash = latest.Hash
	case errors.Is(err, apperrors.ErrNotFound):
	default:
		return fmt.Errorf("failed to read latest audit entry: %w", err)
	}

	entry.Hash = s.hasher.Sum(entry)
	if err := s.auditRepo.AppendAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// finish records the outcome of an action and returns err unchanged.
func (s *LedgerService) finish(ctx context.Context, action string, err error) error {
	outcome := outcomeOf(err)
	s.metrics.ObserveAction(action, outcome)

	switch outcome {
	case metrics.OutcomeSuccess:
		s.refreshGauges(ctx)
	case metrics.OutcomeNoop:
		s.LogDebug(ctx, "Ledger action ignored", slog.String("action", action), slog.String("reason", err.Error()))
	case metrics.OutcomeRejected:
		s.LogWarn(ctx, "Ledger action rejected", slog.String("action", action), slog.String("reason", err.Error()))
	default:
		s.LogError(ctx, err, "Ledger action failed", slog.String("action", action))
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
		return metrics.OutcomeNoop
	case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrInsufficientFunds):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeError
	}
}

// refreshGauges publishes balances and invoice counts. Callers hold s.mu.
func (s *LedgerService) refreshGauges(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err == nil {
		for _, acc := range accounts {
			s.metrics.SetBalance(string(acc.Role), acc.Balance.InexactFloat64())
		}
	}
	invoices, err := s.invoiceRepo.ListInvoices(ctx, nil)
	if err == nil {
		counts := make(map[domain.InvoiceStatus]int, len(domain.InvoiceStatuses))
		for _, inv := range invoices {
			counts[inv.Status]++
		}
		for _, st := range domain.InvoiceStatuses {
			s.metrics.SetInvoiceCount(string(st), counts[st])
		}
	}
}
