package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Action outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeNoop     = "noop"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// LedgerMetrics exposes ledger activity and balances to Prometheus.
// A nil *LedgerMetrics is valid and records nothing.
type LedgerMetrics struct {
	actions  *prometheus.CounterVec
	balances *prometheus.GaugeVec
	invoices *prometheus.GaugeVec
}

// NewLedgerMetrics creates the collectors and registers them with reg. Collectors
// already registered by an earlier call are reused.
func NewLedgerMetrics(reg prometheus.Registerer) (*LedgerMetrics, error) {
	actions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rokkam",
		Subsystem: "ledger",
		Name:      "actions_total",
		Help:      "Ledger actions by action and outcome.",
	}, []string{"action", "outcome"}))
	if err != nil {
		return nil, err
	}
	balances, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "rokkam",
		Name:      "account_balance",
		Help:      "Current account balance by role.",
	}, []string{"role"}))
	if err != nil {
		return nil, err
	}
	invoices, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "rokkam",
		Name:      "invoices_by_status",
		Help:      "Number of invoices currently in each status.",
	}, []string{"status"}))
	if err != nil {
		return nil, err
	}
	return &LedgerMetrics{actions: actions, balances: balances, invoices: invoices}, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, err
	}
	return c, nil
}

// ObserveAction counts one ledger action.
func (m *LedgerMetrics) ObserveAction(action, outcome string) {
	if m == nil {
		return
	}
	m.actions.WithLabelValues(action, outcome).Inc()
}

// SetBalance records the current balance of role.
func (m *LedgerMetrics) SetBalance(role string, balance float64) {
	if m == nil {
		return
	}
	m.balances.WithLabelValues(role).Set(balance)
}

// SetInvoiceCount records how many invoices are in status.
func (m *LedgerMetrics) SetInvoiceCount(status string, n int) {
	if m == nil {
		return
	}
	m.invoices.WithLabelValues(status).Set(float64(n))
}
