package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const dueDateLayout = "2006-01-02"

const insecureAuditHashKey = "rokkam-dev-audit-key-change-me"

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Ledger
	InvoiceIDPrefix        string
	DefaultDueDate         time.Time
	SeedDemoInvoice        bool
	SellerOpeningBalance   decimal.Decimal
	InvestorOpeningBalance decimal.Decimal
	BuyerOpeningBalance    decimal.Decimal
	SettlementPolicy       string
	AllowInvestorOverdraft bool
	AuditHashKey           string

	// HTTP
	RateLimit          string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("INVOICE_ID_PREFIX", "INV-2024")
	v.SetDefault("DEFAULT_DUE_DATE", "2025-12-15")
	v.SetDefault("SEED_DEMO_INVOICE", true)
	v.SetDefault("SELLER_OPENING_BALANCE", "1000")
	v.SetDefault("INVESTOR_OPENING_BALANCE", "50000")
	v.SetDefault("BUYER_OPENING_BALANCE", "5000")
	v.SetDefault("SETTLEMENT_POLICY", "beneficiary")
	v.SetDefault("ALLOW_INVESTOR_OVERDRAFT", false)
	v.SetDefault("AUDIT_HASH_KEY", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.InvoiceIDPrefix = strings.TrimSpace(v.GetString("INVOICE_ID_PREFIX"))
	if cfg.InvoiceIDPrefix == "" {
		return nil, fmt.Errorf("INVOICE_ID_PREFIX must not be empty")
	}

	dueDateStr := v.GetString("DEFAULT_DUE_DATE")
	dueDate, err := time.Parse(dueDateLayout, dueDateStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_DUE_DATE %q (want YYYY-MM-DD): %w", dueDateStr, err)
	}
	cfg.DefaultDueDate = dueDate
	cfg.SeedDemoInvoice = v.GetBool("SEED_DEMO_INVOICE")

	balances := map[string]*decimal.Decimal{
		"SELLER_OPENING_BALANCE":   &cfg.SellerOpeningBalance,
		"INVESTOR_OPENING_BALANCE": &cfg.InvestorOpeningBalance,
		"BUYER_OPENING_BALANCE":    &cfg.BuyerOpeningBalance,
	}
	for key, dst := range balances {
		raw := v.GetString(key)
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", key, raw, err)
		}
		if d.IsNegative() {
			return nil, fmt.Errorf("%s must not be negative, got %s", key, raw)
		}
		*dst = d
	}

	cfg.SettlementPolicy = strings.ToLower(strings.TrimSpace(v.GetString("SETTLEMENT_POLICY")))
	cfg.AllowInvestorOverdraft = v.GetBool("ALLOW_INVESTOR_OVERDRAFT")

	cfg.AuditHashKey = v.GetString("AUDIT_HASH_KEY")
	if cfg.AuditHashKey == "" {
		log.Println("Warning: AUDIT_HASH_KEY is not set, using default insecure key. THIS IS NOT FOR PRODUCTION.")
		cfg.AuditHashKey = insecureAuditHashKey
	}

	cfg.RateLimit = v.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
