package domain

import "time"

// Audit event names written to the ledger's audit log.
const (
	AuditEventSystemInit        = "System Init"
	AuditEventInvoiceRegistered = "Invoice Registered"
	AuditEventTermSheetIssued   = "Term Sheet Issued"
	AuditEventCapitalDisbursed  = "Capital Disbursed"
	AuditEventInvoiceSettled    = "Invoice Settled"
	AuditDetailGenesis          = "Ledger Genesis Block"
)

// AuditEntry is one immutable line of the audit log. Hash chains the entry to
// its predecessor through PrevHash.
type AuditEntry struct {
	EntryID   string    `json:"entryID"`
	Sequence  int64     `json:"sequence"`
	Hash      string    `json:"hash"`
	PrevHash  string    `json:"prevHash"`
	Event     string    `json:"event"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditVerification is the outcome of recomputing the audit hash chain.
type AuditVerification struct {
	Valid    bool   `json:"valid"`
	Entries  int    `json:"entries"`
	BrokenAt *int64 `json:"brokenAt,omitempty"`
}
