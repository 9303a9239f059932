package dto

import (
	"time"

	"github.com/SscSPs/rokkam_money_app/internal/core/domain"
)

// ListAuditEntriesParams defines query parameters for paging the audit log.
type ListAuditEntriesParams struct {
	Limit     int     `form:"limit,default=50" binding:"min=1,max=500"`
	NextToken *string `form:"nextToken"`
}

// AuditEntryResponse defines the data returned for one audit entry.
type AuditEntryResponse struct {
	EntryID   string    `json:"id"`
	Sequence  int64     `json:"sequence"`
	Hash      string    `json:"hash"`
	PrevHash  string    `json:"prevHash"`
	Event     string    `json:"event"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListAuditEntriesResponse is one newest-first page of the audit log.
type ListAuditEntriesResponse struct {
	Entries   []AuditEntryResponse `json:"entries"`
	NextToken *string              `json:"nextToken,omitempty"`
}

// ToAuditEntryResponse converts a domain.AuditEntry to AuditEntryResponse DTO
func ToAuditEntryResponse(e *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		EntryID:   e.EntryID,
		Sequence:  e.Sequence,
		Hash:      e.Hash,
		PrevHash:  e.PrevHash,
		Event:     e.Event,
		Detail:    e.Detail,
		CreatedAt: e.CreatedAt,
	}
}

// ToAuditEntryResponses converts a slice of domain.AuditEntry to []AuditEntryResponse.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	res := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToAuditEntryResponse(&e)
	}
	return res
}
