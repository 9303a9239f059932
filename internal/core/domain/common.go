package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy and LastUpdatedBy reference the acting account ID.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
