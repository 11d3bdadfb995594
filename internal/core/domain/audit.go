package domain

import "time"

// AuditAction is the kind of mutation recorded in the audit trail.
type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditLogin  AuditAction = "LOGIN"
	AuditLogout AuditAction = "LOGOUT"
	AuditExport AuditAction = "EXPORT"
)

// AuditEntity names the resource an audit entry refers to.
type AuditEntity string

const (
	EntityUser     AuditEntity = "USER"
	EntityCategory AuditEntity = "CATEGORY"
	EntityExpense  AuditEntity = "EXPENSE"
	EntityIncome   AuditEntity = "INCOME"
)

// AuditLogEntry is an immutable record of one action. Entries are only ever
// inserted.
type AuditLogEntry struct {
	ID            string         `json:"id"`
	Action        AuditAction    `json:"action"`
	Entity        AuditEntity    `json:"entity"`
	EntityID      *string        `json:"entityId"`
	PerformedBy   string         `json:"performedBy"`
	PerformerRole Role           `json:"role"`
	Timestamp     time.Time      `json:"timestamp"`
	Metadata      map[string]any `json:"metadata"`
}

// AuditLogView is an entry with its performer resolved for display.
type AuditLogView struct {
	AuditLogEntry
	Performer *UserSummary `json:"performer,omitempty"`
}
