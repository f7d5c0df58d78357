package models

import "time"

// AuditRecord is a row of journal_audit_records. Line snapshots are stored as JSONB.
type AuditRecord struct {
	AuditID        string    `db:"audit_id"`
	EntryID        string    `db:"entry_id"`
	CompanyID      string    `db:"company_id"`
	ActorID        string    `db:"actor_id"`
	ActorEmail     string    `db:"actor_email"`
	ActorName      string    `db:"actor_name"`
	ReferenceLabel string    `db:"reference_label"`
	OldLines       []byte    `db:"old_lines"`
	NewLines       []byte    `db:"new_lines"`
	Reason         string    `db:"reason"`
	CreatedAt      time.Time `db:"created_at"`
	PrevHash       string    `db:"prev_hash"`
	Hash           string    `db:"hash"`
}

// CompanyMember is a row of company_members.
type CompanyMember struct {
	CompanyID string `db:"company_id"`
	UserID    string `db:"user_id"`
	Role      string `db:"role"`
	AuditFields
}
