package models

import "time"

// RosterRecord is one registered participant row. MessagingID stays nil until
// the first successful reconciliation links a LINE account to the row.
type RosterRecord struct {
	ID           int64      `json:"id" db:"id"`
	MessagingID  *string    `json:"messaging_id,omitempty" db:"messaging_id"`
	RosterNumber string     `json:"roster_number" db:"roster_number"`
	DisplayName  string     `json:"display_name" db:"display_name"`
	LinkedAt     *time.Time `json:"linked_at,omitempty" db:"linked_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// IsLinked reports whether a messaging identity is already attached to the row.
func (r *RosterRecord) IsLinked() bool {
	return r.MessagingID != nil && *r.MessagingID != ""
}
