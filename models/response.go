package models

import "time"

// ResponseRecord is one row of a per-form response table.
type ResponseRecord struct {
	ID           string    `json:"id" db:"id"`
	Table        string    `json:"table" db:"response_table"`
	SubmittedAt  time.Time `json:"timestamp" db:"submitted_at"`
	RosterNumber string    `json:"bambooNo" db:"roster_number"`
	DisplayName  string    `json:"displayName" db:"display_name"`
	Attendance   string    `json:"attendance" db:"attendance"`
	MessagingID  string    `json:"userId" db:"messaging_id"`
}
