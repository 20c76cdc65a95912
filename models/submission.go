package models

import "time"

const (
	// AttendanceUnanswered is the status recorded when a submission carries no answer.
	AttendanceUnanswered = "未回答"
	// RosterNumberUnregistered marks a submission that no roster row could be found for.
	RosterNumberUnregistered = "未登録"
)

type SubmissionSource string

const (
	SourceFormEvent SubmissionSource = "form_event"
	SourceClient    SubmissionSource = "client"
)

// ResponseRowRef points at the response row a form event originated from.
type ResponseRowRef struct {
	Table string `json:"table"`
	RowID string `json:"row_id"`
}

// Submission is the canonical attendance answer produced by the intake adapter.
// Empty optional fields mean "absent".
type Submission struct {
	FormKey              string           `json:"form_key"`
	Source               SubmissionSource `json:"source"`
	MessagingID          string           `json:"messaging_id"`
	DeclaredRosterNumber string           `json:"declared_roster_number,omitempty"`
	DisplayName          string           `json:"display_name,omitempty"`
	Status               string           `json:"status"`
	Row                  *ResponseRowRef  `json:"row,omitempty"`
	ReceivedAt           time.Time        `json:"received_at"`
}

// FormEvent is the payload of a form-submit trigger: configured column labels
// mapped to their answers.
type FormEvent struct {
	Source      string              `json:"source"`
	RowID       string              `json:"rowId,omitempty"`
	NamedValues map[string][]string `json:"namedValues"`
}

// ClientSubmission is the flat payload posted by the LIFF client.
type ClientSubmission struct {
	Action     string `json:"action"`
	UserID     string `json:"userId"`
	UserName   string `json:"userName"`
	Attendance string `json:"attendance"`
	FormKey    string `json:"formKey,omitempty"`
	BambooNo   string `json:"bambooNo,omitempty"`
}
