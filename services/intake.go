package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/models"
)

const (
	ActionSubmitAttendance = "submitAttendance"

	maxFieldLength = 256
)

// FromFormEvent reads the configured columns of a form-submit event into a
// Submission. The name and roster number columns are optional.
func FromFormEvent(ev models.FormEvent, formKey string, cols config.ColumnLabels, receivedAt time.Time) (models.Submission, error) {
	sub := models.Submission{
		FormKey:              formKey,
		Source:               models.SourceFormEvent,
		MessagingID:          firstAnswer(ev.NamedValues, cols.UserID),
		DeclaredRosterNumber: firstAnswer(ev.NamedValues, cols.RosterNumber),
		DisplayName:          rawAnswer(ev.NamedValues, cols.Name),
		Status:               firstAnswer(ev.NamedValues, cols.Status),
		ReceivedAt:           receivedAt,
	}
	if sub.Status == "" {
		sub.Status = models.AttendanceUnanswered
	}
	if ev.RowID != "" {
		sub.Row = &models.ResponseRowRef{Table: ev.Source, RowID: ev.RowID}
	}
	if sub.MessagingID == "" {
		return sub, ErrMissingIdentity
	}
	return sub, nil
}

// FromClientSubmission converts the LIFF client payload into a Submission.
func FromClientSubmission(cs models.ClientSubmission, defaultFormKey string, receivedAt time.Time) (models.Submission, error) {
	sub := models.Submission{
		FormKey:              strings.TrimSpace(cs.FormKey),
		Source:               models.SourceClient,
		MessagingID:          strings.TrimSpace(cs.UserID),
		DeclaredRosterNumber: strings.TrimSpace(cs.BambooNo),
		DisplayName:          cs.UserName,
		Status:               strings.TrimSpace(cs.Attendance),
		ReceivedAt:           receivedAt,
	}
	if sub.FormKey == "" {
		sub.FormKey = defaultFormKey
	}
	if sub.Status == "" {
		sub.Status = models.AttendanceUnanswered
	}
	if sub.MessagingID == "" {
		return sub, ErrMissingIdentity
	}
	if cs.Action != "" && cs.Action != ActionSubmitAttendance {
		return sub, fmt.Errorf("%w: unexpected action %q", ErrInvalidSubmission, cs.Action)
	}
	for name, v := range map[string]string{"userName": sub.DisplayName, "attendance": sub.Status, "bambooNo": sub.DeclaredRosterNumber} {
		if utf8.RuneCountInString(v) > maxFieldLength {
			return sub, fmt.Errorf("%w: %s is longer than %d characters", ErrInvalidSubmission, name, maxFieldLength)
		}
	}
	return sub, nil
}

func firstAnswer(values map[string][]string, label string) string {
	return strings.TrimSpace(rawAnswer(values, label))
}

// rawAnswer keeps surrounding spaces; display names are compared exactly.
func rawAnswer(values map[string][]string, label string) string {
	if label == "" {
		return ""
	}
	answers, ok := values[label]
	if !ok || len(answers) == 0 {
		return ""
	}
	return answers[0]
}
