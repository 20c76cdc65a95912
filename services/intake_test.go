package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/models"
)

var testColumns = config.ColumnLabels{
	UserID:       "userId",
	Name:         "名前",
	RosterNumber: "竹号",
	Status:       "出欠",
}

func TestFromFormEvent(t *testing.T) {
	at := time.Date(2025, 4, 12, 10, 0, 0, 0, time.UTC)
	ev := models.FormEvent{
		Source: "form_responses_1",
		RowID:  "r-42",
		NamedValues: map[string][]string{
			"userId": {" U1 "},
			"名前":     {"Taro"},
			"竹号":     {"7"},
			"出欠":     {"出席"},
			"memo":   {"ignored"},
		},
	}

	sub, err := FromFormEvent(ev, "1", testColumns, at)
	require.NoError(t, err)

	assert.Equal(t, "1", sub.FormKey)
	assert.Equal(t, models.SourceFormEvent, sub.Source)
	assert.Equal(t, "U1", sub.MessagingID)
	assert.Equal(t, "Taro", sub.DisplayName)
	assert.Equal(t, "7", sub.DeclaredRosterNumber)
	assert.Equal(t, "出席", sub.Status)
	assert.Equal(t, at, sub.ReceivedAt)
	require.NotNil(t, sub.Row)
	assert.Equal(t, models.ResponseRowRef{Table: "form_responses_1", RowID: "r-42"}, *sub.Row)
}

func TestFromFormEvent_OptionalColumns(t *testing.T) {
	ev := models.FormEvent{
		Source:      "form_responses_1",
		NamedValues: map[string][]string{"userId": {"U1"}, "竹号": {}},
	}

	sub, err := FromFormEvent(ev, "1", config.ColumnLabels{UserID: "userId", RosterNumber: "竹号"}, time.Now())
	require.NoError(t, err)

	assert.Empty(t, sub.DisplayName)
	assert.Empty(t, sub.DeclaredRosterNumber)
	assert.Equal(t, models.AttendanceUnanswered, sub.Status)
	assert.Nil(t, sub.Row)
}

func TestFromFormEvent_MissingIdentity(t *testing.T) {
	ev := models.FormEvent{NamedValues: map[string][]string{"名前": {"Taro"}}}

	_, err := FromFormEvent(ev, "1", testColumns, time.Now())
	assert.ErrorIs(t, err, ErrMissingIdentity)
}

func TestFromClientSubmission(t *testing.T) {
	tests := []struct {
		name    string
		in      models.ClientSubmission
		wantKey string
		wantSt  string
		wantErr error
	}{
		{
			name:    "explicit form key",
			in:      models.ClientSubmission{UserID: "U1", UserName: "Taro", Attendance: "欠席", FormKey: "2"},
			wantKey: "2",
			wantSt:  "欠席",
		},
		{
			name:    "default form key and status",
			in:      models.ClientSubmission{UserID: "U1", UserName: "Taro"},
			wantKey: "1",
			wantSt:  models.AttendanceUnanswered,
		},
		{
			name:    "missing user id",
			in:      models.ClientSubmission{UserName: "Taro", Attendance: "出席"},
			wantKey: "1",
			wantSt:  "出席",
			wantErr: ErrMissingIdentity,
		},
		{
			name:    "other action",
			in:      models.ClientSubmission{Action: "getFormConfig", UserID: "U1"},
			wantKey: "1",
			wantSt:  models.AttendanceUnanswered,
			wantErr: ErrInvalidSubmission,
		},
		{
			name:    "oversized name",
			in:      models.ClientSubmission{UserID: "U1", UserName: strings.Repeat("名", maxFieldLength+1)},
			wantKey: "1",
			wantSt:  models.AttendanceUnanswered,
			wantErr: ErrInvalidSubmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := FromClientSubmission(tt.in, "1", time.Now())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, models.SourceClient, sub.Source)
			assert.Equal(t, tt.wantKey, sub.FormKey)
			assert.Equal(t, tt.wantSt, sub.Status)
		})
	}
}

func TestIntake_DisplayNameKeptVerbatim(t *testing.T) {
	ev := models.FormEvent{
		Source:      "form_responses_1",
		NamedValues: map[string][]string{"userId": {"U1"}, "名前": {" Taro "}},
	}
	fromForm, err := FromFormEvent(ev, "1", testColumns, time.Now())
	require.NoError(t, err)
	assert.Equal(t, " Taro ", fromForm.DisplayName)

	fromClient, err := FromClientSubmission(models.ClientSubmission{UserID: "U1", UserName: " Taro "}, "1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, " Taro ", fromClient.DisplayName)
}
