package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wganko/liff-for-auto-responce/models"
)

func TestResponseRepository(t *testing.T) {
	repo := NewSQLResponseRepository(newTestDB(t))
	ctx := context.Background()
	at := time.Date(2025, 4, 12, 9, 30, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &models.ResponseRecord{
		ID: "a", Table: "form_responses_1", SubmittedAt: at,
		RosterNumber: models.RosterNumberUnregistered, DisplayName: "Taro", Attendance: "出席", MessagingID: "U1",
	}))
	require.NoError(t, repo.Append(ctx, &models.ResponseRecord{
		ID: "b", Table: "form_responses_1", SubmittedAt: at.Add(time.Minute),
		RosterNumber: "8", DisplayName: "Jiro", Attendance: "欠席", MessagingID: "U2",
	}))
	require.NoError(t, repo.Append(ctx, &models.ResponseRecord{
		ID: "c", Table: "form_responses_2", SubmittedAt: at, MessagingID: "U3",
	}))

	require.NoError(t, repo.UpdateRosterNumber(ctx, "form_responses_1", "a", "7"))

	rows, err := repo.ListByTable(ctx, "form_responses_1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "7", rows[0].RosterNumber)
	assert.True(t, at.Equal(rows[0].SubmittedAt))
	assert.Equal(t, "b", rows[1].ID)

	t.Run("row of another table", func(t *testing.T) {
		err := repo.UpdateRosterNumber(ctx, "form_responses_2", "a", "9")
		assert.ErrorIs(t, err, ErrResponseNotFound)
	})
}
