package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wganko/liff-for-auto-responce/models"
)

func TestRosterIndex_FirstRowWins(t *testing.T) {
	idx := NewRosterIndex([]*models.RosterRecord{
		{ID: 1, RosterNumber: "12", DisplayName: "Taro"},
		{ID: 2, RosterNumber: "12", DisplayName: "Taro"},
		{ID: 3, RosterNumber: "13", DisplayName: "Hanako"},
	})

	byNumber := RosterNumberMatcher.Match(idx, models.Submission{DeclaredRosterNumber: "12"})
	require.NotNil(t, byNumber)
	assert.Equal(t, int64(1), byNumber.ID)

	byName := DisplayNameMatcher.Match(idx, models.Submission{DisplayName: "Taro"})
	require.NotNil(t, byName)
	assert.Equal(t, int64(1), byName.ID)
}

func TestRosterIndex_LinkedRowShadowsLaterDuplicates(t *testing.T) {
	idx := NewRosterIndex([]*models.RosterRecord{
		{ID: 1, RosterNumber: "5", DisplayName: "Jiro", MessagingID: strPtr("U1")},
		{ID: 2, RosterNumber: "5", DisplayName: "Jiro"},
	})

	assert.Equal(t, int64(1), IdentityMatcher.Match(idx, models.Submission{MessagingID: "U1"}).ID)
	assert.Equal(t, int64(1), RosterNumberMatcher.Match(idx, models.Submission{DeclaredRosterNumber: "5"}).ID)
	assert.Equal(t, int64(1), DisplayNameMatcher.Match(idx, models.Submission{DisplayName: "Jiro"}).ID)
}

func TestMatchers(t *testing.T) {
	idx := NewRosterIndex([]*models.RosterRecord{
		{ID: 1, RosterNumber: "7", DisplayName: "Taro"},
		{ID: 2, RosterNumber: "８", DisplayName: " Hanako "},
		{ID: 3, RosterNumber: "9", DisplayName: "Ken", MessagingID: strPtr("U3")},
	})

	tests := []struct {
		name    string
		matcher Matcher
		sub     models.Submission
		wantID  int64
	}{
		{"identity hit", IdentityMatcher, models.Submission{MessagingID: "U3"}, 3},
		{"identity miss", IdentityMatcher, models.Submission{MessagingID: "U4"}, 0},
		{"roster number exact", RosterNumberMatcher, models.Submission{DeclaredRosterNumber: "7"}, 1},
		{"roster number numeric text", RosterNumberMatcher, models.Submission{DeclaredRosterNumber: "7.0"}, 1},
		{"roster number full width", RosterNumberMatcher, models.Submission{DeclaredRosterNumber: "8"}, 2},
		{"roster number blank", RosterNumberMatcher, models.Submission{DeclaredRosterNumber: "  "}, 0},
		{"roster number leading zero differs", RosterNumberMatcher, models.Submission{DeclaredRosterNumber: "07"}, 0},
		{"display name exact with spaces", DisplayNameMatcher, models.Submission{DisplayName: " Hanako "}, 2},
		{"display name trimmed differs", DisplayNameMatcher, models.Submission{DisplayName: "Hanako"}, 0},
		{"display name whitespace only", DisplayNameMatcher, models.Submission{DisplayName: "   "}, 0},
		{"display name blank", DisplayNameMatcher, models.Submission{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.matcher.Match(idx, tt.sub)
			if tt.wantID == 0 {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestDefaultMatchers_Order(t *testing.T) {
	ms := DefaultMatchers()
	require.Len(t, ms, 3)
	assert.Equal(t, models.TierIdentity, ms[0].Tier)
	assert.False(t, ms[0].Links)
	assert.Equal(t, models.TierRosterNumber, ms[1].Tier)
	assert.True(t, ms[1].Links)
	assert.Equal(t, models.TierDisplayName, ms[2].Tier)
	assert.True(t, ms[2].Links)
}
