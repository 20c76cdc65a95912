package services

import (
	"strings"

	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/utils"
)

// RosterIndex is a lookup view of the roster built in table order, so that
// "first matching row wins" holds for every key.
type RosterIndex struct {
	byMessagingID  map[string]*models.RosterRecord
	byRosterNumber map[string]*models.RosterRecord
	byDisplayName  map[string]*models.RosterRecord
}

// NewRosterIndex indexes records in the given order. Every key points at the
// first row carrying it, linked or not; a later duplicate is never reachable.
func NewRosterIndex(records []*models.RosterRecord) *RosterIndex {
	idx := &RosterIndex{
		byMessagingID:  make(map[string]*models.RosterRecord, len(records)),
		byRosterNumber: make(map[string]*models.RosterRecord, len(records)),
		byDisplayName:  make(map[string]*models.RosterRecord, len(records)),
	}
	for _, rec := range records {
		if rec.IsLinked() {
			addFirst(idx.byMessagingID, *rec.MessagingID, rec)
		}
		addFirst(idx.byRosterNumber, utils.NormalizeRosterNumber(rec.RosterNumber), rec)
		if !isBlank(rec.DisplayName) {
			addFirst(idx.byDisplayName, rec.DisplayName, rec)
		}
	}
	return idx
}

func addFirst(m map[string]*models.RosterRecord, key string, rec *models.RosterRecord) {
	if key == "" {
		return
	}
	if _, seen := m[key]; !seen {
		m[key] = rec
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Matcher is one tier of the fallback chain. Match is pure: it never writes.
// A linking tier may return a row that already belongs to another identity;
// the reconciler treats that as a miss of the tier.
type Matcher struct {
	Tier models.MatchTier
	// Links reports whether a hit must be persisted as a new identity link.
	Links bool
	Match func(idx *RosterIndex, sub models.Submission) *models.RosterRecord
}

func matchByIdentity(idx *RosterIndex, sub models.Submission) *models.RosterRecord {
	return idx.byMessagingID[sub.MessagingID]
}

func matchByRosterNumber(idx *RosterIndex, sub models.Submission) *models.RosterRecord {
	key := utils.NormalizeRosterNumber(sub.DeclaredRosterNumber)
	if key == "" {
		return nil
	}
	return idx.byRosterNumber[key]
}

// matchByDisplayName compares names exactly, surrounding spaces included.
func matchByDisplayName(idx *RosterIndex, sub models.Submission) *models.RosterRecord {
	if isBlank(sub.DisplayName) {
		return nil
	}
	return idx.byDisplayName[sub.DisplayName]
}

var (
	IdentityMatcher     = Matcher{Tier: models.TierIdentity, Match: matchByIdentity}
	RosterNumberMatcher = Matcher{Tier: models.TierRosterNumber, Links: true, Match: matchByRosterNumber}
	DisplayNameMatcher  = Matcher{Tier: models.TierDisplayName, Links: true, Match: matchByDisplayName}
)

// DefaultMatchers is the tier order: identity, roster number, display name.
func DefaultMatchers() []Matcher {
	return []Matcher{IdentityMatcher, RosterNumberMatcher, DisplayNameMatcher}
}
