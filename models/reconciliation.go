package models

// MatchTier names the matcher that resolved a submission.
type MatchTier string

const (
	TierNone         MatchTier = ""
	TierIdentity     MatchTier = "identity"
	TierRosterNumber MatchTier = "roster_number"
	TierDisplayName  MatchTier = "display_name"
)

// ReconciliationResult is either a resolved roster row or the unregistered
// sentinel, in which case RosterNumber holds RosterNumberUnregistered.
type ReconciliationResult struct {
	Registered   bool      `json:"registered"`
	RosterNumber string    `json:"bambooNo"`
	DisplayName  string    `json:"displayName,omitempty"`
	MessagingID  string    `json:"userId"`
	Tier         MatchTier `json:"tier,omitempty"`
	// Linked is true when this call wrote the messaging identity onto the row.
	Linked bool `json:"linked"`
}

func Resolved(rec *RosterRecord, messagingID string, tier MatchTier, linked bool) ReconciliationResult {
	return ReconciliationResult{
		Registered:   true,
		RosterNumber: rec.RosterNumber,
		DisplayName:  rec.DisplayName,
		MessagingID:  messagingID,
		Tier:         tier,
		Linked:       linked,
	}
}

func Unregistered(messagingID string) ReconciliationResult {
	return ReconciliationResult{
		RosterNumber: RosterNumberUnregistered,
		MessagingID:  messagingID,
	}
}
