package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/repositories"
)

// Reconciler resolves a messaging identity to a roster row, linking the two
// on first contact.
type Reconciler struct {
	roster   repositories.RosterRepository
	matchers []Matcher
	now      func() time.Time
	logger   *slog.Logger
}

func NewReconciler(roster repositories.RosterRepository, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		roster:   roster,
		matchers: DefaultMatchers(),
		now:      time.Now,
		logger:   logger,
	}
}

// Resolve runs the matchers in order and stops at the first hit. Only a hit
// of a linking tier writes, and at most once per call. A miss yields the
// unregistered result; a storage failure yields ErrStorageUnavailable and no
// result.
func (r *Reconciler) Resolve(ctx context.Context, messagingID, declaredRosterNumber, displayName string) (models.ReconciliationResult, error) {
	return r.ResolveSubmission(ctx, models.Submission{
		MessagingID:          messagingID,
		DeclaredRosterNumber: declaredRosterNumber,
		DisplayName:          displayName,
	})
}

func (r *Reconciler) ResolveSubmission(ctx context.Context, sub models.Submission) (models.ReconciliationResult, error) {
	if sub.MessagingID == "" {
		return models.ReconciliationResult{}, ErrMissingIdentity
	}

	idx, err := r.loadIndex(ctx)
	if err != nil {
		return models.ReconciliationResult{}, err
	}

	for _, m := range r.matchers {
		rec := m.Match(idx, sub)
		if rec == nil {
			continue
		}
		if !m.Links {
			return models.Resolved(rec, sub.MessagingID, m.Tier, false), nil
		}
		if rec.IsLinked() {
			// The first row for this key belongs to another identity; later
			// duplicates stay unreachable, so the tier counts as a miss.
			r.logger.Warn("matched roster record is linked to another identity",
				slog.String("messaging_id", sub.MessagingID),
				slog.Int64("roster_record_id", rec.ID),
				slog.String("tier", string(m.Tier)),
			)
			continue
		}
		return r.link(ctx, rec, sub, m.Tier)
	}

	r.logger.Info("no roster record matched submission",
		slog.String("messaging_id", sub.MessagingID),
		slog.String("declared_roster_number", sub.DeclaredRosterNumber),
		slog.String("display_name", sub.DisplayName),
	)
	return models.Unregistered(sub.MessagingID), nil
}

func (r *Reconciler) link(ctx context.Context, rec *models.RosterRecord, sub models.Submission, tier models.MatchTier) (models.ReconciliationResult, error) {
	err := r.roster.LinkMessagingID(ctx, rec.ID, sub.MessagingID, r.now())
	switch {
	case err == nil:
		r.logger.Info("linked messaging identity to roster record",
			slog.String("messaging_id", sub.MessagingID),
			slog.Int64("roster_record_id", rec.ID),
			slog.String("roster_number", rec.RosterNumber),
			slog.String("tier", string(tier)),
		)
		return models.Resolved(rec, sub.MessagingID, tier, true), nil

	case errors.Is(err, repositories.ErrRosterRecordAlreadyLinked),
		errors.Is(err, repositories.ErrMessagingIDConflict),
		errors.Is(err, repositories.ErrRosterRecordNotFound):
		// Someone else wrote first. If it was this identity, the identity tier now answers.
		r.logger.Warn("roster link lost a race, retrying identity lookup",
			slog.String("messaging_id", sub.MessagingID),
			slog.Int64("roster_record_id", rec.ID),
			slog.Any("error", err),
		)
		idx, loadErr := r.loadIndex(ctx)
		if loadErr != nil {
			return models.ReconciliationResult{}, loadErr
		}
		if linked := IdentityMatcher.Match(idx, sub); linked != nil {
			return models.Resolved(linked, sub.MessagingID, models.TierIdentity, false), nil
		}
		return models.ReconciliationResult{}, fmt.Errorf("%w: roster record %d: %w", ErrLinkConflict, rec.ID, err)

	default:
		return models.ReconciliationResult{}, fmt.Errorf("%w: link roster record %d: %w", ErrStorageUnavailable, rec.ID, err)
	}
}

func (r *Reconciler) loadIndex(ctx context.Context) (*RosterIndex, error) {
	records, err := r.roster.ListOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read roster: %w", ErrStorageUnavailable, err)
	}
	return NewRosterIndex(records), nil
}
