package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wganko/liff-for-auto-responce/config"
	"github.com/wganko/liff-for-auto-responce/feed"
	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/repositories"
	"github.com/wganko/liff-for-auto-responce/storage"
)

const (
	MessageAccepted             = "出欠を受け付けました"
	MessageAcceptedUnregistered = "出欠を受け付けました（竹号が未登録です）"
)

// SubmissionOutcome is returned to the LIFF client after a submission.
type SubmissionOutcome struct {
	RosterNumber string
	Registered   bool
	Notified     bool
	Message      string
}

// AttendanceService handles both submission shapes end to end.
type AttendanceService struct {
	forms       *config.FormsConfig
	reconciler  *Reconciler
	notifier    *Notifier
	formConfigs *FormConfigService
	responses   repositories.ResponseRepository
	publisher   feed.Publisher
	archiver    storage.SubmissionArchiver
	now         func() time.Time
	logger      *slog.Logger
}

func NewAttendanceService(
	forms *config.FormsConfig,
	reconciler *Reconciler,
	notifier *Notifier,
	formConfigs *FormConfigService,
	responses repositories.ResponseRepository,
	publisher feed.Publisher,
	archiver storage.SubmissionArchiver,
	logger *slog.Logger,
) *AttendanceService {
	if archiver == nil {
		archiver = storage.NewNoopArchiver()
	}
	return &AttendanceService{
		forms:       forms,
		reconciler:  reconciler,
		notifier:    notifier,
		formConfigs: formConfigs,
		responses:   responses,
		publisher:   publisher,
		archiver:    archiver,
		now:         time.Now,
		logger:      logger,
	}
}

// HandleFormEvent processes a form-submit trigger. It is fire-and-forget:
// every failure is logged here, the returned error only reports what happened.
func (s *AttendanceService) HandleFormEvent(ctx context.Context, ev models.FormEvent) error {
	if raw, err := json.Marshal(ev.NamedValues); err == nil {
		s.logger.Debug("form event named values", slog.String("source", ev.Source), slog.String("named_values", string(raw)))
	}

	formKey, settings, ok := s.forms.BySource(ev.Source)
	if !ok {
		s.logger.Warn("no form settings for event source", slog.String("source", ev.Source))
		return fmt.Errorf("%w: source %s", ErrConfigNotFound, ev.Source)
	}

	sub, err := FromFormEvent(ev, formKey, settings.Columns, s.now())
	if err != nil {
		s.logger.Warn("user id not found in form event", slog.String("source", ev.Source), slog.String("form_key", formKey))
		return err
	}
	s.archive(ctx, sub, ev)

	result, err := s.reconciler.ResolveSubmission(ctx, sub)
	if err != nil {
		s.logger.Error("could not reconcile form event", slog.String("messaging_id", sub.MessagingID), slog.Any("error", err))
		return err
	}

	var writeErr error
	if settings.RecordResponses {
		writeErr = s.writeBack(ctx, sub, ev.Source, result)
	}

	s.reply(ctx, sub, result)
	s.publish(sub, result)
	return writeErr
}

// SubmitAttendance processes a LIFF client submission and reports the
// resolved roster number.
func (s *AttendanceService) SubmitAttendance(ctx context.Context, cs models.ClientSubmission) (*SubmissionOutcome, error) {
	sub, err := FromClientSubmission(cs, s.forms.DefaultFormKey, s.now())
	if err != nil {
		s.logger.Warn("client submission rejected", slog.String("form_key", sub.FormKey), slog.Any("error", err))
		return nil, err
	}

	fc, err := s.formConfigs.Get(ctx, sub.FormKey)
	if err != nil {
		return nil, err
	}
	s.archive(ctx, sub, cs)

	result, err := s.reconciler.ResolveSubmission(ctx, sub)
	if err != nil {
		s.logger.Error("could not reconcile client submission", slog.String("messaging_id", sub.MessagingID), slog.Any("error", err))
		return nil, err
	}

	record := &models.ResponseRecord{
		ID:           uuid.NewString(),
		Table:        fc.ResponseTableName,
		SubmittedAt:  sub.ReceivedAt,
		RosterNumber: result.RosterNumber,
		DisplayName:  sub.DisplayName,
		Attendance:   sub.Status,
		MessagingID:  sub.MessagingID,
	}
	if err := s.responses.Append(ctx, record); err != nil {
		s.logger.Error("failed to record response", slog.String("table", record.Table), slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	outcome := &SubmissionOutcome{
		RosterNumber: result.RosterNumber,
		Registered:   result.Registered,
		Message:      MessageAccepted,
	}
	if !result.Registered {
		outcome.Message = MessageAcceptedUnregistered
	}
	outcome.Notified = s.reply(ctx, sub, result)
	s.publish(sub, result)
	return outcome, nil
}

// writeBack stores the resolved roster number on the event's response row,
// or appends a row when the event did not reference one.
func (s *AttendanceService) writeBack(ctx context.Context, sub models.Submission, table string, result models.ReconciliationResult) error {
	if sub.Row != nil {
		err := s.responses.UpdateRosterNumber(ctx, sub.Row.Table, sub.Row.RowID, result.RosterNumber)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrResponseNotFound) {
			s.logger.Error("failed to write roster number back", slog.String("row_id", sub.Row.RowID), slog.Any("error", err))
			return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
		}
		s.logger.Warn("response row not found, appending instead", slog.String("table", sub.Row.Table), slog.String("row_id", sub.Row.RowID))
	}

	record := &models.ResponseRecord{
		ID:           uuid.NewString(),
		Table:        table,
		SubmittedAt:  sub.ReceivedAt,
		RosterNumber: result.RosterNumber,
		DisplayName:  sub.DisplayName,
		Attendance:   sub.Status,
		MessagingID:  sub.MessagingID,
	}
	if err := s.responses.Append(ctx, record); err != nil {
		s.logger.Error("failed to record response", slog.String("table", record.Table), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// reply notifies the participant. Unregistered submissions are answered only
// when a template for them is configured.
func (s *AttendanceService) reply(ctx context.Context, sub models.Submission, result models.ReconciliationResult) bool {
	template := s.forms.ReplyTemplate(sub.FormKey)
	if !result.Registered {
		s.logger.Warn("submission did not match a registered roster number",
			slog.String("messaging_id", sub.MessagingID),
			slog.String("display_name", sub.DisplayName),
		)
		template = s.forms.UnregisteredReplyTemplate
		if template == "" {
			return false
		}
	}
	return s.notifier.Notify(ctx, sub.MessagingID, Compose(template, result.RosterNumber, sub.Status))
}

func (s *AttendanceService) publish(sub models.Submission, result models.ReconciliationResult) {
	if s.publisher == nil {
		return
	}
	s.publisher.PublishAttendance(sub.FormKey, feed.AttendanceRecorded{
		FormKey:      sub.FormKey,
		RosterNumber: result.RosterNumber,
		Registered:   result.Registered,
		DisplayName:  result.DisplayName,
		Attendance:   sub.Status,
		Tier:         result.Tier,
		RecordedAt:   sub.ReceivedAt,
	})
}

func (s *AttendanceService) archive(ctx context.Context, sub models.Submission, raw interface{}) {
	payload, err := json.Marshal(struct {
		Submission models.Submission `json:"submission"`
		Raw        interface{}       `json:"raw"`
	}{sub, raw})
	if err != nil {
		s.logger.Warn("failed to encode submission for archive", slog.Any("error", err))
		return
	}
	key := storage.SubmissionKey(sub.FormKey, string(sub.Source), sub.ReceivedAt)
	if err := s.archiver.Archive(ctx, key, payload); err != nil {
		s.logger.Warn("failed to archive submission", slog.String("key", key), slog.Any("error", err))
	}
}
