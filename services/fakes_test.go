package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/wganko/liff-for-auto-responce/feed"
	"github.com/wganko/liff-for-auto-responce/messaging"
	"github.com/wganko/liff-for-auto-responce/models"
	"github.com/wganko/liff-for-auto-responce/repositories"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }

// fakeRoster is an in-memory RosterRepository that counts writes.
type fakeRoster struct {
	mu      sync.Mutex
	records []*models.RosterRecord
	writes  int

	listErr error
	linkErr error
	// beforeLink runs inside LinkMessagingID, before the guard is checked.
	beforeLink func(f *fakeRoster)
}

func newFakeRoster(records ...*models.RosterRecord) *fakeRoster {
	for i, rec := range records {
		if rec.ID == 0 {
			rec.ID = int64(i + 1)
		}
	}
	return &fakeRoster{records: records}
}

func (f *fakeRoster) ListOrdered(ctx context.Context) ([]*models.RosterRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.RosterRecord, 0, len(f.records))
	for _, rec := range f.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRoster) LinkMessagingID(ctx context.Context, id int64, messagingID string, linkedAt time.Time) error {
	if f.beforeLink != nil {
		hook := f.beforeLink
		f.beforeLink = nil
		hook(f)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.linkErr != nil {
		return f.linkErr
	}
	for _, rec := range f.records {
		if rec.MessagingID != nil && *rec.MessagingID == messagingID && rec.ID != id {
			return repositories.ErrMessagingIDConflict
		}
	}
	for _, rec := range f.records {
		if rec.ID != id {
			continue
		}
		if rec.IsLinked() {
			return repositories.ErrRosterRecordAlreadyLinked
		}
		rec.MessagingID = strPtr(messagingID)
		at := linkedAt
		rec.LinkedAt = &at
		f.writes++
		return nil
	}
	return repositories.ErrRosterRecordNotFound
}

func (f *fakeRoster) Create(ctx context.Context, rec *models.RosterRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeRoster) get(id int64) *models.RosterRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID == id {
			cp := *rec
			return &cp
		}
	}
	return nil
}

// fakePusher records pushes and fails when err is set.
type fakePusher struct {
	mu    sync.Mutex
	err   error
	sent  []pushed
	calls int
}

type pushed struct {
	to   string
	text string
}

func (p *fakePusher) Push(ctx context.Context, to string, messages ...messaging.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return p.err
	}
	for _, m := range messages {
		p.sent = append(p.sent, pushed{to: to, text: m.Text})
	}
	return nil
}

type fakeFormConfigRepo struct {
	mu      sync.Mutex
	configs map[string]*models.FormConfig
	err     error
	gets    int
	ctxErr  error
}

func (f *fakeFormConfigRepo) GetByFormID(ctx context.Context, formID string) (*models.FormConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	f.ctxErr = ctx.Err()
	if f.err != nil {
		return nil, f.err
	}
	fc, ok := f.configs[formID]
	if !ok || !fc.Active {
		return nil, repositories.ErrFormConfigNotFound
	}
	cp := *fc
	return &cp, nil
}

func (f *fakeFormConfigRepo) Upsert(ctx context.Context, fc *models.FormConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.configs == nil {
		f.configs = make(map[string]*models.FormConfig)
	}
	cp := *fc
	f.configs[fc.FormID] = &cp
	return nil
}

type fakeResponses struct {
	mu        sync.Mutex
	rows      []*models.ResponseRecord
	appendErr error
	updateErr error
}

func (f *fakeResponses) Append(ctx context.Context, rec *models.ResponseRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return f.appendErr
	}
	cp := *rec
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeResponses) UpdateRosterNumber(ctx context.Context, table, id, rosterNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for _, row := range f.rows {
		if row.Table == table && row.ID == id {
			row.RosterNumber = rosterNumber
			return nil
		}
	}
	return repositories.ErrResponseNotFound
}

func (f *fakeResponses) ListByTable(ctx context.Context, table string) ([]*models.ResponseRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ResponseRecord
	for _, row := range f.rows {
		if row.Table == table {
			cp := *row
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []feed.AttendanceRecorded
}

func (p *fakePublisher) PublishAttendance(formKey string, event feed.AttendanceRecorded) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type fakeArchiver struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (a *fakeArchiver) Archive(ctx context.Context, key string, payload []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keys = append(a.keys, key)
	return a.err
}
