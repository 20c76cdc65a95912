package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wganko/liff-for-auto-responce/models"
)

var (
	ErrRosterRecordNotFound = errors.New("roster record not found")
	// ErrRosterRecordAlreadyLinked is returned when the row got a messaging
	// identity between the read and the link write.
	ErrRosterRecordAlreadyLinked = errors.New("roster record is already linked")
	ErrMessagingIDConflict       = errors.New("messaging id is already linked to another roster record")
)

type RosterRepository interface {
	// ListOrdered returns every roster row in table order.
	ListOrdered(ctx context.Context) ([]*models.RosterRecord, error)
	// LinkMessagingID attaches a messaging identity to an unlinked row.
	LinkMessagingID(ctx context.Context, id int64, messagingID string, linkedAt time.Time) error
	Create(ctx context.Context, rec *models.RosterRecord) error
}

type sqlRosterRepository struct {
	db SQLExecutor
}

func NewSQLRosterRepository(db SQLExecutor) RosterRepository {
	return &sqlRosterRepository{db: db}
}

func (r *sqlRosterRepository) ListOrdered(ctx context.Context) ([]*models.RosterRecord, error) {
	query := `SELECT id, messaging_id, roster_number, display_name, linked_at, created_at
			  FROM roster_records ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster records: %w", err)
	}
	defer rows.Close()

	records := make([]*models.RosterRecord, 0)
	for rows.Next() {
		rec, err := scanRosterRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating roster rows: %w", err)
	}
	return records, nil
}

func (r *sqlRosterRepository) LinkMessagingID(ctx context.Context, id int64, messagingID string, linkedAt time.Time) error {
	query := `UPDATE roster_records SET messaging_id = $1, linked_at = $2
			  WHERE id = $3 AND (messaging_id IS NULL OR messaging_id = '')`
	result, err := r.db.ExecContext(ctx, query, messagingID, linkedAt.UTC(), id)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMessagingIDConflict
		}
		return fmt.Errorf("failed to link roster record %d: %w", id, err)
	}
	if err := checkAffectedRows(result, ErrRosterRecordAlreadyLinked); err != nil {
		if !errors.Is(err, ErrRosterRecordAlreadyLinked) {
			return err
		}
		var exists int
		lookup := `SELECT 1 FROM roster_records WHERE id = $1`
		if scanErr := r.db.QueryRowContext(ctx, lookup, id).Scan(&exists); scanErr != nil {
			if errors.Is(scanErr, sql.ErrNoRows) {
				return ErrRosterRecordNotFound
			}
			return fmt.Errorf("failed to check roster record %d: %w", id, scanErr)
		}
		return err
	}
	return nil
}

func (r *sqlRosterRepository) Create(ctx context.Context, rec *models.RosterRecord) error {
	query := `
		INSERT INTO roster_records (messaging_id, roster_number, display_name, linked_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	var linkedAt sql.NullTime
	if rec.LinkedAt != nil {
		linkedAt = sql.NullTime{Time: rec.LinkedAt.UTC(), Valid: true}
	}
	err := r.db.QueryRowContext(ctx, query,
		rec.MessagingID,
		rec.RosterNumber,
		rec.DisplayName,
		linkedAt,
		rec.CreatedAt,
	).Scan(&rec.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrMessagingIDConflict
		}
		return fmt.Errorf("failed to create roster record: %w", err)
	}
	return nil
}

func scanRosterRecord(rowScanner interface {
	Scan(dest ...interface{}) error
}) (*models.RosterRecord, error) {
	var (
		rec         models.RosterRecord
		messagingID sql.NullString
		linkedAt    sql.NullTime
	)
	err := rowScanner.Scan(&rec.ID, &messagingID, &rec.RosterNumber, &rec.DisplayName, &linkedAt, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan roster record: %w", err)
	}
	if messagingID.Valid && messagingID.String != "" {
		rec.MessagingID = &messagingID.String
	}
	if linkedAt.Valid {
		rec.LinkedAt = &linkedAt.Time
	}
	return &rec, nil
}
