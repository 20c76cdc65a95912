package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/wganko/liff-for-auto-responce/models"
)

var ErrResponseNotFound = errors.New("response row not found")

type ResponseRepository interface {
	Append(ctx context.Context, rec *models.ResponseRecord) error
	// UpdateRosterNumber writes the resolved roster number onto an existing
	// response row.
	UpdateRosterNumber(ctx context.Context, table, id, rosterNumber string) error
	ListByTable(ctx context.Context, table string) ([]*models.ResponseRecord, error)
}

type sqlResponseRepository struct {
	db SQLExecutor
}

func NewSQLResponseRepository(db SQLExecutor) ResponseRepository {
	return &sqlResponseRepository{db: db}
}

func (r *sqlResponseRepository) Append(ctx context.Context, rec *models.ResponseRecord) error {
	query := `
		INSERT INTO form_responses (id, response_table, submitted_at, roster_number, display_name, attendance, messaging_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Table,
		rec.SubmittedAt.UTC(),
		rec.RosterNumber,
		rec.DisplayName,
		rec.Attendance,
		rec.MessagingID,
	)
	if err != nil {
		return fmt.Errorf("failed to append response to %s: %w", rec.Table, err)
	}
	return nil
}

func (r *sqlResponseRepository) UpdateRosterNumber(ctx context.Context, table, id, rosterNumber string) error {
	query := `UPDATE form_responses SET roster_number = $1 WHERE id = $2 AND response_table = $3`
	result, err := r.db.ExecContext(ctx, query, rosterNumber, id, table)
	if err != nil {
		return fmt.Errorf("failed to update response %s in %s: %w", id, table, err)
	}
	return checkAffectedRows(result, ErrResponseNotFound)
}

func (r *sqlResponseRepository) ListByTable(ctx context.Context, table string) ([]*models.ResponseRecord, error) {
	query := `
		SELECT id, response_table, submitted_at, roster_number, display_name, attendance, messaging_id
		FROM form_responses
		WHERE response_table = $1
		ORDER BY submitted_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses of %s: %w", table, err)
	}
	defer rows.Close()

	records := make([]*models.ResponseRecord, 0)
	for rows.Next() {
		var rec models.ResponseRecord
		if err := rows.Scan(&rec.ID, &rec.Table, &rec.SubmittedAt, &rec.RosterNumber, &rec.DisplayName, &rec.Attendance, &rec.MessagingID); err != nil {
			return nil, fmt.Errorf("failed to scan response row: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}
