package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wganko/liff-for-auto-responce/models"
)

var ErrFormConfigNotFound = errors.New("form config not found")

type FormConfigRepository interface {
	// GetByFormID returns the active config row for a form.
	GetByFormID(ctx context.Context, formID string) (*models.FormConfig, error)
	Upsert(ctx context.Context, fc *models.FormConfig) error
}

type sqlFormConfigRepository struct {
	db SQLExecutor
}

func NewSQLFormConfigRepository(db SQLExecutor) FormConfigRepository {
	return &sqlFormConfigRepository{db: db}
}

func (r *sqlFormConfigRepository) GetByFormID(ctx context.Context, formID string) (*models.FormConfig, error) {
	query := `
		SELECT form_id, title, event_date, event_time, location, location_url, description,
		       question_label, option1, option2, response_table, active
		FROM form_configs
		WHERE form_id = $1 AND active = $2`

	var fc models.FormConfig
	err := r.db.QueryRowContext(ctx, query, formID, true).Scan(
		&fc.FormID,
		&fc.Title,
		&fc.Date,
		&fc.Time,
		&fc.Location,
		&fc.LocationURL,
		&fc.Description,
		&fc.QuestionLabel,
		&fc.Option1,
		&fc.Option2,
		&fc.ResponseTableName,
		&fc.Active,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFormConfigNotFound
		}
		return nil, fmt.Errorf("failed to get form config %s: %w", formID, err)
	}
	return &fc, nil
}

func (r *sqlFormConfigRepository) Upsert(ctx context.Context, fc *models.FormConfig) error {
	query := `
		INSERT INTO form_configs (form_id, title, event_date, event_time, location, location_url,
		                          description, question_label, option1, option2, response_table, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (form_id) DO UPDATE SET
			title = excluded.title,
			event_date = excluded.event_date,
			event_time = excluded.event_time,
			location = excluded.location,
			location_url = excluded.location_url,
			description = excluded.description,
			question_label = excluded.question_label,
			option1 = excluded.option1,
			option2 = excluded.option2,
			response_table = excluded.response_table,
			active = excluded.active`

	_, err := r.db.ExecContext(ctx, query,
		fc.FormID, fc.Title, fc.Date, fc.Time, fc.Location, fc.LocationURL,
		fc.Description, fc.QuestionLabel, fc.Option1, fc.Option2, fc.ResponseTableName, fc.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert form config %s: %w", fc.FormID, err)
	}
	return nil
}
