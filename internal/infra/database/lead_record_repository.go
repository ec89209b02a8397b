package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/lead-intake/internal/entity"
)

const leadRecordsSchema = `
	CREATE TABLE IF NOT EXISTS lead_records (
		id         BIGSERIAL PRIMARY KEY,
		lead_id    INTEGER NOT NULL,
		name       TEXT NOT NULL DEFAULT '',
		age        TEXT,
		country    TEXT,
		interest   TEXT,
		status     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// LeadRecordRepository mirrors the lead log into Postgres. Rows are
// append-only, same as the CSV file.
type LeadRecordRepository struct {
	DB *sql.DB
}

func NewLeadRecordRepository(db *sql.DB) *LeadRecordRepository {
	return &LeadRecordRepository{DB: db}
}

func (r *LeadRecordRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, leadRecordsSchema); err != nil {
		return fmt.Errorf("lead_records: create table: %w", err)
	}
	return nil
}

func (r *LeadRecordRepository) Save(ctx context.Context, record *entity.LeadRecord) error {
	query := `
		INSERT INTO lead_records (lead_id, name, age, country, interest, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		record.LeadID,
		record.Name,
		nullString(record.Age),
		nullString(record.Country),
		nullString(record.Interest),
		string(record.Status),
	)
	if err != nil {
		return fmt.Errorf("lead_records: insert lead %d: %w", record.LeadID, err)
	}
	return nil
}

func (r *LeadRecordRepository) CountByStatus(ctx context.Context, status entity.Status) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lead_records WHERE status = $1`, string(status),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("lead_records: count %s: %w", status, err)
	}
	return count, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
