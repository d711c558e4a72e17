package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zant/accident-backend/internal/entity"
)

// EWYPReportRepository defines the interface for accident notification persistence
type EWYPReportRepository interface {
	Create(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error)
	Update(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error)
	GetByID(ctx context.Context, id string) (*entity.EWYPReport, error)
	List(ctx context.Context) ([]entity.EWYPReport, error)
	Delete(ctx context.Context, id string) error
}

var _ EWYPReportRepository = &EWYPPostgres{}

// EWYPPostgres implements EWYPReportRepository using PostgreSQL. The form
// body is one JSONB document; id, status and timestamps are lifted into
// columns for filtering.
type EWYPPostgres struct {
	db *pgxpool.Pool
}

func NewEWYPPostgres(db *pgxpool.Pool) *EWYPPostgres {
	return &EWYPPostgres{db: db}
}

func (r *EWYPPostgres) Create(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	query := `
		INSERT INTO ewyp_reports (id, status, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`

	report.CreatedAt = time.Now().UTC()
	report.UpdatedAt = report.CreatedAt

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	if _, err := r.db.Exec(ctx, query, report.ID, string(report.Status), body, report.CreatedAt, report.UpdatedAt); err != nil {
		return nil, fmt.Errorf("create report %s: %w", report.ID, err)
	}

	return report, nil
}

func (r *EWYPPostgres) Update(ctx context.Context, report *entity.EWYPReport) (*entity.EWYPReport, error) {
	query := `
		UPDATE ewyp_reports
		SET status = $2, body = $3, updated_at = $4
		WHERE id = $1`

	report.UpdatedAt = time.Now().UTC()

	body, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, report.ID, string(report.Status), body, report.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update report %s: %w", report.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, entity.ErrReportNotFound
	}

	return report, nil
}

func (r *EWYPPostgres) GetByID(ctx context.Context, id string) (*entity.EWYPReport, error) {
	query := `
		SELECT body, status, created_at, updated_at
		FROM ewyp_reports
		WHERE id = $1`

	var (
		body                 []byte
		status               string
		createdAt, updatedAt time.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&body, &status, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrReportNotFound
		}
		return nil, fmt.Errorf("get report %s: %w", id, err)
	}

	var report entity.EWYPReport
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", id, err)
	}

	report.ID = id
	report.Status = entity.ReportStatus(status)
	report.CreatedAt = createdAt
	report.UpdatedAt = updatedAt
	return &report, nil
}

func (r *EWYPPostgres) List(ctx context.Context) ([]entity.EWYPReport, error) {
	query := `
		SELECT body, status, created_at, updated_at
		FROM ewyp_reports
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := []entity.EWYPReport{}
	for rows.Next() {
		var (
			body                 []byte
			status               string
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&body, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}

		var report entity.EWYPReport
		if err := json.Unmarshal(body, &report); err != nil {
			return nil, fmt.Errorf("decode report row: %w", err)
		}
		report.Status = entity.ReportStatus(status)
		report.CreatedAt = createdAt
		report.UpdatedAt = updatedAt
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}

	return reports, nil
}

func (r *EWYPPostgres) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ewyp_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete report %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrReportNotFound
	}
	return nil
}
