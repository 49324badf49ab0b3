package postgres

import (
	"context"
	"database/sql"
	"errors"

	reporting "hotel-reports/internal/reporting/domain"
)

// ReportRepository persists monthly report uploads.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository constructs a repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Upsert inserts or overwrites the record for (tenant, year, month).
func (r *ReportRepository) Upsert(ctx context.Context, report *reporting.MonthlyReportUpload) error {
	if r == nil || r.db == nil {
		return errors.New("report repo: nil db")
	}
	if report == nil {
		return reporting.ErrNilReport
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO monthly_report_uploads (
	tenant_id, year, month, file_name, file_path, uploaded_by,
	total_revenue, net_profit, total_nights, total_bookings, room_count,
	occupancy_rate, adr, revpar, currency, created_at, updated_at
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17
)
ON CONFLICT (tenant_id, year, month) DO UPDATE SET
	file_name = EXCLUDED.file_name,
	file_path = EXCLUDED.file_path,
	uploaded_by = EXCLUDED.uploaded_by,
	total_revenue = EXCLUDED.total_revenue,
	net_profit = EXCLUDED.net_profit,
	total_nights = EXCLUDED.total_nights,
	total_bookings = EXCLUDED.total_bookings,
	room_count = EXCLUDED.room_count,
	occupancy_rate = EXCLUDED.occupancy_rate,
	adr = EXCLUDED.adr,
	revpar = EXCLUDED.revpar,
	currency = EXCLUDED.currency,
	updated_at = EXCLUDED.updated_at`,
		report.TenantID, report.Year, report.Month, report.FileName, report.FilePath, report.UploadedBy,
		report.TotalRevenue, report.NetProfit, report.TotalNights, report.TotalBookings, report.RoomCount,
		report.OccupancyRate, report.ADR, report.RevPAR, report.Currency, report.CreatedAt, report.UpdatedAt,
	)
	return err
}

// Find returns the record for a month, nil when absent.
func (r *ReportRepository) Find(ctx context.Context, tenantID string, year, month int) (*reporting.MonthlyReportUpload, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("report repo: nil db")
	}
	row := r.db.QueryRowContext(ctx, `
SELECT tenant_id, year, month, file_name, file_path, uploaded_by,
	total_revenue, net_profit, total_nights, total_bookings, room_count,
	occupancy_rate, adr, revpar, currency, created_at, updated_at
FROM monthly_report_uploads
WHERE tenant_id = $1 AND year = $2 AND month = $3
LIMIT 1`, tenantID, year, month)
	return scanReport(row)
}

// List returns all records for a tenant, newest period first.
func (r *ReportRepository) List(ctx context.Context, tenantID string) ([]reporting.MonthlyReportUpload, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("report repo: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT tenant_id, year, month, file_name, file_path, uploaded_by,
	total_revenue, net_profit, total_nights, total_bookings, room_count,
	occupancy_rate, adr, revpar, currency, created_at, updated_at
FROM monthly_report_uploads
WHERE tenant_id = $1
ORDER BY year DESC, month DESC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []reporting.MonthlyReportUpload
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		if report != nil {
			result = append(result, *report)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(row rowScanner) (*reporting.MonthlyReportUpload, error) {
	var report reporting.MonthlyReportUpload
	err := row.Scan(
		&report.TenantID, &report.Year, &report.Month, &report.FileName, &report.FilePath, &report.UploadedBy,
		&report.TotalRevenue, &report.NetProfit, &report.TotalNights, &report.TotalBookings, &report.RoomCount,
		&report.OccupancyRate, &report.ADR, &report.RevPAR, &report.Currency, &report.CreatedAt, &report.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	report.CreatedAt = report.CreatedAt.UTC()
	report.UpdatedAt = report.UpdatedAt.UTC()
	return &report, nil
}
