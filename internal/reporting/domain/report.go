package reporting

import (
	"context"
	"time"
)

// MonthlyReportUpload is the stored record for one analyzed month.
// Identity: (tenant, year, month); re-uploading a month overwrites it.
type MonthlyReportUpload struct {
	TenantID      string
	Year          int
	Month         int
	FileName      string
	FilePath      string
	UploadedBy    string
	TotalRevenue  float64
	NetProfit     float64
	TotalNights   float64
	TotalBookings float64
	RoomCount     int
	OccupancyRate float64
	ADR           float64
	RevPAR        float64
	Currency      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository persists monthly report uploads.
type Repository interface {
	Upsert(ctx context.Context, report *MonthlyReportUpload) error
	Find(ctx context.Context, tenantID string, year, month int) (*MonthlyReportUpload, error)
	List(ctx context.Context, tenantID string) ([]MonthlyReportUpload, error)
}
