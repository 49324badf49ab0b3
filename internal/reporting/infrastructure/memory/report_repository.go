package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	reporting "hotel-reports/internal/reporting/domain"
)

// ReportRepository is an in-memory repository for monthly report uploads.
type ReportRepository struct {
	mu   sync.RWMutex
	data map[string]*reporting.MonthlyReportUpload
}

// NewReportRepository constructs a repository.
func NewReportRepository() *ReportRepository {
	return &ReportRepository{data: make(map[string]*reporting.MonthlyReportUpload)}
}

// Upsert stores the record, overwriting any existing month.
func (r *ReportRepository) Upsert(ctx context.Context, report *reporting.MonthlyReportUpload) error {
	_ = ctx
	if report == nil {
		return reporting.ErrNilReport
	}
	clone := *report
	r.mu.Lock()
	r.data[key(report.TenantID, report.Year, report.Month)] = &clone
	r.mu.Unlock()
	return nil
}

// Find loads the record for a month, nil when absent.
func (r *ReportRepository) Find(ctx context.Context, tenantID string, year, month int) (*reporting.MonthlyReportUpload, error) {
	_ = ctx
	r.mu.RLock()
	report := r.data[key(tenantID, year, month)]
	r.mu.RUnlock()
	if report == nil {
		return nil, nil
	}
	clone := *report
	return &clone, nil
}

// List returns all records for a tenant, newest period first.
func (r *ReportRepository) List(ctx context.Context, tenantID string) ([]reporting.MonthlyReportUpload, error) {
	_ = ctx
	r.mu.RLock()
	var result []reporting.MonthlyReportUpload
	for _, report := range r.data {
		if report.TenantID == tenantID {
			result = append(result, *report)
		}
	}
	r.mu.RUnlock()
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Month > result[j].Month
	})
	return result, nil
}

func key(tenantID string, year, month int) string {
	return fmt.Sprintf("%s|%04d-%02d", tenantID, year, month)
}
