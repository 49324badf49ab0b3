package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-reports/internal/auth"
	"hotel-reports/internal/ingest/xlsx"
	"hotel-reports/internal/observability/metrics"
	reporting "hotel-reports/internal/reporting/domain"
)

// ErrUploadTooLarge indicates the uploaded file exceeds the configured limit.
var ErrUploadTooLarge = errors.New("report service: upload too large")

// UploadCommand carries one monthly report upload.
type UploadCommand struct {
	FileName string
	Data     []byte
	Year     int
	Month    int
}

// ReportService handles monthly revenue report workflows.
type ReportService struct {
	repo     reporting.Repository
	archive  FileArchive
	cfg      Config
	tenantID string
}

// NewReportService constructs a service.
func NewReportService(repo reporting.Repository, archive FileArchive, cfg Config, tenantID string) (*ReportService, error) {
	if repo == nil {
		return nil, errors.New("report service: nil repo")
	}
	if archive == nil {
		return nil, errors.New("report service: nil archive")
	}
	if tenantID == "" {
		return nil, errors.New("report service: empty tenant id")
	}
	return &ReportService{repo: repo, archive: archive, cfg: cfg, tenantID: tenantID}, nil
}

// Analyze decodes an uploaded workbook and computes the month statistics.
// Pure with respect to storage; nothing is persisted.
func (s *ReportService) Analyze(ctx context.Context, data []byte, year, month int) (reporting.AnalysisResult, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportAnalyze(result, time.Since(start))
	}()
	_ = ctx

	period, err := reporting.NewTargetPeriod(year, month)
	if err != nil {
		result = metrics.ResultError
		return reporting.AnalysisResult{}, err
	}
	rows, err := xlsx.ReadBookings(bytes.NewReader(data))
	if err != nil {
		result = metrics.ResultError
		return reporting.AnalysisResult{}, fmt.Errorf("report service: read workbook: %w", err)
	}
	analysis := reporting.AnalyzeMonth(rows, period)
	metrics.AddSkippedRows(analysis.SkippedRows)
	return analysis, nil
}

// Upload analyzes a workbook, archives the original file and upserts the
// stored record for (tenant, year, month). Re-uploading a month overwrites
// the previous record.
func (s *ReportService) Upload(ctx context.Context, cmd UploadCommand) (*reporting.MonthlyReportUpload, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportUpload(result, time.Since(start))
	}()

	if len(cmd.Data) == 0 {
		result = metrics.ResultError
		return nil, errors.New("report service: empty file")
	}
	if len(cmd.Data) > s.cfg.MaxUploadMB*1024*1024 {
		result = metrics.ResultError
		return nil, ErrUploadTooLarge
	}

	analysis, err := s.Analyze(ctx, cmd.Data, cmd.Year, cmd.Month)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}

	path, err := s.archive.Save(cmd.Year, cmd.Month, cmd.FileName, cmd.Data)
	if err != nil {
		result = metrics.ResultError
		return nil, fmt.Errorf("report service: archive file: %w", err)
	}

	now := time.Now().UTC()
	overall := analysis.Overall
	report := &reporting.MonthlyReportUpload{
		TenantID:      s.resolveTenant(ctx),
		Year:          cmd.Year,
		Month:         cmd.Month,
		FileName:      cmd.FileName,
		FilePath:      path,
		UploadedBy:    auth.SubjectFromContext(ctx),
		TotalRevenue:  overall.TotalRevenue,
		NetProfit:     overall.TotalRevenue,
		TotalNights:   overall.TotalNights,
		TotalBookings: overall.TotalBookings,
		RoomCount:     overall.UniqueRooms,
		OccupancyRate: overall.OccupancyRate,
		ADR:           overall.AvgADR,
		RevPAR:        overall.RevPAR,
		Currency:      s.cfg.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Upsert(ctx, report); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return report, nil
}

// Get returns the stored record for a month.
func (s *ReportService) Get(ctx context.Context, year, month int) (*reporting.MonthlyReportUpload, error) {
	if _, err := reporting.NewTargetPeriod(year, month); err != nil {
		return nil, err
	}
	report, err := s.repo.Find(ctx, s.resolveTenant(ctx), year, month)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, reporting.ErrNotFound
	}
	return report, nil
}

// List returns all stored records for the tenant, newest period first.
func (s *ReportService) List(ctx context.Context) ([]reporting.MonthlyReportUpload, error) {
	return s.repo.List(ctx, s.resolveTenant(ctx))
}

// Reanalyze re-reads the archived file for a stored month and recomputes
// the full analysis, for export.
func (s *ReportService) Reanalyze(ctx context.Context, year, month int) (reporting.AnalysisResult, *reporting.MonthlyReportUpload, error) {
	report, err := s.Get(ctx, year, month)
	if err != nil {
		return reporting.AnalysisResult{}, nil, err
	}
	data, err := s.archive.Read(report.FilePath)
	if err != nil {
		return reporting.AnalysisResult{}, nil, fmt.Errorf("report service: read archive: %w", err)
	}
	analysis, err := s.Analyze(ctx, data, year, month)
	if err != nil {
		return reporting.AnalysisResult{}, nil, err
	}
	return analysis, report, nil
}

func (s *ReportService) resolveTenant(ctx context.Context) string {
	if tenantID := auth.TenantIDFromContext(ctx); tenantID != "" {
		return tenantID
	}
	return s.tenantID
}
