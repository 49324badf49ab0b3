package application

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"hotel-reports/internal/reporting/infrastructure/memory"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{StorageRoot: t.TempDir(), MaxUploadMB: 1, Currency: "GEL"}
}

func bookingWorkbook(t *testing.T, records [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := append([][]any{{"Room", "Check-in", "Check-out", "Nights", "Revenue", "Source", "Building"}}, records...)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				t.Fatalf("set cell: %v", err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func newTestService(t *testing.T) (*ReportService, *memory.ReportRepository) {
	t.Helper()
	repo := memory.NewReportRepository()
	cfg := testConfig(t)
	service, err := NewReportService(repo, NewDiskArchive(cfg.StorageRoot), cfg, "tenant-test")
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service, repo
}

func TestReportService_Analyze(t *testing.T) {
	service, _ := newTestService(t)
	data := bookingWorkbook(t, [][]any{
		{"A1", "2025-08-10", "2025-08-14", "4", "400", "booking.com", "A"},
		{"", "2025-08-10", "2025-08-14", "4", "400", "booking.com", "A"},
	})

	analysis, err := service.Analyze(context.Background(), data, 2025, 8)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if analysis.Overall.TotalRevenue != 400 {
		t.Fatalf("revenue: got %v, want 400", analysis.Overall.TotalRevenue)
	}
	if analysis.SkippedRows != 1 {
		t.Fatalf("skipped: got %d, want 1", analysis.SkippedRows)
	}
}

func TestReportService_Analyze_InvalidMonth(t *testing.T) {
	service, _ := newTestService(t)
	if _, err := service.Analyze(context.Background(), []byte("x"), 2025, 13); err == nil {
		t.Fatal("expected error for month 13")
	}
}

func TestReportService_Analyze_CorruptFile(t *testing.T) {
	service, _ := newTestService(t)
	if _, err := service.Analyze(context.Background(), []byte("not a workbook"), 2025, 8); err == nil {
		t.Fatal("expected error for corrupt workbook")
	}
}

func TestReportService_UploadAndGet(t *testing.T) {
	service, _ := newTestService(t)
	data := bookingWorkbook(t, [][]any{
		{"A1", "2025-08-10", "2025-08-14", "4", "400", "booking.com", "A"},
	})

	report, err := service.Upload(context.Background(), UploadCommand{
		FileName: "august.xlsx",
		Data:     data,
		Year:     2025,
		Month:    8,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if report.TotalRevenue != 400 || report.NetProfit != 400 {
		t.Fatalf("unexpected totals: %+v", report)
	}
	if report.Currency != "GEL" {
		t.Fatalf("currency: got %q", report.Currency)
	}
	if report.FilePath == "" {
		t.Fatal("expected archive path")
	}

	stored, err := service.Get(context.Background(), 2025, 8)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FileName != "august.xlsx" {
		t.Fatalf("file name: got %q", stored.FileName)
	}
}

func TestReportService_UploadOverwritesMonth(t *testing.T) {
	service, _ := newTestService(t)
	first := bookingWorkbook(t, [][]any{
		{"A1", "2025-08-10", "2025-08-14", "4", "400", "booking.com", "A"},
	})
	second := bookingWorkbook(t, [][]any{
		{"A1", "2025-08-10", "2025-08-12", "2", "500", "agoda", "A"},
	})

	ctx := context.Background()
	if _, err := service.Upload(ctx, UploadCommand{FileName: "v1.xlsx", Data: first, Year: 2025, Month: 8}); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if _, err := service.Upload(ctx, UploadCommand{FileName: "v2.xlsx", Data: second, Year: 2025, Month: 8}); err != nil {
		t.Fatalf("second upload: %v", err)
	}

	stored, err := service.Get(ctx, 2025, 8)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.FileName != "v2.xlsx" || stored.TotalRevenue != 500 {
		t.Fatalf("expected overwrite, got %+v", stored)
	}

	list, err := service.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected single record per month, got %d", len(list))
	}
}

func TestReportService_UploadTooLarge(t *testing.T) {
	service, _ := newTestService(t)
	oversized := make([]byte, 2*1024*1024)
	_, err := service.Upload(context.Background(), UploadCommand{FileName: "big.xlsx", Data: oversized, Year: 2025, Month: 8})
	if !errors.Is(err, ErrUploadTooLarge) {
		t.Fatalf("expected ErrUploadTooLarge, got %v", err)
	}
}

func TestReportService_Reanalyze(t *testing.T) {
	service, _ := newTestService(t)
	data := bookingWorkbook(t, [][]any{
		{"A 100-102", "2025-08-05", "2025-08-09", "4", "400", "direct", "A"},
	})
	ctx := context.Background()
	if _, err := service.Upload(ctx, UploadCommand{FileName: "august.xlsx", Data: data, Year: 2025, Month: 8}); err != nil {
		t.Fatalf("upload: %v", err)
	}

	analysis, report, err := service.Reanalyze(ctx, 2025, 8)
	if err != nil {
		t.Fatalf("reanalyze: %v", err)
	}
	if report.Year != 2025 || report.Month != 8 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(analysis.RoomStats) != 2 {
		t.Fatalf("expected 2 split rooms, got %d", len(analysis.RoomStats))
	}
}

func TestReportService_GetMissing(t *testing.T) {
	service, _ := newTestService(t)
	if _, err := service.Get(context.Background(), 2030, 1); err == nil {
		t.Fatal("expected not-found error")
	}
}
