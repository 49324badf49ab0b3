package interfaces

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hotel-reports/internal/audit"
	"hotel-reports/internal/auth"
	"hotel-reports/internal/observability/metrics"
	"hotel-reports/internal/reporting/application"
	reporting "hotel-reports/internal/reporting/domain"
)

const routePrefix = "/api/v1/reports/monthly"

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// the service enforces the configured upload limit on the file itself.
const maxMultipartMemory = 64 << 20

// ReportHandler handles monthly report APIs.
type ReportHandler struct {
	service     *application.ReportService
	auditLogger audit.Logger
}

// NewReportHandler constructs a handler.
func NewReportHandler(service *application.ReportService, auditLogger audit.Logger) (*ReportHandler, error) {
	if service == nil {
		return nil, errors.New("report handler: nil service")
	}
	return &ReportHandler{service: service, auditLogger: auditLogger}, nil
}

// ServeHTTP handles report routes under /api/v1/reports/monthly.
func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	if path == routePrefix {
		switch r.Method {
		case http.MethodPost:
			h.handleUpload(w, r)
		case http.MethodGet:
			h.handleList(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}
	if path == routePrefix+"/analyze" && r.Method == http.MethodPost {
		h.handleAnalyze(w, r)
		return
	}
	if strings.HasPrefix(path, routePrefix+"/") {
		rest := strings.TrimPrefix(path, routePrefix+"/")
		h.handleByPeriod(w, r, rest)
		return
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *ReportHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	fileName, data, year, month, ok := h.readUploadForm(w, r)
	if !ok {
		return
	}
	report, err := h.service.Upload(r.Context(), application.UploadCommand{
		FileName: fileName,
		Data:     data,
		Year:     year,
		Month:    month,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"year":           report.Year,
		"month":          report.Month,
		"file_name":      report.FileName,
		"total_revenue":  report.TotalRevenue,
		"total_nights":   report.TotalNights,
		"total_bookings": report.TotalBookings,
		"room_count":     report.RoomCount,
		"occupancy_rate": report.OccupancyRate,
		"adr":            report.ADR,
		"revpar":         report.RevPAR,
		"currency":       report.Currency,
	})
	h.logAudit(r, report.Year, report.Month, "report.upload", map[string]any{
		"file_name": report.FileName,
	})
}

func (h *ReportHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	_, data, year, month, ok := h.readUploadForm(w, r)
	if !ok {
		return
	}
	analysis, err := h.service.Analyze(r.Context(), data, year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(analysis)
}

func (h *ReportHandler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

func (h *ReportHandler) handleByPeriod(w http.ResponseWriter, r *http.Request, rest string) {
	parts := strings.Split(rest, "/")
	if len(parts) < 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	year, errYear := strconv.Atoi(parts[0])
	month, errMonth := strconv.Atoi(parts[1])
	if errYear != nil || errMonth != nil {
		http.Error(w, "invalid period", http.StatusBadRequest)
		return
	}
	if len(parts) == 2 && r.Method == http.MethodGet {
		h.handleGet(w, r, year, month)
		return
	}
	if len(parts) == 3 && r.Method == http.MethodGet {
		switch parts[2] {
		case "export.xlsx":
			h.handleExportXLSX(w, r, year, month)
			return
		case "export.pdf":
			h.handleExportPDF(w, r, year, month)
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
}

func (h *ReportHandler) handleGet(w http.ResponseWriter, r *http.Request, year, month int) {
	report, err := h.service.Get(r.Context(), year, month)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(report)
}

func (h *ReportHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request, year, month int) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("xlsx", result, time.Since(start))
	}()

	analysis, report, err := h.service.Reanalyze(r.Context(), year, month)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildReportXLSX(&analysis, year, month)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export xlsx error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ExportFileName(year, month)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, report.Year, report.Month, "report.export", map[string]any{"format": "xlsx"})
}

func (h *ReportHandler) handleExportPDF(w http.ResponseWriter, r *http.Request, year, month int) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveReportExport("pdf", result, time.Since(start))
	}()

	analysis, report, err := h.service.Reanalyze(r.Context(), year, month)
	if err != nil {
		result = metrics.ResultError
		respondServiceError(w, err)
		return
	}
	data, err := BuildReportPDF(report, &analysis)
	if err != nil {
		result = metrics.ResultError
		http.Error(w, "export pdf error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	h.logAudit(r, report.Year, report.Month, "report.export", map[string]any{"format": "pdf"})
}

func (h *ReportHandler) readUploadForm(w http.ResponseWriter, r *http.Request) (string, []byte, int, int, bool) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return "", nil, 0, 0, false
	}
	year, errYear := strconv.Atoi(r.FormValue("year"))
	month, errMonth := strconv.Atoi(r.FormValue("month"))
	if errYear != nil || errMonth != nil {
		http.Error(w, "year and month required", http.StatusBadRequest)
		return "", nil, 0, 0, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file required", http.StatusBadRequest)
		return "", nil, 0, 0, false
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "read file error", http.StatusBadRequest)
		return "", nil, 0, 0, false
	}
	return header.Filename, data, year, month, true
}

func (h *ReportHandler) logAudit(r *http.Request, year, month int, action string, meta map[string]any) {
	if h.auditLogger == nil {
		return
	}
	tenantID := auth.TenantIDFromContext(r.Context())
	if tenantID == "" {
		return
	}
	payload, _ := json.Marshal(meta)
	_ = h.auditLogger.Log(r.Context(), audit.Entry{
		TenantID:     tenantID,
		Actor:        auth.SubjectFromContext(r.Context()),
		Role:         string(auth.RoleFromContext(r.Context())),
		Action:       action,
		ResourceType: "monthly_report",
		ResourceID:   strconv.Itoa(year) + "-" + strconv.Itoa(month),
		Metadata:     payload,
		IP:           audit.ClientIP(r),
		UserAgent:    r.UserAgent(),
	})
}

func respondServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, reporting.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, auth.ErrTenantMismatch):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, application.ErrUploadTooLarge):
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}
