package metrics

import (
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "platform_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	reportAnalyzeTotal   *prometheus.CounterVec
	reportAnalyzeLatency *prometheus.HistogramVec

	reportUploadTotal   *prometheus.CounterVec
	reportUploadLatency *prometheus.HistogramVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	reportRowsSkipped prometheus.Counter
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *log.Logger) {
	registerOnce.Do(func() {
		reportAnalyzeTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_analyze_total",
				Help: "Total monthly report analyses by result",
			},
			[]string{"result"},
		)
		reportAnalyzeLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_analyze_latency_seconds",
				Help:    "Monthly report analysis latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportUploadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_upload_total",
				Help: "Total monthly report uploads by result",
			},
			[]string{"result"},
		)
		reportUploadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_upload_latency_seconds",
				Help:    "Monthly report upload latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Total report export operations by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		reportRowsSkipped = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_rows_skipped_total",
				Help: "Total booking rows excluded during analysis",
			},
		)

		prometheus.MustRegister(
			reportAnalyzeTotal,
			reportAnalyzeLatency,
			reportUploadTotal,
			reportUploadLatency,
			reportExportTotal,
			reportExportLatency,
			reportRowsSkipped,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveReportAnalyze records analysis latency and result.
func ObserveReportAnalyze(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if reportAnalyzeTotal != nil {
		reportAnalyzeTotal.WithLabelValues(result).Inc()
	}
	if reportAnalyzeLatency != nil {
		reportAnalyzeLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportUpload records upload latency and result.
func ObserveReportUpload(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if reportUploadTotal != nil {
		reportUploadTotal.WithLabelValues(result).Inc()
	}
	if reportUploadLatency != nil {
		reportUploadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveReportExport records export latency and result.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}

// AddSkippedRows increments the excluded-row counter by count.
func AddSkippedRows(count int) {
	if count <= 0 {
		return
	}
	if reportRowsSkipped != nil {
		reportRowsSkipped.Add(float64(count))
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
