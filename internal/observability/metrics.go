package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route pattern, method and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_builder_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	// HTTPDuration observes request latency by route pattern and method.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_builder_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// RateLimited counts rejected requests per endpoint.
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_builder_rate_limited_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
		[]string{"path"},
	)

	// PDFRenders counts PDF render attempts by outcome.
	PDFRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_builder_pdf_renders_total",
			Help: "Total number of PDF render attempts",
		},
		[]string{"outcome"},
	)

	// PDFRenderDuration observes successful render latency.
	PDFRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_builder_pdf_render_duration_seconds",
			Help:    "Duration of successful PDF renders in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
	)

	// ResumesSaved counts resume writes by operation.
	ResumesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_builder_resumes_saved_total",
			Help: "Total number of resume writes",
		},
		[]string{"operation"},
	)

	// CompletenessScores observes the completeness score computed on each save.
	CompletenessScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_builder_completeness_score",
			Help:    "Distribution of completeness scores computed on save",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	// BlobUploads counts blob uploads by backend and outcome.
	BlobUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_builder_blob_uploads_total",
			Help: "Total number of blob uploads",
		},
		[]string{"backend", "outcome"},
	)
)
