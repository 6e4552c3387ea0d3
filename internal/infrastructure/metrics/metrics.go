package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Intake service metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Conversation turns, labelled by the stage the turn landed on.
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "turns_total",
			Help:      "Total conversation turns",
		},
		[]string{"stage"},
	)

	// Live conversations sitting in the session registry. There is no
	// eviction, so this gauge is how operators watch growth.
	ActiveConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "active_conversations",
			Help:      "Conversations currently held in the session registry",
		},
	)

	RecordsSavedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "records_saved_total",
			Help:      "Intake rows appended to the sheet",
		},
		[]string{"status"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "emails_sent_total",
			Help:      "Summary emails attempted",
		},
		[]string{"status"},
	)

	SheetsDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sgsh",
			Subsystem: "intake",
			Name:      "sheets_duration_seconds",
			Help:      "Google Sheets API call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)
)
