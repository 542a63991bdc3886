package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	clockIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staffing",
			Name:      "clock_in_total",
			Help:      "Count of clock-in attempts by result.",
		},
		[]string{"result"},
	)

	clockOuts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staffing",
			Name:      "clock_out_total",
			Help:      "Count of clock-out attempts by result.",
		},
		[]string{"result"},
	)

	reportsExported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staffing",
			Name:      "reports_exported_total",
			Help:      "Count of exported time reports by format.",
		},
		[]string{"format"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(clockIns, clockOuts, reportsExported)
	})
}

func IncClockIn(result string) {
	clockIns.WithLabelValues(result).Inc()
}

func IncClockOut(result string) {
	clockOuts.WithLabelValues(result).Inc()
}

func IncReportExported(format string) {
	reportsExported.WithLabelValues(format).Inc()
}
