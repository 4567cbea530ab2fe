package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	LoansAppliedTotal     *prometheus.CounterVec
	InstallmentToggles    prometheus.Counter
	OverdueInstallments   prometheus.Gauge
	OngoingLoans          prometheus.Gauge
	CompletedLoans        prometheus.Gauge
	LoanApplicationsDenied prometheus.Counter
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "loan_office_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		LoansAppliedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "loan_office_loans_applied_total",
				Help: "Total number of loan applications, by outcome.",
			},
			[]string{"status"},
		),
		InstallmentToggles: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_office_installment_toggles_total",
				Help: "Total number of installment paid-flag toggles.",
			},
		),
		OverdueInstallments: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loan_office_overdue_installments",
				Help: "Overdue installments observed by the last snapshot job run.",
			},
		),
		OngoingLoans: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loan_office_ongoing_loans",
				Help: "Ongoing loans observed by the last snapshot job run.",
			},
		),
		CompletedLoans: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "loan_office_completed_loans",
				Help: "Completed loans observed by the last snapshot job run.",
			},
		),
		LoanApplicationsDenied: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "loan_office_loan_applications_denied_total",
				Help: "Loan applications rejected by the outstanding-loan gate.",
			},
		),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordLoanApplied(status string) {
	Business.LoansAppliedTotal.WithLabelValues(status).Inc()
}

func RecordInstallmentToggle() {
	Business.InstallmentToggles.Inc()
}

func RecordOverdueSnapshot(overdueInstallments, ongoingLoans, completedLoans int) {
	Business.OverdueInstallments.Set(float64(overdueInstallments))
	Business.OngoingLoans.Set(float64(ongoingLoans))
	Business.CompletedLoans.Set(float64(completedLoans))
}
