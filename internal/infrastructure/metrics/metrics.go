package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Ledger metrics
	DepositsTotal      prometheus.Counter
	WithdrawalsTotal   prometheus.Counter
	TransfersTotal     prometheus.Counter
	GoldPurchasesTotal prometheus.Counter
	ApprovalsTotal     prometheus.Counter
	OperationDuration  *prometheus.HistogramVec
	OperationErrors    *prometheus.CounterVec

	// Registration / auth metrics
	RegistrationsTotal prometheus.Counter
	AuthFailures       prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		DepositsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_deposits_total",
			Help: "Total number of completed deposits",
		}),
		WithdrawalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_withdrawals_total",
			Help: "Total number of completed withdrawals",
		}),
		TransfersTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transfers_total",
			Help: "Total number of completed transfers",
		}),
		GoldPurchasesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_gold_purchases_total",
			Help: "Total number of digital gold purchases initiated",
		}),
		ApprovalsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_transaction_approvals_total",
			Help: "Total number of approved transactions",
		}),
		OperationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gobank_ledger_operation_duration_seconds",
			Help:    "Duration of ledger operations",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gobank_ledger_operation_errors_total",
			Help: "Total number of failed ledger operations",
		}, []string{"operation"}),
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_registrations_total",
			Help: "Total number of registered users",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gobank_auth_failures_total",
			Help: "Total number of failed login attempts",
		}),
	}
}
