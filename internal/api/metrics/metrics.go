// Package metrics defines all custom Prometheus metrics for the POS
// backend. It is the single source of truth for metric names, labels, and
// help strings; promauto registers everything with the default registry at
// package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// SalesRecordedTotal counts recorded sales.
// Label:
//   - credit: "cash" when paid covers the total, "loan" when the sale
//     opened or would have opened a balance
var SalesRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_recorded_total",
		Help:      "Total number of sales recorded, by credit outcome.",
	},
	[]string{"credit"},
)

// LoanPaymentsTotal counts recorded loan repayments.
var LoanPaymentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "loan_payments_total",
		Help:      "Total number of loan repayments recorded.",
	},
)

// LedgerRejectionsTotal counts ledger operations rejected before any
// mutation.
// Label:
//   - reason: short rejection cause (e.g. "outstanding_loan", "overpayment",
//     "negative_stock", "client_has_loan")
var LedgerRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_rejections_total",
		Help:      "Total number of ledger operations rejected by a precondition.",
	},
	[]string{"reason"},
)

// OutstandingLoanTotal tracks the current sum of all client balances.
var OutstandingLoanTotal = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "outstanding_loan_total",
		Help:      "Current total outstanding loan balance across all clients.",
	},
)

// SnapshotSavesTotal counts snapshot persistence attempts.
// Label:
//   - result: "ok" or "error"
var SnapshotSavesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_saves_total",
		Help:      "Total number of snapshot save attempts, by result.",
	},
	[]string{"result"},
)

// SnapshotSaveDuration measures how long a successful snapshot save takes.
var SnapshotSaveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "snapshot_save_duration_seconds",
		Help:      "Duration of snapshot serialization and replacement.",
		Buckets:   prometheus.DefBuckets,
	},
)
