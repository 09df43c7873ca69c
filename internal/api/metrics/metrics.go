// Package metrics defines and registers all custom Prometheus metrics
// for the time-tracking API. It is the single source of truth for metric
// names, labels, and help strings. Metrics register themselves with the
// default registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timetrack"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// UsersCreatedTotal counts accounts created through signup or the
// directory.
// Label:
//   - role: the role assigned at creation
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of user accounts created, by role.",
	},
	[]string{"role"},
)

// EntriesCreatedTotal counts time entries accepted by the ledger.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "time_entries_created_total",
		Help:      "Total number of time entries created.",
	},
)

// DailyCapRejectionsTotal counts creations rejected by the 24-hour
// daily-cap check.
var DailyCapRejectionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "daily_cap_rejections_total",
		Help:      "Total number of time entries rejected by the daily cap.",
	},
)

// ReportsGeneratedTotal counts report aggregations served.
var ReportsGeneratedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_generated_total",
		Help:      "Total number of aggregate reports served.",
	},
)

// ReportCacheTotal counts report cache lookups.
// Label:
//   - result: "hit" or "miss"
var ReportCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "report_cache_total",
		Help:      "Total number of report cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
