// Package metrics defines and registers all custom Prometheus metrics for
// the employee API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at import time; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "employee_api"

// ── GraphQL metrics ──────────────────────────────────────────────────────────

// GraphQLRequestsTotal counts executed GraphQL operations.
// Label:
//   - operation: the client-supplied operation name, or "unnamed"
var GraphQLRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_requests_total",
		Help:      "Total number of GraphQL operations executed.",
	},
	[]string{"operation"},
)

// GraphQLErrorsTotal counts resolver errors returned to clients.
var GraphQLErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "graphql_errors_total",
		Help:      "Total number of errors in GraphQL responses.",
	},
	[]string{"operation"},
)

// GraphQLRequestDuration measures end-to-end execution time per operation.
var GraphQLRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "graphql_request_duration_seconds",
		Help:      "Duration of GraphQL operation execution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Domain metrics ───────────────────────────────────────────────────────────

// EmployeesCreatedTotal counts newly created employee records by department.
var EmployeesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "employees_created_total",
		Help:      "Total number of employee records created, by department.",
	},
	[]string{"department"},
)

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

// RegistrationsTotal counts completed registrations by role.
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed registrations, by role.",
	},
	[]string{"role"},
)
