// Package metrics defines and registers the custom Prometheus metrics of the
// property API. HTTP request metrics come from echoprometheus; the counters
// here track domain outcomes.
//
// All metrics register with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "property_api"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts successful POST /users responses.
var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// ── Property metrics ──────────────────────────────────────────────────────────

// PropertiesCreatedTotal counts newly created properties.
// Label:
//   - property_type: "apartment", "house", "studio" or "villa"
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of properties created, by property type.",
	},
	[]string{"property_type"},
)

// PropertiesDeletedTotal counts deleted properties.
var PropertiesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_deleted_total",
		Help:      "Total number of properties deleted.",
	},
)

// ── Authorization metrics ─────────────────────────────────────────────────────

// OwnershipDeniedTotal counts mutations rejected with 403.
// Label:
//   - resource: "users" or "properties"
var OwnershipDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ownership_denied_total",
		Help:      "Total number of mutations rejected because the caller is not the owner.",
	},
	[]string{"resource"},
)
