package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// LatencyBuckets are request latency buckets in milliseconds. Reader and
// payment calls are expected well under a second.
var LatencyBuckets = []float64{5, 10, 25, 50, 100, 200, 400, 750, 1000, 2000, 5000, 10000}

// VipPurchases counts successful entitlement extensions by plan and reason.
var VipPurchases = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: "vip",
		Name:      "purchases_total",
		Help:      "Entitlement extensions applied, partitioned by plan and reason.",
	},
	[]string{"plan", "reason"},
)

// VipPurchaseFailures counts rejected or failed purchase attempts by error kind.
var VipPurchaseFailures = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Subsystem: "vip",
		Name:      "purchase_failures_total",
		Help:      "Sandbox purchase attempts that did not extend an entitlement.",
	},
	[]string{"kind"},
)

func init() {
	prometheus.MustRegister(VipPurchases, VipPurchaseFailures)
}

// register adds c to the default registry. A collector registered earlier
// under the same descriptor is returned instead, so building the middleware
// twice in one process is harmless.
func register[T prometheus.Collector](c T) (T, error) {
	err := prometheus.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing, nil
		}
	}
	return c, err
}
