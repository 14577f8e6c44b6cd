package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// EntityWrites counts successful create/update/delete operations per entity.
var EntityWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogly_entity_writes_total",
		Help: "Successful write operations, labeled by entity and operation.",
	},
	[]string{"entity", "operation"},
)

// SessionStoreErrors counts failures of the Redis-backed session storage.
var SessionStoreErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "blogly_session_store_errors_total",
		Help: "Errors returned by the session storage backend, labeled by command.",
	},
	[]string{"command"},
)

var (
	promOnce sync.Once
	promInst *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the Prometheus middleware for the given service name.
// The underlying collectors register globally, so the instance is shared
// across every server built in the process.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInst = fiberprometheus.New(service)
	})
	return promInst
}

// MetricsMiddleware returns the HTTP metrics collection middleware.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
