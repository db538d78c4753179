package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prometheus collectors for the reconciliation engine, served alongside the
// default registry on the metrics port.
var (
	SyncTicks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchops_full_sync_ticks_total",
		Help: "Number of fullSync runs, scheduled or manual.",
	})
	DraftsGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchops_low_stock_drafts_total",
		Help: "Low-stock purchase request drafts persisted after dedupe.",
	})
	PurchasesSynced = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchops_purchases_synced_total",
		Help: "Completed purchase requests applied to inventory.",
	})
	Allocations = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "launchops_bom_allocations_total",
		Help: "BOM lines allocated from inventory stock.",
	})
)

func init() {
	prometheus.MustRegister(SyncTicks, DraftsGenerated, PurchasesSynced, Allocations)
}

// Monitor collects named operation counts for the dashboard's metrics view
type Monitor struct {
	counts       map[string]int64
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		counts:    make(map[string]int64),
		startTime: time.Now(),
	}
}

// Increment bumps a named counter
func (m *Monitor) Increment(name string) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.counts[name]++
}

// Count returns a specific counter value
func (m *Monitor) Count(name string) int64 {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	return m.counts[name]
}

// Snapshot returns all current counters plus system metrics
func (m *Monitor) Snapshot() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	out := make(map[string]interface{}, len(m.counts)+1)
	for k, v := range m.counts {
		out[k] = v
	}
	out["uptime_seconds"] = time.Since(m.startTime).Seconds()
	return out
}

// Reset clears all counters
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.counts = make(map[string]int64)
}
