package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type GarmentMetrics struct {
	minted          prometheus.Counter
	transfers       prometheus.Counter
	burns           prometheus.Counter
	lifecycleEvents *prometheus.CounterVec
	totalMinted     prometheus.Gauge
	rejected        *prometheus.CounterVec
}

var (
	garmentsOnce     sync.Once
	garmentsRegistry *GarmentMetrics
)

func Garments() *GarmentMetrics {
	garmentsOnce.Do(func() {
		garmentsRegistry = &GarmentMetrics{
			minted: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "garments_minted_total",
				Help: "Count of garments registered on the ledger.",
			}),
			transfers: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "garments_transfers_total",
				Help: "Count of successful garment ownership transfers.",
			}),
			burns: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "garments_burns_total",
				Help: "Count of garments retired from the registry.",
			}),
			lifecycleEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "garments_lifecycle_events_total",
				Help: "Count of recorded lifecycle events by kind.",
			}, []string{"kind"}),
			totalMinted: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "garments_total_minted",
				Help: "Highest garment identifier allocated so far.",
			}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "garments_rejected_total",
				Help: "Count of rejected garment-registry operations by error.",
			}, []string{"reason"}),
		}
		prometheus.MustRegister(
			garmentsRegistry.minted,
			garmentsRegistry.transfers,
			garmentsRegistry.burns,
			garmentsRegistry.lifecycleEvents,
			garmentsRegistry.totalMinted,
			garmentsRegistry.rejected,
		)
	})
	return garmentsRegistry
}

func (m *GarmentMetrics) RecordMint(totalMinted uint64) {
	if m == nil {
		return
	}
	m.minted.Inc()
	m.totalMinted.Set(float64(totalMinted))
}

func (m *GarmentMetrics) RecordTransfer() {
	if m == nil {
		return
	}
	m.transfers.Inc()
}

func (m *GarmentMetrics) RecordBurn() {
	if m == nil {
		return
	}
	m.burns.Inc()
}

func (m *GarmentMetrics) RecordLifecycleEvent(kind string) {
	if m == nil {
		return
	}
	m.lifecycleEvents.WithLabelValues(kind).Inc()
}

func (m *GarmentMetrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}
