package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

type RewardMetrics struct {
	actionsRewarded *prometheus.CounterVec
	transfers       prometheus.Counter
	mints           prometheus.Counter
	burns           prometheus.Counter
	totalSupply     prometheus.Gauge
	rejected        *prometheus.CounterVec
}

var (
	rewardsOnce     sync.Once
	rewardsRegistry *RewardMetrics
)

func Rewards() *RewardMetrics {
	rewardsOnce.Do(func() {
		rewardsRegistry = &RewardMetrics{
			actionsRewarded: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "rewards_actions_total",
				Help: "Count of rewarded circular-economy actions by type.",
			}, []string{"action"}),
			transfers: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rewards_transfers_total",
				Help: "Count of successful reward-token transfers.",
			}),
			mints: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rewards_mints_total",
				Help: "Count of admin mints into the reward ledger.",
			}),
			burns: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "rewards_burns_total",
				Help: "Count of voluntary reward-token burns.",
			}),
			totalSupply: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "rewards_total_supply",
				Help: "Current circulating reward-token supply in base units.",
			}),
			rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "rewards_rejected_total",
				Help: "Count of rejected reward-ledger operations by error.",
			}, []string{"reason"}),
		}
		prometheus.MustRegister(
			rewardsRegistry.actionsRewarded,
			rewardsRegistry.transfers,
			rewardsRegistry.mints,
			rewardsRegistry.burns,
			rewardsRegistry.totalSupply,
			rewardsRegistry.rejected,
		)
	})
	return rewardsRegistry
}

func (m *RewardMetrics) RecordAction(action string) {
	if m == nil {
		return
	}
	m.actionsRewarded.WithLabelValues(action).Inc()
}

func (m *RewardMetrics) RecordTransfer() {
	if m == nil {
		return
	}
	m.transfers.Inc()
}

func (m *RewardMetrics) RecordMint() {
	if m == nil {
		return
	}
	m.mints.Inc()
}

func (m *RewardMetrics) RecordBurn() {
	if m == nil {
		return
	}
	m.burns.Inc()
}

func (m *RewardMetrics) SetTotalSupply(units float64) {
	if m == nil {
		return
	}
	m.totalSupply.Set(units)
}

func (m *RewardMetrics) RecordRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}
