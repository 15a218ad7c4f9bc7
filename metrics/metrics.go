// Copyright (C) 2019-2026, Findora Foundation. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics wires the node's prometheus surface: counters and gauges
// the submission/consensus lifecycle updates as it runs, registered
// against a caller-supplied prometheus.Registerer the way the teacher's
// platformvm/metrics package takes one rather than reaching for the
// global default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of gauges and counters the node keeps, split out as
// an interface so callers that don't want a live registry (tests, thin
// CLI subcommands) can use Noop instead.
type Metrics interface {
	// IncBlocksCommitted marks that a block finished apply_block.
	IncBlocksCommitted()
	// IncTransactionsRejected marks a transaction that failed check_tx or
	// deliver_tx, tagged with the coarse rejection reason.
	IncTransactionsRejected(reason string)
	// IncTransactionsCommitted marks a transaction that was included in a
	// committed block.
	IncTransactionsCommitted()
	// SetStakedSupply records the current network-wide staked amount.
	SetStakedSupply(amount uint64)
	// SetValidatorCount records the current validator set size.
	SetValidatorCount(n int)
	// ObserveBlockHeight records the most recently committed height.
	ObserveBlockHeight(height uint64)
}

type metrics struct {
	blocksCommitted       prometheus.Counter
	transactionsCommitted prometheus.Counter
	transactionsRejected  *prometheus.CounterVec
	stakedSupply          prometheus.Gauge
	validatorCount        prometheus.Gauge
	blockHeight           prometheus.Gauge
}

// New registers the node's metrics under namespace against registerer and
// returns the handle the rest of the node updates as it runs.
func New(namespace string, registerer prometheus.Registerer) (Metrics, error) {
	m := &metrics{
		blocksCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_committed",
			Help:      "Number of blocks applied to the ledger store.",
		}),
		transactionsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_committed",
			Help:      "Number of transactions included in a committed block.",
		}),
		transactionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_rejected",
			Help:      "Number of transactions rejected by check_tx or deliver_tx, by reason.",
		}, []string{"reason"}),
		stakedSupply: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "staked_supply",
			Help:      "Total amount of FRA currently delegated to validators.",
		}),
		validatorCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "validator_count",
			Help:      "Number of validators currently registered with the staking engine.",
		}),
		blockHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "block_height",
			Help:      "Height of the most recently committed block.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.blocksCommitted,
		m.transactionsCommitted,
		m.transactionsRejected,
		m.stakedSupply,
		m.validatorCount,
		m.blockHeight,
	} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *metrics) IncBlocksCommitted()       { m.blocksCommitted.Inc() }
func (m *metrics) IncTransactionsCommitted() { m.transactionsCommitted.Inc() }

func (m *metrics) IncTransactionsRejected(reason string) {
	m.transactionsRejected.WithLabelValues(reason).Inc()
}

func (m *metrics) SetStakedSupply(amount uint64)    { m.stakedSupply.Set(float64(amount)) }
func (m *metrics) SetValidatorCount(n int)          { m.validatorCount.Set(float64(n)) }
func (m *metrics) ObserveBlockHeight(height uint64) { m.blockHeight.Set(float64(height)) }

var _ Metrics = (*metrics)(nil)
