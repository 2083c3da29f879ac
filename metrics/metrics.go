// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"

	"github.com/luxfi/metric"

	"github.com/luxfi/vm/utils/wrappers"

	"github.com/luxfi/govvm/txs"
)

var _ Metrics = (*metricsImpl)(nil)

type Metrics interface {
	metric.APIInterceptor

	// IncTxSubmitted marks a transaction admitted to the mempool.
	IncTxSubmitted()
	// IncTxSkipped marks a transaction dropped during block processing.
	IncTxSkipped()

	// MarkBlockAccepted updates all metrics relating to the acceptance of a
	// block, including the per-type counters of the contained transactions.
	MarkBlockAccepted(height uint64, blockTxs []*txs.Tx) error

	// SetActiveProposals records the size of the open proposal set.
	SetActiveProposals(int)
	// SetTotalSupply records the token supply after a block.
	SetTotalSupply(uint64)
}

type metricsImpl struct {
	txMetrics *txMetrics

	numTxsSubmitted, numTxsSkipped, numBlocksAccepted metric.Counter

	lastAcceptedHeight, activeProposals, totalSupply metric.Gauge

	metric.APIInterceptor
}

func (m *metricsImpl) IncTxSubmitted() {
	m.numTxsSubmitted.Inc()
}

func (m *metricsImpl) IncTxSkipped() {
	m.numTxsSkipped.Inc()
}

func (m *metricsImpl) MarkBlockAccepted(height uint64, blockTxs []*txs.Tx) error {
	for _, tx := range blockTxs {
		if err := tx.Unsigned.Visit(m.txMetrics); err != nil {
			return err
		}
	}
	m.numBlocksAccepted.Inc()
	m.lastAcceptedHeight.Set(float64(height))
	return nil
}

func (m *metricsImpl) SetActiveProposals(n int) {
	m.activeProposals.Set(float64(n))
}

func (m *metricsImpl) SetTotalSupply(supply uint64) {
	m.totalSupply.Set(float64(supply))
}

func New(registerer metric.Registerer) (Metrics, error) {
	registry, ok := registerer.(metric.Registry)
	if !ok {
		return nil, errors.New("registerer must implement metric.Registry")
	}
	txMetrics, err := newTxMetrics(registry)
	errs := wrappers.Errs{Err: err}

	m := &metricsImpl{txMetrics: txMetrics}

	m.numTxsSubmitted = metric.NewCounter(metric.CounterOpts{
		Name: "txs_submitted",
		Help: "Number of transactions admitted to the mempool",
	})
	m.numTxsSkipped = metric.NewCounter(metric.CounterOpts{
		Name: "txs_skipped",
		Help: "Number of transactions dropped during block processing",
	})
	m.numBlocksAccepted = metric.NewCounter(metric.CounterOpts{
		Name: "blocks_accepted",
		Help: "Number of blocks accepted",
	})
	m.lastAcceptedHeight = metric.NewGauge(metric.GaugeOpts{
		Name: "last_accepted_height",
		Help: "Height of the last accepted block",
	})
	m.activeProposals = metric.NewGauge(metric.GaugeOpts{
		Name: "active_proposals",
		Help: "Number of proposals currently open for voting",
	})
	m.totalSupply = metric.NewGauge(metric.GaugeOpts{
		Name: "total_supply",
		Help: "Token supply after the last accepted block",
	})

	apiRequestMetric, err := metric.NewAPIInterceptor(registry)
	m.APIInterceptor = apiRequestMetric
	errs.Add(err)
	return m, errs.Err
}
