// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/govvm/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs metric.CounterVec
}

func newTxMetrics(registerer metric.Registerer) (*txMetrics, error) {
	m := &txMetrics{
		numTxs: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "txs_accepted",
				Help: "number of transactions accepted",
			},
			txLabels,
		),
	}
	return m, nil
}

func (m *txMetrics) TransferTx(*txs.TransferTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer",
	}).Inc()
	return nil
}

func (m *txMetrics) ApproveTx(*txs.ApproveTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "approve",
	}).Inc()
	return nil
}

func (m *txMetrics) TransferFromTx(*txs.TransferFromTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer_from",
	}).Inc()
	return nil
}

func (m *txMetrics) MintTx(*txs.MintTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "mint",
	}).Inc()
	return nil
}

func (m *txMetrics) BurnTx(*txs.BurnTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "burn",
	}).Inc()
	return nil
}

func (m *txMetrics) SetPausedTx(*txs.SetPausedTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "set_paused",
	}).Inc()
	return nil
}

func (m *txMetrics) TransferOwnershipTx(*txs.TransferOwnershipTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer_ownership",
	}).Inc()
	return nil
}

func (m *txMetrics) CreateProposalTx(*txs.CreateProposalTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "create_proposal",
	}).Inc()
	return nil
}

func (m *txMetrics) CastVoteTx(*txs.CastVoteTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "cast_vote",
	}).Inc()
	return nil
}

func (m *txMetrics) FinalizeProposalTx(*txs.FinalizeProposalTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "finalize_proposal",
	}).Inc()
	return nil
}

func (m *txMetrics) ExecuteProposalTx(*txs.ExecuteProposalTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "execute_proposal",
	}).Inc()
	return nil
}

func (m *txMetrics) CancelProposalTx(*txs.CancelProposalTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "cancel_proposal",
	}).Inc()
	return nil
}
