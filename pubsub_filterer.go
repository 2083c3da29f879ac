// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"github.com/luxfi/ids"
	"github.com/luxfi/pubsub"

	vmapi "github.com/luxfi/vm/api"

	"github.com/luxfi/govvm/txs"
)

var _ pubsub.Filterer = (*filterer)(nil)

type filterer struct {
	tx *txs.Tx
}

// NewPubSubFilterer wraps an accepted transaction for the event server.
// Subscribers filtering on any address the transaction touches are
// notified with its ID.
func NewPubSubFilterer(tx *txs.Tx) pubsub.Filterer {
	return &filterer{tx: tx}
}

// Filter applies [filters] to the addresses this transaction touches.
func (f *filterer) Filter(filters []pubsub.Filter) ([]bool, interface{}) {
	resp := make([]bool, len(filters))
	for _, addr := range touchedAddresses(f.tx) {
		for i, filter := range filters {
			if resp[i] {
				continue
			}
			resp[i] = filter.Check(addr[:])
		}
	}
	return resp, vmapi.JSONTxID{TxID: f.tx.ID()}
}

// touchedAddresses lists the sender and every counterparty address of
// [tx]. Governance transactions only touch their sender.
func touchedAddresses(tx *txs.Tx) []ids.ShortID {
	addrs := []ids.ShortID{tx.Unsigned.Sender()}
	switch unsigned := tx.Unsigned.(type) {
	case *txs.TransferTx:
		addrs = append(addrs, unsigned.To)
	case *txs.ApproveTx:
		addrs = append(addrs, unsigned.Spender)
	case *txs.TransferFromTx:
		addrs = append(addrs, unsigned.Owner, unsigned.To)
	case *txs.MintTx:
		addrs = append(addrs, unsigned.To)
	case *txs.TransferOwnershipTx:
		addrs = append(addrs, unsigned.NewOwner)
	}
	return addrs
}
