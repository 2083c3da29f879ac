// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

// CodecVersion is the current codec version for transaction serialization.
const CodecVersion = 0

// Codec serializes transactions for the wire and the database. The
// registration order is consensus-critical and must never change.
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()

	// Token ledger transactions
	c.RegisterType(&TransferTx{})
	c.RegisterType(&ApproveTx{})
	c.RegisterType(&TransferFromTx{})
	c.RegisterType(&MintTx{})
	c.RegisterType(&BurnTx{})

	// Access control transactions
	c.RegisterType(&SetPausedTx{})
	c.RegisterType(&TransferOwnershipTx{})

	// Governance transactions
	c.RegisterType(&CreateProposalTx{})
	c.RegisterType(&CastVoteTx{})
	c.RegisterType(&FinalizeProposalTx{})
	c.RegisterType(&ExecuteProposalTx{})
	c.RegisterType(&CancelProposalTx{})

	Codec = codec.NewDefaultManager()
	if err := Codec.RegisterCodec(CodecVersion, c); err != nil {
		panic(err)
	}
}
