// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Visitor dispatches over the concrete transaction types. The executor
// and the transaction metrics are visitors.
type Visitor interface {
	// Token ledger transactions:
	TransferTx(*TransferTx) error
	ApproveTx(*ApproveTx) error
	TransferFromTx(*TransferFromTx) error
	MintTx(*MintTx) error
	BurnTx(*BurnTx) error

	// Access control transactions:
	SetPausedTx(*SetPausedTx) error
	TransferOwnershipTx(*TransferOwnershipTx) error

	// Governance transactions:
	CreateProposalTx(*CreateProposalTx) error
	CastVoteTx(*CastVoteTx) error
	FinalizeProposalTx(*FinalizeProposalTx) error
	ExecuteProposalTx(*ExecuteProposalTx) error
	CancelProposalTx(*CancelProposalTx) error
}
