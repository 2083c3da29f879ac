// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*FinalizeProposalTx)(nil)

// FinalizeProposalTx settles a proposal whose voting window has closed,
// moving it to Passed or Failed by the quorum and threshold rules.
// Anyone may finalize.
type FinalizeProposalTx struct {
	BaseTx `serialize:"true"`

	// ProposalID names the proposal to settle.
	ProposalID ids.ID `serialize:"true" json:"proposalID"`
}

func (*FinalizeProposalTx) Type() TxType {
	return TxFinalizeProposal
}

func (tx *FinalizeProposalTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.ProposalID == ids.Empty:
		return errEmptyProposalID
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *FinalizeProposalTx) Visit(visitor Visitor) error {
	return visitor.FinalizeProposalTx(tx)
}
