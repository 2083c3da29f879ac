// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*CancelProposalTx)(nil)

// CancelProposalTx withdraws a proposal that has not been settled yet.
// Only the proposer or the chain owner may cancel.
type CancelProposalTx struct {
	BaseTx `serialize:"true"`

	// ProposalID names the proposal to cancel.
	ProposalID ids.ID `serialize:"true" json:"proposalID"`
}

func (*CancelProposalTx) Type() TxType {
	return TxCancelProposal
}

func (tx *CancelProposalTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.ProposalID == ids.Empty:
		return errEmptyProposalID
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *CancelProposalTx) Visit(visitor Visitor) error {
	return visitor.CancelProposalTx(tx)
}
