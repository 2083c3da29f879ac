// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*ExecuteProposalTx)(nil)

// ExecuteProposalTx marks a passed proposal as executed. The chain
// records the transition; it does not interpret proposal payloads.
// Anyone may execute a passed proposal, once.
type ExecuteProposalTx struct {
	BaseTx `serialize:"true"`

	// ProposalID names the proposal to execute.
	ProposalID ids.ID `serialize:"true" json:"proposalID"`
}

func (*ExecuteProposalTx) Type() TxType {
	return TxExecuteProposal
}

func (tx *ExecuteProposalTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.ProposalID == ids.Empty:
		return errEmptyProposalID
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *ExecuteProposalTx) Visit(visitor Visitor) error {
	return visitor.ExecuteProposalTx(tx)
}
