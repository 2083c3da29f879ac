// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/govvm/governance"
)

var _ UnsignedTx = (*CastVoteTx)(nil)

// CastVoteTx records the sender's vote on an active proposal. The vote
// weight is the sender's token balance at execution time.
type CastVoteTx struct {
	BaseTx `serialize:"true"`

	// ProposalID names the proposal being voted on.
	ProposalID ids.ID `serialize:"true" json:"proposalID"`
	// Choice is For, Against, or Abstain.
	Choice governance.VoteChoice `serialize:"true" json:"choice"`
}

func (*CastVoteTx) Type() TxType {
	return TxCastVote
}

func (tx *CastVoteTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.ProposalID == ids.Empty:
		return errEmptyProposalID
	}
	if err := tx.Choice.Valid(); err != nil {
		return err
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *CastVoteTx) Visit(visitor Visitor) error {
	return visitor.CastVoteTx(tx)
}
