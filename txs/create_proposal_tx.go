// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/govvm/governance"
)

var (
	_ UnsignedTx = (*CreateProposalTx)(nil)

	errEmptyTitle         = errors.New("proposal title is empty")
	errTitleTooLong       = errors.New("proposal title is too long")
	errDescriptionTooLong = errors.New("proposal description is too long")
	errInvalidWindow      = errors.New("voting window end does not follow its start")
)

// CreateProposalTx opens a governance proposal. The sender becomes the
// proposer; the proposal ID is the transaction ID.
type CreateProposalTx struct {
	BaseTx `serialize:"true"`

	// Title summarizes the proposal. Required, bounded length.
	Title string `serialize:"true" json:"title"`
	// Description carries the full text. Optional, bounded length.
	Description string `serialize:"true" json:"description"`
	// StartTime is the first second at which votes are accepted.
	StartTime int64 `serialize:"true" json:"startTime"`
	// EndTime closes the voting window. Votes at or after it are
	// rejected.
	EndTime int64 `serialize:"true" json:"endTime"`
}

func (*CreateProposalTx) Type() TxType {
	return TxCreateProposal
}

func (tx *CreateProposalTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case len(tx.Title) == 0:
		return errEmptyTitle
	case len(tx.Title) > governance.MaxTitleLen:
		return errTitleTooLong
	case len(tx.Description) > governance.MaxDescriptionLen:
		return errDescriptionTooLong
	case tx.EndTime <= tx.StartTime:
		return errInvalidWindow
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *CreateProposalTx) Visit(visitor Visitor) error {
	return visitor.CreateProposalTx(tx)
}
