// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package txs defines the transaction types of the governance VM.
package txs

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	ErrNilTx       = errors.New("nil transaction")
	ErrEmptySender = errors.New("transaction sender is the empty address")
	ErrZeroAddress = errors.New("zero address")

	errEmptyProposalID = errors.New("proposal ID is empty")
)

// TxType enumerates the concrete transaction types.
type TxType uint8

const (
	TxTransfer TxType = iota
	TxApprove
	TxTransferFrom
	TxMint
	TxBurn
	TxSetPaused
	TxTransferOwnership
	TxCreateProposal
	TxCastVote
	TxFinalizeProposal
	TxExecuteProposal
	TxCancelProposal
)

func (t TxType) String() string {
	switch t {
	case TxTransfer:
		return "transfer"
	case TxApprove:
		return "approve"
	case TxTransferFrom:
		return "transfer_from"
	case TxMint:
		return "mint"
	case TxBurn:
		return "burn"
	case TxSetPaused:
		return "set_paused"
	case TxTransferOwnership:
		return "transfer_ownership"
	case TxCreateProposal:
		return "create_proposal"
	case TxCastVote:
		return "cast_vote"
	case TxFinalizeProposal:
		return "finalize_proposal"
	case TxExecuteProposal:
		return "execute_proposal"
	case TxCancelProposal:
		return "cancel_proposal"
	default:
		return "unknown"
	}
}

// BaseTx carries the fields common to every transaction. The sender and
// nonce are part of the signature preimage, so a signature authorizes
// exactly one (sender, nonce) slot.
type BaseTx struct {
	// From is the account issuing this transaction.
	From ids.ShortID `serialize:"true" json:"from"`
	// Nonce must equal the sender account's nonce at execution time.
	Nonce uint64 `serialize:"true" json:"nonce"`

	// unsignedBytes is the serialization of the enclosing unsigned
	// transaction.
	unsignedBytes []byte
}

func (tx *BaseTx) SetBytes(unsignedBytes []byte) {
	tx.unsignedBytes = unsignedBytes
}

func (tx *BaseTx) Bytes() []byte {
	return tx.unsignedBytes
}

func (tx *BaseTx) Sender() ids.ShortID {
	return tx.From
}

func (tx *BaseTx) SyntacticVerify() error {
	if tx.From == ids.ShortEmpty {
		return ErrEmptySender
	}
	return nil
}
