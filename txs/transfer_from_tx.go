// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*TransferFromTx)(nil)

// TransferFromTx moves tokens out of another account on the strength of
// a prior approval. The sender is the spender; the moved amount is
// deducted from both the owner's balance and the sender's allowance.
type TransferFromTx struct {
	BaseTx `serialize:"true"`

	// Owner is the account the tokens are moved out of.
	Owner ids.ShortID `serialize:"true" json:"owner"`
	// To receives the tokens.
	To ids.ShortID `serialize:"true" json:"to"`
	// Amount of tokens to move.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*TransferFromTx) Type() TxType {
	return TxTransferFrom
}

func (tx *TransferFromTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.Owner == ids.ShortEmpty:
		return ErrZeroAddress
	case tx.To == ids.ShortEmpty:
		return ErrZeroAddress
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *TransferFromTx) Visit(visitor Visitor) error {
	return visitor.TransferFromTx(tx)
}
