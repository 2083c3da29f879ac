// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*TransferTx)(nil)

// TransferTx moves tokens from the sender to another account.
type TransferTx struct {
	BaseTx `serialize:"true"`

	// To receives the tokens.
	To ids.ShortID `serialize:"true" json:"to"`
	// Amount of tokens to move. Zero is allowed and moves nothing.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*TransferTx) Type() TxType {
	return TxTransfer
}

func (tx *TransferTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.To == ids.ShortEmpty:
		return ErrZeroAddress
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *TransferTx) Visit(visitor Visitor) error {
	return visitor.TransferTx(tx)
}
