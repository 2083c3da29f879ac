// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

var _ UnsignedTx = (*BurnTx)(nil)

// BurnTx destroys tokens from the sender's own balance and reduces the
// total supply.
type BurnTx struct {
	BaseTx `serialize:"true"`

	// Amount of the sender's tokens to destroy.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*BurnTx) Type() TxType {
	return TxBurn
}

func (tx *BurnTx) SyntacticVerify() error {
	if tx == nil {
		return ErrNilTx
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *BurnTx) Visit(visitor Visitor) error {
	return visitor.BurnTx(tx)
}
