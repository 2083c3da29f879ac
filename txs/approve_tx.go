// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*ApproveTx)(nil)

// ApproveTx sets the allowance a spender may transfer out of the
// sender's account. The amount overwrites any previous allowance.
type ApproveTx struct {
	BaseTx `serialize:"true"`

	// Spender is authorized to transfer up to Amount from the sender.
	Spender ids.ShortID `serialize:"true" json:"spender"`
	// Amount replaces the current allowance. Zero revokes it.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*ApproveTx) Type() TxType {
	return TxApprove
}

func (tx *ApproveTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.Spender == ids.ShortEmpty:
		return ErrZeroAddress
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *ApproveTx) Visit(visitor Visitor) error {
	return visitor.ApproveTx(tx)
}
