// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*TransferOwnershipTx)(nil)

// TransferOwnershipTx hands chain ownership to another account. Only the
// current owner may issue it.
type TransferOwnershipTx struct {
	BaseTx `serialize:"true"`

	// NewOwner becomes the chain owner.
	NewOwner ids.ShortID `serialize:"true" json:"newOwner"`
}

func (*TransferOwnershipTx) Type() TxType {
	return TxTransferOwnership
}

func (tx *TransferOwnershipTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.NewOwner == ids.ShortEmpty:
		return ErrZeroAddress
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *TransferOwnershipTx) Visit(visitor Visitor) error {
	return visitor.TransferOwnershipTx(tx)
}
