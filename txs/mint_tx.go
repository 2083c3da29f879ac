// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

var _ UnsignedTx = (*MintTx)(nil)

// MintTx creates new tokens. Only the chain owner may mint.
type MintTx struct {
	BaseTx `serialize:"true"`

	// To receives the minted tokens.
	To ids.ShortID `serialize:"true" json:"to"`
	// Amount of tokens to create.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (*MintTx) Type() TxType {
	return TxMint
}

func (tx *MintTx) SyntacticVerify() error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.To == ids.ShortEmpty:
		return ErrZeroAddress
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *MintTx) Visit(visitor Visitor) error {
	return visitor.MintTx(tx)
}
