// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

var _ UnsignedTx = (*SetPausedTx)(nil)

// SetPausedTx pauses or unpauses the token ledger. Only the chain owner
// may issue it. While paused, token movements are rejected; governance
// operations continue.
type SetPausedTx struct {
	BaseTx `serialize:"true"`

	// Paused is the new pause state.
	Paused bool `serialize:"true" json:"paused"`
}

func (*SetPausedTx) Type() TxType {
	return TxSetPaused
}

func (tx *SetPausedTx) SyntacticVerify() error {
	if tx == nil {
		return ErrNilTx
	}
	return tx.BaseTx.SyntacticVerify()
}

func (tx *SetPausedTx) Visit(visitor Visitor) error {
	return visitor.SetPausedTx(tx)
}
