// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import "github.com/luxfi/ids"

// UnsignedTx is the payload of a governance chain transaction before it
// is signed.
type UnsignedTx interface {
	// SetBytes records the unsigned serialization of this transaction.
	SetBytes(unsignedBytes []byte)
	// Bytes returns the unsigned serialization, the signature preimage.
	Bytes() []byte

	// Type reports the concrete transaction type.
	Type() TxType
	// Sender returns the account that authorized this transaction.
	Sender() ids.ShortID

	// SyntacticVerify checks the stateless validity of this transaction.
	SyntacticVerify() error

	// Visit calls [visitor] with this transaction's concrete type.
	Visit(visitor Visitor) error
}
