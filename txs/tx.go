// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
)

var (
	ErrInvalidSignature = errors.New("invalid transaction signature")
	ErrWrongSigner      = errors.New("signature was not produced by the sender")
)

// Tx is a signed transaction. The signature is a recoverable secp256k1
// signature over the hash of the unsigned serialization.
type Tx struct {
	Unsigned  UnsignedTx                   `serialize:"true" json:"unsignedTx"`
	Signature [secp256k1.SignatureLen]byte `serialize:"true" json:"signature"`

	id    ids.ID
	bytes []byte
}

// Sign serializes [unsigned], signs it with [key], and returns the
// initialized transaction.
func Sign(unsigned UnsignedTx, key *secp256k1.PrivateKey) (*Tx, error) {
	unsignedBytes, err := Codec.Marshal(CodecVersion, &unsigned)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}

	sig, err := key.SignHash(hash.ComputeHash256(unsignedBytes))
	if err != nil {
		return nil, fmt.Errorf("couldn't sign tx: %w", err)
	}

	tx := &Tx{Unsigned: unsigned}
	copy(tx.Signature[:], sig)
	return tx, tx.Initialize()
}

// Parse deserializes a signed transaction from [signedBytes].
func Parse(signedBytes []byte) (*Tx, error) {
	tx := &Tx{}
	if _, err := Codec.Unmarshal(signedBytes, tx); err != nil {
		return nil, fmt.Errorf("couldn't parse tx: %w", err)
	}

	unsignedBytes, err := Codec.Marshal(CodecVersion, &tx.Unsigned)
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}
	tx.SetBytes(unsignedBytes, signedBytes)
	return tx, nil
}

// Initialize serializes this transaction and caches its ID and bytes.
func (tx *Tx) Initialize() error {
	unsignedBytes, err := Codec.Marshal(CodecVersion, &tx.Unsigned)
	if err != nil {
		return fmt.Errorf("couldn't marshal unsigned tx: %w", err)
	}

	signedBytes, err := Codec.Marshal(CodecVersion, tx)
	if err != nil {
		return fmt.Errorf("couldn't marshal tx: %w", err)
	}
	tx.SetBytes(unsignedBytes, signedBytes)
	return nil
}

// SetBytes records the serializations of this transaction. The ID is the
// hash of the signed serialization.
func (tx *Tx) SetBytes(unsignedBytes, signedBytes []byte) {
	tx.Unsigned.SetBytes(unsignedBytes)
	tx.bytes = signedBytes
	tx.id = hash.ComputeHash256Array(signedBytes)
}

// ID returns the unique identifier of this transaction.
func (tx *Tx) ID() ids.ID {
	return tx.id
}

// Bytes returns the signed serialization of this transaction.
func (tx *Tx) Bytes() []byte {
	return tx.bytes
}

// SyntacticVerify checks the stateless validity of this transaction,
// including that the signature recovers to the declared sender.
func (tx *Tx) SyntacticVerify() error {
	switch {
	case tx == nil, tx.Unsigned == nil:
		return ErrNilTx
	}

	if err := tx.Unsigned.SyntacticVerify(); err != nil {
		return err
	}

	pubKey, err := secp256k1.RecoverPublicKeyFromHash(
		hash.ComputeHash256(tx.Unsigned.Bytes()),
		tx.Signature[:],
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if pubKey.Address() != tx.Unsigned.Sender() {
		return ErrWrongSigner
	}
	return nil
}
