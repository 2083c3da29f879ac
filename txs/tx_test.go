// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"

	"github.com/luxfi/govvm/governance"
)

var keys = secp256k1.TestKeys()

func TestTxSignRoundTrip(t *testing.T) {
	require := require.New(t)

	key := keys[0]
	unsigned := &TransferTx{
		BaseTx: BaseTx{
			From:  key.Address(),
			Nonce: 7,
		},
		To:     keys[1].Address(),
		Amount: 100,
	}

	tx, err := Sign(unsigned, key)
	require.NoError(err)
	require.NoError(tx.SyntacticVerify())
	require.NotEqual(ids.Empty, tx.ID())

	parsed, err := Parse(tx.Bytes())
	require.NoError(err)
	require.NoError(parsed.SyntacticVerify())
	require.Equal(tx.ID(), parsed.ID())
	require.Equal(tx.Bytes(), parsed.Bytes())

	parsedTransfer, ok := parsed.Unsigned.(*TransferTx)
	require.True(ok)
	require.Equal(unsigned.From, parsedTransfer.From)
	require.Equal(unsigned.Nonce, parsedTransfer.Nonce)
	require.Equal(unsigned.To, parsedTransfer.To)
	require.Equal(unsigned.Amount, parsedTransfer.Amount)
}

func TestTxWrongSigner(t *testing.T) {
	require := require.New(t)

	// The declared sender is keys[0], but keys[1] signs.
	unsigned := &TransferTx{
		BaseTx: BaseTx{From: keys[0].Address()},
		To:     keys[1].Address(),
		Amount: 1,
	}

	tx, err := Sign(unsigned, keys[1])
	require.NoError(err)
	require.ErrorIs(tx.SyntacticVerify(), ErrWrongSigner)
}

func TestTxTamperedSignature(t *testing.T) {
	require := require.New(t)

	unsigned := &BurnTx{
		BaseTx: BaseTx{From: keys[0].Address()},
		Amount: 5,
	}
	tx, err := Sign(unsigned, keys[0])
	require.NoError(err)
	require.NoError(tx.SyntacticVerify())

	tx.Signature[0] ^= 0xff
	require.Error(tx.SyntacticVerify())
}

func TestTxParseInvalid(t *testing.T) {
	_, err := Parse([]byte{0x00, 0x01, 0x02})
	require.Error(t, err)
}

func TestAllTypesRegistered(t *testing.T) {
	sender := keys[0].Address()
	other := keys[1].Address()
	base := BaseTx{From: sender, Nonce: 1}

	unsignedTxs := []UnsignedTx{
		&TransferTx{BaseTx: base, To: other, Amount: 1},
		&ApproveTx{BaseTx: base, Spender: other, Amount: 1},
		&TransferFromTx{BaseTx: base, Owner: other, To: sender, Amount: 1},
		&MintTx{BaseTx: base, To: other, Amount: 1},
		&BurnTx{BaseTx: base, Amount: 1},
		&SetPausedTx{BaseTx: base, Paused: true},
		&TransferOwnershipTx{BaseTx: base, NewOwner: other},
		&CreateProposalTx{BaseTx: base, Title: "t", StartTime: 1, EndTime: 2},
		&CastVoteTx{BaseTx: base, ProposalID: ids.ID{1}, Choice: governance.VoteFor},
		&FinalizeProposalTx{BaseTx: base, ProposalID: ids.ID{1}},
		&ExecuteProposalTx{BaseTx: base, ProposalID: ids.ID{1}},
		&CancelProposalTx{BaseTx: base, ProposalID: ids.ID{1}},
	}
	for _, unsigned := range unsignedTxs {
		t.Run(unsigned.Type().String(), func(t *testing.T) {
			require := require.New(t)

			tx, err := Sign(unsigned, keys[0])
			require.NoError(err)
			require.NoError(tx.SyntacticVerify())

			parsed, err := Parse(tx.Bytes())
			require.NoError(err)
			require.Equal(unsigned.Type(), parsed.Unsigned.Type())
			require.Equal(sender, parsed.Unsigned.Sender())
		})
	}
}

func TestSyntacticVerifyErrors(t *testing.T) {
	sender := keys[0].Address()

	tests := []struct {
		name        string
		unsigned    UnsignedTx
		expectedErr error
	}{
		{
			name:        "transfer to zero address",
			unsigned:    &TransferTx{BaseTx: BaseTx{From: sender}, Amount: 1},
			expectedErr: ErrZeroAddress,
		},
		{
			name:        "transfer from empty sender",
			unsigned:    &TransferTx{To: keys[1].Address(), Amount: 1},
			expectedErr: ErrEmptySender,
		},
		{
			name:        "approve zero-address spender",
			unsigned:    &ApproveTx{BaseTx: BaseTx{From: sender}},
			expectedErr: ErrZeroAddress,
		},
		{
			name: "transferFrom zero-address owner",
			unsigned: &TransferFromTx{
				BaseTx: BaseTx{From: sender},
				To:     keys[1].Address(),
				Amount: 1,
			},
			expectedErr: ErrZeroAddress,
		},
		{
			name:        "mint to zero address",
			unsigned:    &MintTx{BaseTx: BaseTx{From: sender}, Amount: 1},
			expectedErr: ErrZeroAddress,
		},
		{
			name:        "ownership to zero address",
			unsigned:    &TransferOwnershipTx{BaseTx: BaseTx{From: sender}},
			expectedErr: ErrZeroAddress,
		},
		{
			name: "proposal without title",
			unsigned: &CreateProposalTx{
				BaseTx:    BaseTx{From: sender},
				StartTime: 1,
				EndTime:   2,
			},
			expectedErr: errEmptyTitle,
		},
		{
			name: "proposal with oversized title",
			unsigned: &CreateProposalTx{
				BaseTx:    BaseTx{From: sender},
				Title:     string(make([]byte, governance.MaxTitleLen+1)),
				StartTime: 1,
				EndTime:   2,
			},
			expectedErr: errTitleTooLong,
		},
		{
			name: "proposal window ends before it starts",
			unsigned: &CreateProposalTx{
				BaseTx:    BaseTx{From: sender},
				Title:     "t",
				StartTime: 2,
				EndTime:   2,
			},
			expectedErr: errInvalidWindow,
		},
		{
			name:        "vote on empty proposal ID",
			unsigned:    &CastVoteTx{BaseTx: BaseTx{From: sender}, Choice: governance.VoteFor},
			expectedErr: errEmptyProposalID,
		},
		{
			name: "vote with invalid choice",
			unsigned: &CastVoteTx{
				BaseTx:     BaseTx{From: sender},
				ProposalID: ids.ID{1},
				Choice:     governance.VoteChoice(9),
			},
			expectedErr: governance.ErrInvalidChoice,
		},
		{
			name:        "finalize empty proposal ID",
			unsigned:    &FinalizeProposalTx{BaseTx: BaseTx{From: sender}},
			expectedErr: errEmptyProposalID,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.ErrorIs(t, test.unsigned.SyntacticVerify(), test.expectedErr)
		})
	}
}

func TestTxTypeString(t *testing.T) {
	require := require.New(t)

	require.Equal("transfer", TxTransfer.String())
	require.Equal("cast_vote", TxCastVote.String())
	require.Equal("cancel_proposal", TxCancelProposal.String())
	require.Equal("unknown", TxType(200).String())
}
