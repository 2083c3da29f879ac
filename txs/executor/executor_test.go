// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/utils"

	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/governance"
	"github.com/luxfi/govvm/state"
	"github.com/luxfi/govvm/txs"
)

const genesisTime int64 = 1_700_000_000

var keys = secp256k1.TestKeys()

func newTestState(t *testing.T, params governance.Params) *state.State {
	require := require.New(t)

	allocations := []genesis.Allocation{
		{Address: keys[0].Address(), Balance: 1_000_000},
		{Address: keys[1].Address(), Balance: 500_000},
	}
	utils.Sort(allocations)

	g := &genesis.Genesis{
		Timestamp:   genesisTime,
		Token:       genesis.Token{Name: "Governance Token", Symbol: "GOV", Denomination: 9},
		Allocations: allocations,
		Owner:       keys[0].Address(),
		Params:      params,
	}
	require.NoError(g.Validate())

	s, err := state.New(memdb.New())
	require.NoError(err)
	require.NoError(s.InitializeGenesis(g))
	require.NoError(s.Commit())

	t.Cleanup(func() {
		require.NoError(s.Close())
	})
	return s
}

// issue signs [unsigned] with [key] and applies it at [blockTime].
func issue(t *testing.T, s *state.State, blockTime int64, unsigned txs.UnsignedTx, key *secp256k1.PrivateKey) error {
	t.Helper()

	tx, err := txs.Sign(unsigned, key)
	require.NoError(t, err)
	require.NoError(t, tx.SyntacticVerify())
	return Execute(s, blockTime, tx)
}

// createProposal issues a proposal from [key] and returns its ID.
func createProposal(t *testing.T, s *state.State, key *secp256k1.PrivateKey, nonce uint64, start, end int64) ids.ID {
	t.Helper()

	tx, err := txs.Sign(&txs.CreateProposalTx{
		BaseTx:    txs.BaseTx{From: key.Address(), Nonce: nonce},
		Title:     "raise the validator cap",
		StartTime: start,
		EndTime:   end,
	}, key)
	require.NoError(t, err)
	require.NoError(t, Execute(s, genesisTime, tx))
	return tx.ID()
}

func TestExecuteTransfer(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	sender := keys[0].Address()
	recipient := keys[2].Address()

	require.NoError(issue(t, s, genesisTime, &txs.TransferTx{
		BaseTx: txs.BaseTx{From: sender, Nonce: 0},
		To:     recipient,
		Amount: 100_000,
	}, keys[0]))

	senderBalance, err := s.GetBalance(sender)
	require.NoError(err)
	require.Equal(uint64(900_000), senderBalance)

	recipientBalance, err := s.GetBalance(recipient)
	require.NoError(err)
	require.Equal(uint64(100_000), recipientBalance)

	account, err := s.GetAccount(sender)
	require.NoError(err)
	require.Equal(uint64(1), account.Nonce)

	// Replaying the consumed nonce fails.
	err = issue(t, s, genesisTime, &txs.TransferTx{
		BaseTx: txs.BaseTx{From: sender, Nonce: 0},
		To:     recipient,
		Amount: 1,
	}, keys[0])
	require.ErrorIs(err, ErrNonceMismatch)

	// Overdrafts fail and do not consume the nonce.
	err = issue(t, s, genesisTime, &txs.TransferTx{
		BaseTx: txs.BaseTx{From: sender, Nonce: 1},
		To:     recipient,
		Amount: 900_001,
	}, keys[0])
	require.ErrorIs(err, ErrInsufficientBalance)

	account, err = s.GetAccount(sender)
	require.NoError(err)
	require.Equal(uint64(1), account.Nonce)

	// A self-transfer moves nothing but still consumes the nonce.
	require.NoError(issue(t, s, genesisTime, &txs.TransferTx{
		BaseTx: txs.BaseTx{From: sender, Nonce: 1},
		To:     sender,
		Amount: 900_000,
	}, keys[0]))

	senderBalance, err = s.GetBalance(sender)
	require.NoError(err)
	require.Equal(uint64(900_000), senderBalance)

	account, err = s.GetAccount(sender)
	require.NoError(err)
	require.Equal(uint64(2), account.Nonce)
}

func TestExecuteApproveAndTransferFrom(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	owner := keys[0].Address()
	spender := keys[1].Address()
	recipient := keys[2].Address()

	require.NoError(issue(t, s, genesisTime, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{From: owner, Nonce: 0},
		Spender: spender,
		Amount:  300,
	}, keys[0]))

	allowance, err := s.GetAllowance(owner, spender)
	require.NoError(err)
	require.Equal(uint64(300), allowance)

	// Spending more than the allowance fails.
	err = issue(t, s, genesisTime, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{From: spender, Nonce: 0},
		Owner:  owner,
		To:     recipient,
		Amount: 301,
	}, keys[1])
	require.ErrorIs(err, ErrInsufficientAllowance)

	require.NoError(issue(t, s, genesisTime, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{From: spender, Nonce: 0},
		Owner:  owner,
		To:     recipient,
		Amount: 200,
	}, keys[1]))

	allowance, err = s.GetAllowance(owner, spender)
	require.NoError(err)
	require.Equal(uint64(100), allowance)

	ownerBalance, err := s.GetBalance(owner)
	require.NoError(err)
	require.Equal(uint64(999_800), ownerBalance)

	recipientBalance, err := s.GetBalance(recipient)
	require.NoError(err)
	require.Equal(uint64(200), recipientBalance)

	// Draining the exact remainder deletes the allowance row.
	require.NoError(issue(t, s, genesisTime, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{From: spender, Nonce: 1},
		Owner:  owner,
		To:     recipient,
		Amount: 100,
	}, keys[1]))

	allowance, err = s.GetAllowance(owner, spender)
	require.NoError(err)
	require.Zero(allowance)

	// An allowance does not cover more than the owner holds.
	require.NoError(issue(t, s, genesisTime, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{From: owner, Nonce: 1},
		Spender: spender,
		Amount:  math.MaxUint64,
	}, keys[0]))

	err = issue(t, s, genesisTime, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{From: spender, Nonce: 2},
		Owner:  owner,
		To:     recipient,
		Amount: 999_701,
	}, keys[1])
	require.ErrorIs(err, ErrInsufficientBalance)
}

func TestExecuteMintAndBurn(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	owner := keys[0].Address()
	holder := keys[1].Address()

	// Only the owner mints.
	err := issue(t, s, genesisTime, &txs.MintTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 0},
		To:     holder,
		Amount: 1,
	}, keys[1])
	require.ErrorIs(err, ErrUnauthorized)

	require.NoError(issue(t, s, genesisTime, &txs.MintTx{
		BaseTx: txs.BaseTx{From: owner, Nonce: 0},
		To:     holder,
		Amount: 250_000,
	}, keys[0]))

	supply, err := s.GetTotalSupply()
	require.NoError(err)
	require.Equal(uint64(1_750_000), supply)

	holderBalance, err := s.GetBalance(holder)
	require.NoError(err)
	require.Equal(uint64(750_000), holderBalance)

	// Minting past the uint64 supply cap fails.
	err = issue(t, s, genesisTime, &txs.MintTx{
		BaseTx: txs.BaseTx{From: owner, Nonce: 1},
		To:     owner,
		Amount: math.MaxUint64,
	}, keys[0])
	require.ErrorIs(err, ErrAmountOverflow)

	// Holders burn their own tokens.
	require.NoError(issue(t, s, genesisTime, &txs.BurnTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 1},
		Amount: 750_000,
	}, keys[1]))

	supply, err = s.GetTotalSupply()
	require.NoError(err)
	require.Equal(uint64(1_000_000), supply)

	holderBalance, err = s.GetBalance(holder)
	require.NoError(err)
	require.Zero(holderBalance)

	err = issue(t, s, genesisTime, &txs.BurnTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 2},
		Amount: 1,
	}, keys[1])
	require.ErrorIs(err, ErrInsufficientBalance)
}

func TestExecutePause(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	owner := keys[0].Address()
	holder := keys[1].Address()

	// Only the owner pauses.
	err := issue(t, s, genesisTime, &txs.SetPausedTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 0},
		Paused: true,
	}, keys[1])
	require.ErrorIs(err, ErrUnauthorized)

	require.NoError(issue(t, s, genesisTime, &txs.SetPausedTx{
		BaseTx: txs.BaseTx{From: owner, Nonce: 0},
		Paused: true,
	}, keys[0]))

	// Token movements are rejected while paused.
	err = issue(t, s, genesisTime, &txs.TransferTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 0},
		To:     owner,
		Amount: 1,
	}, keys[1])
	require.ErrorIs(err, ErrPaused)

	err = issue(t, s, genesisTime, &txs.MintTx{
		BaseTx: txs.BaseTx{From: owner, Nonce: 1},
		To:     owner,
		Amount: 1,
	}, keys[0])
	require.ErrorIs(err, ErrPaused)

	err = issue(t, s, genesisTime, &txs.BurnTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 0},
		Amount: 1,
	}, keys[1])
	require.ErrorIs(err, ErrPaused)

	// Approvals and governance are not token movements.
	require.NoError(issue(t, s, genesisTime, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{From: holder, Nonce: 0},
		Spender: owner,
		Amount:  10,
	}, keys[1]))

	proposalID := createProposal(t, s, keys[1], 1, genesisTime+100, genesisTime+100+3_600)
	require.NotEqual(ids.Empty, proposalID)

	// The owner unpauses and transfers flow again.
	require.NoError(issue(t, s, genesisTime, &txs.SetPausedTx{
		BaseTx: txs.BaseTx{From: owner, Nonce: 1},
		Paused: false,
	}, keys[0]))

	require.NoError(issue(t, s, genesisTime, &txs.TransferTx{
		BaseTx: txs.BaseTx{From: holder, Nonce: 2},
		To:     owner,
		Amount: 1,
	}, keys[1]))
}

func TestExecuteTransferOwnership(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	oldOwner := keys[0].Address()
	newOwner := keys[1].Address()

	err := issue(t, s, genesisTime, &txs.TransferOwnershipTx{
		BaseTx:   txs.BaseTx{From: newOwner, Nonce: 0},
		NewOwner: newOwner,
	}, keys[1])
	require.ErrorIs(err, ErrUnauthorized)

	require.NoError(issue(t, s, genesisTime, &txs.TransferOwnershipTx{
		BaseTx:   txs.BaseTx{From: oldOwner, Nonce: 0},
		NewOwner: newOwner,
	}, keys[0]))

	owner, err := s.GetOwner()
	require.NoError(err)
	require.Equal(newOwner, owner)

	// The old owner lost its privileges.
	err = issue(t, s, genesisTime, &txs.MintTx{
		BaseTx: txs.BaseTx{From: oldOwner, Nonce: 1},
		To:     oldOwner,
		Amount: 1,
	}, keys[0])
	require.ErrorIs(err, ErrUnauthorized)

	require.NoError(issue(t, s, genesisTime, &txs.MintTx{
		BaseTx: txs.BaseTx{From: newOwner, Nonce: 0},
		To:     newOwner,
		Amount: 1,
	}, keys[1]))
}

func TestExecuteCreateProposal(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	start := genesisTime + 100
	end := start + 3_600

	proposalID := createProposal(t, s, keys[0], 0, start, end)

	proposal, err := s.GetProposal(proposalID)
	require.NoError(err)
	require.Equal(governance.StatusPending, proposal.Status)
	require.Equal(keys[0].Address(), proposal.Proposer)
	require.Equal([]ids.ID{proposalID}, mustActiveIDs(t, s))

	// A window opening at the block time starts Active.
	immediateID := createProposal(t, s, keys[0], 1, genesisTime, genesisTime+3_600)
	proposal, err = s.GetProposal(immediateID)
	require.NoError(err)
	require.Equal(governance.StatusActive, proposal.Status)

	// Windows may not start in the past.
	err = issue(t, s, genesisTime, &txs.CreateProposalTx{
		BaseTx:    txs.BaseTx{From: keys[0].Address(), Nonce: 2},
		Title:     "late",
		StartTime: genesisTime - 1,
		EndTime:   genesisTime + 3_600,
	}, keys[0])
	require.ErrorIs(err, ErrInvalidVotingPeriod)

	// Windows must respect the configured length bounds.
	err = issue(t, s, genesisTime, &txs.CreateProposalTx{
		BaseTx:    txs.BaseTx{From: keys[0].Address(), Nonce: 2},
		Title:     "short",
		StartTime: start,
		EndTime:   start + 3_599,
	}, keys[0])
	require.ErrorIs(err, ErrInvalidVotingPeriod)

	err = issue(t, s, genesisTime, &txs.CreateProposalTx{
		BaseTx:    txs.BaseTx{From: keys[0].Address(), Nonce: 2},
		Title:     "long",
		StartTime: start,
		EndTime:   start + 14*24*3_600 + 1,
	}, keys[0])
	require.ErrorIs(err, ErrInvalidVotingPeriod)
}

func TestExecuteProposalThreshold(t *testing.T) {
	require := require.New(t)

	params := governance.DefaultParams()
	params.ProposalThreshold = 600_000
	s := newTestState(t, params)

	// keys[1] holds 500k, below the 600k threshold.
	err := issue(t, s, genesisTime, &txs.CreateProposalTx{
		BaseTx:    txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		Title:     "underfunded",
		StartTime: genesisTime + 100,
		EndTime:   genesisTime + 100 + 3_600,
	}, keys[1])
	require.ErrorIs(err, ErrBelowProposalThreshold)

	// keys[0] holds 1m and may propose.
	proposalID := createProposal(t, s, keys[0], 0, genesisTime+100, genesisTime+100+3_600)
	require.NotEqual(ids.Empty, proposalID)
}

func TestExecuteCastVote(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	start := genesisTime + 100
	end := start + 3_600
	proposalID := createProposal(t, s, keys[0], 0, start, end)

	// Voting before the window opens is rejected.
	err := issue(t, s, start-1, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 1},
		ProposalID: proposalID,
		Choice:     governance.VoteFor,
	}, keys[0])
	require.ErrorIs(err, ErrVotingClosed)

	// A vote inside the window counts the voter's balance.
	require.NoError(issue(t, s, start, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 1},
		ProposalID: proposalID,
		Choice:     governance.VoteFor,
	}, keys[0]))

	proposal, err := s.GetProposal(proposalID)
	require.NoError(err)
	require.Equal(governance.StatusActive, proposal.Status)
	require.Equal(uint64(1_000_000), proposal.ForWeight)
	require.Equal(uint32(1), proposal.ForVotes)

	// One vote per address.
	err = issue(t, s, start+1, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 2},
		ProposalID: proposalID,
		Choice:     governance.VoteAgainst,
	}, keys[0])
	require.ErrorIs(err, ErrAlreadyVoted)

	// Zero-balance voters carry no weight.
	err = issue(t, s, start+1, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[2].Address(), Nonce: 0},
		ProposalID: proposalID,
		Choice:     governance.VoteFor,
	}, keys[2])
	require.ErrorIs(err, ErrNoVoteWeight)

	// The window is half-open: a vote at the end time is rejected.
	err = issue(t, s, end, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		ProposalID: proposalID,
		Choice:     governance.VoteAgainst,
	}, keys[1])
	require.ErrorIs(err, ErrVotingClosed)

	// Unknown proposals surface the database miss.
	err = issue(t, s, start, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		ProposalID: ids.GenerateTestID(),
		Choice:     governance.VoteFor,
	}, keys[1])
	require.ErrorIs(err, database.ErrNotFound)

	// The recorded ballot matches the cast.
	vote, err := s.GetVote(proposalID, keys[0].Address())
	require.NoError(err)
	require.Equal(governance.VoteFor, vote.Choice)
	require.Equal(uint64(1_000_000), vote.Weight)
}

func TestExecuteFinalize(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	start := genesisTime + 100
	end := start + 3_600
	proposalID := createProposal(t, s, keys[0], 0, start, end)

	// 1m of 1.5m supply votes for: quorum and threshold both clear.
	require.NoError(issue(t, s, start, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 1},
		ProposalID: proposalID,
		Choice:     governance.VoteFor,
	}, keys[0]))

	// Finalizing before the window closes is rejected.
	err := issue(t, s, end-1, &txs.FinalizeProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		ProposalID: proposalID,
	}, keys[1])
	require.ErrorIs(err, ErrVotingNotEnded)

	// Anyone may finalize once it has.
	require.NoError(issue(t, s, end, &txs.FinalizeProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		ProposalID: proposalID,
	}, keys[1]))

	proposal, err := s.GetProposal(proposalID)
	require.NoError(err)
	require.Equal(governance.StatusPassed, proposal.Status)
	require.Empty(mustActiveIDs(t, s))

	// Finalizing twice is rejected.
	err = issue(t, s, end, &txs.FinalizeProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 1},
		ProposalID: proposalID,
	}, keys[1])
	require.ErrorIs(err, ErrProposalSettled)
}

func TestExecuteFinalizeFails(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	start := genesisTime + 100
	end := start + 3_600

	// A proposal nobody votes on misses quorum and fails.
	quietID := createProposal(t, s, keys[0], 0, start, end)
	require.NoError(issue(t, s, end, &txs.FinalizeProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		ProposalID: quietID,
	}, keys[1]))

	proposal, err := s.GetProposal(quietID)
	require.NoError(err)
	require.Equal(governance.StatusFailed, proposal.Status)

	// A majority against also fails, even with quorum met.
	start = end + 100
	end = start + 3_600
	lostID := createProposal(t, s, keys[0], 1, start, end)
	require.NoError(issue(t, s, start, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 1},
		ProposalID: lostID,
		Choice:     governance.VoteAgainst,
	}, keys[1]))
	require.NoError(issue(t, s, end, &txs.FinalizeProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 2},
		ProposalID: lostID,
	}, keys[1]))

	proposal, err = s.GetProposal(lostID)
	require.NoError(err)
	require.Equal(governance.StatusFailed, proposal.Status)
	require.Empty(mustActiveIDs(t, s))
}

func TestExecuteExecuteProposal(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	start := genesisTime + 100
	end := start + 3_600
	proposalID := createProposal(t, s, keys[0], 0, start, end)

	// Executing before finalization is rejected.
	err := issue(t, s, start, &txs.ExecuteProposalTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 1},
		ProposalID: proposalID,
	}, keys[0])
	require.ErrorIs(err, ErrProposalNotPassed)

	require.NoError(issue(t, s, start, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 1},
		ProposalID: proposalID,
		Choice:     governance.VoteFor,
	}, keys[0]))
	require.NoError(issue(t, s, end, &txs.FinalizeProposalTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 2},
		ProposalID: proposalID,
	}, keys[0]))

	require.NoError(issue(t, s, end, &txs.ExecuteProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 0},
		ProposalID: proposalID,
	}, keys[1]))

	proposal, err := s.GetProposal(proposalID)
	require.NoError(err)
	require.Equal(governance.StatusExecuted, proposal.Status)
	require.True(proposal.Executed)

	// Executing twice is rejected.
	err = issue(t, s, end, &txs.ExecuteProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 1},
		ProposalID: proposalID,
	}, keys[1])
	require.ErrorIs(err, ErrProposalNotPassed)
}

func TestExecuteCancelProposal(t *testing.T) {
	require := require.New(t)
	s := newTestState(t, governance.DefaultParams())

	start := genesisTime + 100
	end := start + 3_600

	// The proposer cancels its own pending proposal.
	ownID := createProposal(t, s, keys[1], 0, start, end)
	require.NoError(issue(t, s, genesisTime, &txs.CancelProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 1},
		ProposalID: ownID,
	}, keys[1]))

	proposal, err := s.GetProposal(ownID)
	require.NoError(err)
	require.Equal(governance.StatusCancelled, proposal.Status)
	require.Empty(mustActiveIDs(t, s))

	// Third parties may not cancel.
	otherID := createProposal(t, s, keys[1], 2, start, end)
	err = issue(t, s, genesisTime, &txs.CancelProposalTx{
		BaseTx:     txs.BaseTx{From: keys[2].Address(), Nonce: 0},
		ProposalID: otherID,
	}, keys[2])
	require.ErrorIs(err, ErrUnauthorized)

	// The chain owner may cancel anyone's active proposal.
	require.NoError(issue(t, s, start, &txs.CancelProposalTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 0},
		ProposalID: otherID,
	}, keys[0]))

	// Votes on a cancelled proposal are rejected.
	err = issue(t, s, start, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{From: keys[0].Address(), Nonce: 1},
		ProposalID: otherID,
		Choice:     governance.VoteFor,
	}, keys[0])
	require.ErrorIs(err, ErrVotingClosed)

	// Settled proposals cannot be cancelled.
	err = issue(t, s, start, &txs.CancelProposalTx{
		BaseTx:     txs.BaseTx{From: keys[1].Address(), Nonce: 3},
		ProposalID: otherID,
	}, keys[1])
	require.ErrorIs(err, ErrProposalSettled)
}

func mustActiveIDs(t *testing.T, s *state.State) []ids.ID {
	t.Helper()

	active, err := s.ActiveProposalIDs()
	require.NoError(t, err)
	return active
}
