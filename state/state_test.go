// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/utils"

	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/governance"
)

func newTestGenesis() *genesis.Genesis {
	allocations := []genesis.Allocation{
		{Address: ids.ShortID{1}, Balance: 1_000_000},
		{Address: ids.ShortID{2}, Balance: 500_000},
	}
	utils.Sort(allocations)
	return &genesis.Genesis{
		Timestamp:   1_700_000_000,
		Token:       genesis.Token{Name: "Governance Token", Symbol: "GOV", Denomination: 9},
		Allocations: allocations,
		Owner:       ids.ShortID{1},
		Params:      governance.DefaultParams(),
	}
}

func newInitializedState(t *testing.T) *State {
	require := require.New(t)

	s, err := New(memdb.New())
	require.NoError(err)

	initialized, err := s.Initialized()
	require.NoError(err)
	require.False(initialized)

	require.NoError(s.InitializeGenesis(newTestGenesis()))
	require.NoError(s.Commit())

	initialized, err = s.Initialized()
	require.NoError(err)
	require.True(initialized)
	return s
}

func TestStateGenesis(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	supply, err := s.GetTotalSupply()
	require.NoError(err)
	require.Equal(uint64(1_500_000), supply)

	owner, err := s.GetOwner()
	require.NoError(err)
	require.Equal(ids.ShortID{1}, owner)

	paused, err := s.IsPaused()
	require.NoError(err)
	require.False(paused)

	params, err := s.GetParams()
	require.NoError(err)
	require.Equal(governance.DefaultParams(), params)

	token, err := s.GetToken()
	require.NoError(err)
	require.Equal("GOV", token.Symbol)

	timestamp, err := s.GetTimestamp()
	require.NoError(err)
	require.Equal(time.Unix(1_700_000_000, 0), timestamp)

	balance, err := s.GetBalance(ids.ShortID{1})
	require.NoError(err)
	require.Equal(uint64(1_000_000), balance)

	// Genesis runs exactly once.
	err = s.InitializeGenesis(newTestGenesis())
	require.ErrorIs(err, errAlreadyInitialized)
}

func TestStateAccounts(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	addr := ids.ShortID{9}

	// Unknown accounts read as empty rather than erroring.
	account, err := s.GetAccount(addr)
	require.NoError(err)
	require.Zero(account.Balance)
	require.Zero(account.Nonce)

	account.Balance = 42
	account.Nonce = 1
	require.NoError(s.PutAccount(addr, account))

	got, err := s.GetAccount(addr)
	require.NoError(err)
	require.Equal(account, got)

	// The returned account is a copy, not a cache alias.
	got.Balance = 0
	again, err := s.GetAccount(addr)
	require.NoError(err)
	require.Equal(uint64(42), again.Balance)
}

func TestStateAllowances(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	owner := ids.ShortID{1}
	spender := ids.ShortID{2}

	allowance, err := s.GetAllowance(owner, spender)
	require.NoError(err)
	require.Zero(allowance)

	require.NoError(s.PutAllowance(owner, spender, 100))
	allowance, err = s.GetAllowance(owner, spender)
	require.NoError(err)
	require.Equal(uint64(100), allowance)

	// The reverse direction is a distinct approval.
	allowance, err = s.GetAllowance(spender, owner)
	require.NoError(err)
	require.Zero(allowance)

	// Setting zero deletes the row.
	require.NoError(s.PutAllowance(owner, spender, 0))
	allowance, err = s.GetAllowance(owner, spender)
	require.NoError(err)
	require.Zero(allowance)
}

func TestStatePaused(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	require.NoError(s.SetPaused(true))
	paused, err := s.IsPaused()
	require.NoError(err)
	require.True(paused)

	require.NoError(s.SetPaused(false))
	paused, err = s.IsPaused()
	require.NoError(err)
	require.False(paused)

	// Unpausing an unpaused chain is a no-op.
	require.NoError(s.SetPaused(false))
}

func TestStateBlocks(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	blkID := ids.GenerateTestID()
	blkBytes := []byte{0, 1, 2, 3}
	require.NoError(s.PutBlock(blkID, 7, blkBytes))
	require.NoError(s.SetLastAccepted(blkID))
	require.NoError(s.Commit())

	gotBytes, err := s.GetBlock(blkID)
	require.NoError(err)
	require.Equal(blkBytes, gotBytes)

	gotID, err := s.GetBlockIDAtHeight(7)
	require.NoError(err)
	require.Equal(blkID, gotID)

	_, err = s.GetBlockIDAtHeight(8)
	require.ErrorIs(err, database.ErrNotFound)

	lastAccepted, err := s.GetLastAccepted()
	require.NoError(err)
	require.Equal(blkID, lastAccepted)
}

func TestStateTxs(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	txID := ids.GenerateTestID()
	txBytes := []byte{4, 5, 6}
	require.NoError(s.PutTx(txID, txBytes))

	gotBytes, err := s.GetTx(txID)
	require.NoError(err)
	require.Equal(txBytes, gotBytes)

	_, err = s.GetTx(ids.GenerateTestID())
	require.ErrorIs(err, database.ErrNotFound)
}

func TestStateAbort(t *testing.T) {
	require := require.New(t)
	s := newInitializedState(t)

	addr := ids.ShortID{1}
	account, err := s.GetAccount(addr)
	require.NoError(err)
	require.Equal(uint64(1_000_000), account.Balance)

	account.Balance = 0
	require.NoError(s.PutAccount(addr, account))
	require.NoError(s.SetPaused(true))

	require.NoError(s.Abort())

	// Uncommitted writes are gone, including cached ones.
	got, err := s.GetAccount(addr)
	require.NoError(err)
	require.Equal(uint64(1_000_000), got.Balance)

	paused, err := s.IsPaused()
	require.NoError(err)
	require.False(paused)
}

func TestStateCommitPersists(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	s, err := New(db)
	require.NoError(err)
	require.NoError(s.InitializeGenesis(newTestGenesis()))
	require.NoError(s.Commit())

	addr := ids.ShortID{3}
	require.NoError(s.PutAccount(addr, &Account{Balance: 77, Nonce: 2}))
	require.NoError(s.Commit())
	require.NoError(s.Close())

	// Reopening over the same database sees the committed rows.
	reopened, err := New(db)
	require.NoError(err)
	defer func() {
		require.NoError(reopened.Close())
	}()

	account, err := reopened.GetAccount(addr)
	require.NoError(err)
	require.Equal(uint64(77), account.Balance)
	require.Equal(uint64(2), account.Nonce)

	supply, err := reopened.GetTotalSupply()
	require.NoError(err)
	require.Equal(uint64(1_500_000), supply)
}
