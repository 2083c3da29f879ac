// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package state persists the ledger and governance records of the
// governance VM. All mutations are staged on a versioned database; a block
// either commits its full diff or aborts it.
package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/btree"
	"github.com/luxfi/cache"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/governance"
)

const (
	accountCacheSize  = 8192
	proposalCacheSize = 2048
)

var (
	errAlreadyInitialized = errors.New("state is already initialized")

	AccountPrefix   = []byte("account")
	AllowancePrefix = []byte("allowance")
	ProposalPrefix  = []byte("proposal")
	VotePrefix      = []byte("vote")
	BlockPrefix     = []byte("block")
	BlockIDPrefix   = []byte("blockID")
	TxPrefix        = []byte("tx")
	SingletonPrefix = []byte("singleton")

	TotalSupplyKey     = []byte("total supply")
	OwnerKey           = []byte("owner")
	PausedKey          = []byte("paused")
	ParamsKey          = []byte("params")
	TokenKey           = []byte("token")
	ActiveProposalsKey = []byte("active proposals")
	TimestampKey       = []byte("timestamp")
	LastAcceptedKey    = []byte("last accepted")
	InitializedKey     = []byte("initialized")
)

// State is the durable record of the chain: token accounts and allowances,
// proposals and their ballots, the live-proposal set, and the block index.
type State struct {
	vdb *versiondb.Database

	accountDB   database.Database
	allowanceDB database.Database
	proposalDB  database.Database
	voteDB      database.Database
	blockDB     database.Database
	blockIDDB   database.Database
	txDB        database.Database
	singletonDB database.Database

	accountCache  *cache.LRU[ids.ShortID, Account]
	proposalCache *cache.LRU[ids.ID, governance.Proposal]

	// activeTree orders the live proposals by voting deadline. It mirrors
	// the stored live-proposal set and may include staged writes; it is
	// rebuilt whenever a diff is abandoned.
	activeTree *btree.BTreeG[activeEntry]
}

// New returns a State staged on top of [db]. Mutations are buffered until
// Commit is called; Abort discards them.
func New(db database.Database) (*State, error) {
	vdb := versiondb.New(db)
	s := &State{
		vdb:         vdb,
		accountDB:   prefixdb.New(AccountPrefix, vdb),
		allowanceDB: prefixdb.New(AllowancePrefix, vdb),
		proposalDB:  prefixdb.New(ProposalPrefix, vdb),
		voteDB:      prefixdb.New(VotePrefix, vdb),
		blockDB:     prefixdb.New(BlockPrefix, vdb),
		blockIDDB:   prefixdb.New(BlockIDPrefix, vdb),
		txDB:        prefixdb.New(TxPrefix, vdb),
		singletonDB: prefixdb.New(SingletonPrefix, vdb),

		accountCache:  &cache.LRU[ids.ShortID, Account]{Size: accountCacheSize},
		proposalCache: &cache.LRU[ids.ID, governance.Proposal]{Size: proposalCacheSize},

		activeTree: btree.NewG(2, activeEntryLess),
	}
	return s, s.rebuildActiveTree()
}

// Initialized reports whether the genesis has been written.
func (s *State) Initialized() (bool, error) {
	return s.singletonDB.Has(InitializedKey)
}

// InitializeGenesis writes the genesis allocations, token metadata, owner,
// and governance parameters. It fails if the state already holds a genesis.
func (s *State) InitializeGenesis(g *genesis.Genesis) error {
	initialized, err := s.Initialized()
	if err != nil {
		return err
	}
	if initialized {
		return errAlreadyInitialized
	}

	supply := uint64(0)
	for _, alloc := range g.Allocations {
		if err := s.PutAccount(alloc.Address, &Account{Balance: alloc.Balance}); err != nil {
			return err
		}
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return fmt.Errorf("genesis allocations overflow: %w", err)
		}
	}

	if err := s.SetTotalSupply(supply); err != nil {
		return err
	}
	if err := s.SetOwner(g.Owner); err != nil {
		return err
	}
	if err := s.SetParams(g.Params); err != nil {
		return err
	}
	if err := s.SetToken(&g.Token); err != nil {
		return err
	}
	if err := s.SetTimestamp(time.Unix(g.Timestamp, 0)); err != nil {
		return err
	}
	return s.singletonDB.Put(InitializedKey, nil)
}

// GetTotalSupply returns the sum of all balances.
func (s *State) GetTotalSupply() (uint64, error) {
	supply, err := database.GetUInt64(s.singletonDB, TotalSupplyKey)
	if err == database.ErrNotFound {
		return 0, nil
	}
	return supply, err
}

// SetTotalSupply stores the sum of all balances.
func (s *State) SetTotalSupply(supply uint64) error {
	return database.PutUInt64(s.singletonDB, TotalSupplyKey, supply)
}

// GetOwner returns the address allowed to mint, pause, and hand off
// ownership.
func (s *State) GetOwner() (ids.ShortID, error) {
	bytes, err := s.singletonDB.Get(OwnerKey)
	if err != nil {
		return ids.ShortEmpty, err
	}
	return ids.ToShortID(bytes)
}

// SetOwner stores the owning address.
func (s *State) SetOwner(owner ids.ShortID) error {
	return s.singletonDB.Put(OwnerKey, owner[:])
}

// IsPaused reports whether token movements are frozen.
func (s *State) IsPaused() (bool, error) {
	return s.singletonDB.Has(PausedKey)
}

// SetPaused freezes or unfreezes token movements.
func (s *State) SetPaused(paused bool) error {
	if paused {
		return s.singletonDB.Put(PausedKey, nil)
	}
	err := s.singletonDB.Delete(PausedKey)
	if err == database.ErrNotFound {
		return nil
	}
	return err
}

// GetParams returns the chain's governance parameters.
func (s *State) GetParams() (governance.Params, error) {
	bytes, err := s.singletonDB.Get(ParamsKey)
	if err != nil {
		return governance.Params{}, err
	}
	params := governance.Params{}
	if _, err := Codec.Unmarshal(bytes, &params); err != nil {
		return governance.Params{}, err
	}
	return params, nil
}

// SetParams stores the chain's governance parameters.
func (s *State) SetParams(params governance.Params) error {
	bytes, err := Codec.Marshal(codecVersion, &params)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(ParamsKey, bytes)
}

// GetToken returns the token metadata.
func (s *State) GetToken() (*genesis.Token, error) {
	bytes, err := s.singletonDB.Get(TokenKey)
	if err != nil {
		return nil, err
	}
	token := &genesis.Token{}
	if _, err := Codec.Unmarshal(bytes, token); err != nil {
		return nil, err
	}
	return token, nil
}

// SetToken stores the token metadata.
func (s *State) SetToken(token *genesis.Token) error {
	bytes, err := Codec.Marshal(codecVersion, token)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(TokenKey, bytes)
}

// GetTimestamp returns the chain time as of the last accepted block.
func (s *State) GetTimestamp() (time.Time, error) {
	return database.GetTimestamp(s.singletonDB, TimestampKey)
}

// SetTimestamp stores the chain time.
func (s *State) SetTimestamp(timestamp time.Time) error {
	return database.PutTimestamp(s.singletonDB, TimestampKey, timestamp)
}

// GetLastAccepted returns the ID of the last accepted block.
func (s *State) GetLastAccepted() (ids.ID, error) {
	return database.GetID(s.singletonDB, LastAcceptedKey)
}

// SetLastAccepted stores the ID of the last accepted block.
func (s *State) SetLastAccepted(blkID ids.ID) error {
	return database.PutID(s.singletonDB, LastAcceptedKey, blkID)
}

// PutBlock stores a serialized block and indexes its ID by height.
func (s *State) PutBlock(blkID ids.ID, height uint64, blkBytes []byte) error {
	if err := s.blockDB.Put(blkID[:], blkBytes); err != nil {
		return err
	}
	return database.PutID(s.blockIDDB, database.PackUInt64(height), blkID)
}

// GetBlock returns the serialized block [blkID].
func (s *State) GetBlock(blkID ids.ID) ([]byte, error) {
	return s.blockDB.Get(blkID[:])
}

// GetBlockIDAtHeight returns the ID of the accepted block at [height].
func (s *State) GetBlockIDAtHeight(height uint64) (ids.ID, error) {
	return database.GetID(s.blockIDDB, database.PackUInt64(height))
}

// PutTx indexes an accepted transaction by its ID.
func (s *State) PutTx(txID ids.ID, txBytes []byte) error {
	return s.txDB.Put(txID[:], txBytes)
}

// GetTx returns the serialized accepted transaction [txID].
func (s *State) GetTx(txID ids.ID) ([]byte, error) {
	return s.txDB.Get(txID[:])
}

// Commit flushes the staged diff to the underlying database.
func (s *State) Commit() error {
	return s.vdb.Commit()
}

// Abort abandons the staged diff. The caches and the deadline index may
// hold staged rows, so they are dropped and rebuilt from committed data.
func (s *State) Abort() error {
	s.vdb.Abort()
	s.accountCache = &cache.LRU[ids.ShortID, Account]{Size: accountCacheSize}
	s.proposalCache = &cache.LRU[ids.ID, governance.Proposal]{Size: proposalCacheSize}
	return s.rebuildActiveTree()
}

// Close releases the versioned database. The caller owns the underlying
// database.
func (s *State) Close() error {
	return s.vdb.Close()
}
