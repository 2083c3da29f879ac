// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package govvm implements the governance VM: a token ledger with an
// on-chain proposal and voting system.
//
// The package follows a functional architecture. All state transitions
// happen deterministically within block processing:
//   - ERC20-style balances, allowances, minting, and burning
//   - Token-weighted proposals with quorum and approval thresholds
//   - Owner-gated pausing and ownership handoff
//
// No background goroutines: every mutation is block-driven, so every node
// produces identical state from identical inputs.
package govvm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	consensusctx "github.com/luxfi/consensus/context"
	consensuscore "github.com/luxfi/consensus/core"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/luxfi/pubsub"
	"github.com/luxfi/version"
	"github.com/luxfi/vm/utils/timer/mockable"
	"github.com/luxfi/warp"

	"github.com/luxfi/govvm/config"
	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/metrics"
	"github.com/luxfi/govvm/state"
	"github.com/luxfi/govvm/txs"
	"github.com/luxfi/govvm/txs/executor"
)

var (
	// Version is the semantic version of the governance VM.
	Version = &version.Semantic{
		Major: 1,
		Minor: 0,
		Patch: 0,
	}

	errUnknownStateNum = errors.New("unknown state")
	errShutdown        = errors.New("VM is shutting down")
)

// VM is the functional core of the governance chain. It owns the chain
// state and applies blocks to it; the consensus surface lives on the
// ChainVM wrapper.
type VM struct {
	config.Config

	log log.Logger

	// Guards the chain state. Consensus drives mutations through
	// ProcessBlock; the API reads concurrently.
	lock sync.RWMutex

	consensusCtx *consensusctx.Context
	chainID      ids.ID
	networkID    uint32

	baseDB database.Database
	state  *state.State

	genesis *genesis.Genesis

	registerer metric.Registerer
	metrics    metrics.Metrics

	pubsub *pubsub.Server

	clock mockable.Clock

	appSender warp.Sender

	connectedPeers map[ids.NodeID]*version.Application

	bootstrapped  bool
	isInitialized bool
	shutdown      bool
}

// Initialize sets up the VM with the provided context, database, and
// genesis document. The genesis allocations are staged but not committed;
// the caller commits them together with the genesis block.
func (vm *VM) Initialize(
	ctx context.Context,
	consensusCtx interface{},
	dbManager interface{},
	genesisBytes []byte,
	upgradeBytes []byte,
	configBytes []byte,
	msgChan interface{},
	fxs []interface{},
	appSender interface{},
) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	chainCtx, ok := consensusCtx.(*consensusctx.Context)
	if !ok {
		return errors.New("invalid chain context type")
	}
	vm.consensusCtx = chainCtx
	vm.chainID = chainCtx.ChainID
	vm.networkID = chainCtx.NetworkID

	if vm.log == nil {
		vm.log = log.NewNoOpLogger()
	}
	if logger, ok := chainCtx.Log.(log.Logger); ok {
		vm.log = logger
	}

	db, ok := dbManager.(database.Database)
	if !ok {
		return errors.New("invalid database type")
	}
	vm.baseDB = db

	if appSender != nil {
		if sender, ok := appSender.(warp.Sender); ok {
			vm.appSender = sender
		}
	}

	// A chain config overrides whatever the factory installed; with
	// neither, the defaults apply.
	switch {
	case len(configBytes) > 0:
		cfg, err := config.ParseConfig(configBytes)
		if err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
		vm.Config = cfg
	case vm.Config == (config.Config{}):
		vm.Config = config.DefaultConfig
	default:
		if err := vm.Config.Verify(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}

	vm.registerer = metric.NewRegistry()
	vmMetrics, err := metrics.New(vm.registerer)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	vm.metrics = vmMetrics

	vm.pubsub = pubsub.New(vm.log)
	vm.connectedPeers = make(map[ids.NodeID]*version.Application)

	vm.state, err = state.New(vm.baseDB)
	if err != nil {
		return err
	}

	vm.genesis, err = genesis.Parse(genesisBytes)
	if err != nil {
		return fmt.Errorf("failed to parse genesis: %w", err)
	}

	initialized, err := vm.state.Initialized()
	if err != nil {
		return err
	}
	if !initialized {
		if err := vm.state.InitializeGenesis(vm.genesis); err != nil {
			return err
		}
	}

	vm.isInitialized = true
	vm.log.Info("governance VM initialized",
		log.Stringer("chainID", vm.chainID),
		log.Stringer("owner", vm.genesis.Owner),
		log.Int("allocations", len(vm.genesis.Allocations)),
	)
	return nil
}

// ProcessBlock applies [blk] to the chain state and commits the result.
// Transactions that fail against the chain state are dropped with a warning
// rather than failing the block; the executor validates before writing, so
// a dropped transaction stages nothing. The applied transactions are
// returned.
func (vm *VM) ProcessBlock(ctx context.Context, blk *Block) ([]*txs.Tx, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown {
		return nil, errShutdown
	}

	applied := make([]*txs.Tx, 0, len(blk.blockTxs))
	for _, tx := range blk.blockTxs {
		if err := executor.Execute(vm.state, blk.Tmstmp, tx); err != nil {
			vm.log.Warn("dropping failed transaction",
				log.Stringer("txID", tx.ID()),
				log.Stringer("blkID", blk.id),
				log.Err(err),
			)
			vm.metrics.IncTxSkipped()
			continue
		}
		applied = append(applied, tx)
	}

	if err := vm.stageBlock(blk, applied); err != nil {
		return nil, errors.Join(err, vm.state.Abort())
	}
	if err := vm.state.Commit(); err != nil {
		return nil, errors.Join(err, vm.state.Abort())
	}

	vm.notifyAccepted(blk, applied)
	return applied, nil
}

// stageBlock records the block, its applied transactions, the new chain
// time, and the last-accepted pointer on the pending diff.
func (vm *VM) stageBlock(blk *Block, applied []*txs.Tx) error {
	if err := vm.state.SetTimestamp(time.Unix(blk.Tmstmp, 0)); err != nil {
		return err
	}
	if err := vm.state.PutBlock(blk.id, blk.Hght, blk.bytes); err != nil {
		return err
	}
	if vm.Config.IndexTransactions {
		for _, tx := range applied {
			if err := vm.state.PutTx(tx.ID(), tx.Bytes()); err != nil {
				return err
			}
		}
	}
	return vm.state.SetLastAccepted(blk.id)
}

// notifyAccepted reports a committed block to the metrics and the event
// server. Failures here are observability losses, not consensus faults.
func (vm *VM) notifyAccepted(blk *Block, applied []*txs.Tx) {
	if err := vm.metrics.MarkBlockAccepted(blk.Hght, applied); err != nil {
		vm.log.Warn("failed to mark block accepted",
			log.Stringer("blkID", blk.id),
			log.Err(err),
		)
	}
	if supply, err := vm.state.GetTotalSupply(); err == nil {
		vm.metrics.SetTotalSupply(supply)
	}
	vm.metrics.SetActiveProposals(vm.state.NumActiveProposals())

	for _, tx := range applied {
		vm.pubsub.Publish(NewPubSubFilterer(tx))
	}
}

// FilterTxs executes [candidates] in order against the current chain state
// at [blockTime] and returns the survivors. The staged writes are
// abandoned; an accepted block re-applies its effects.
func (vm *VM) FilterTxs(blockTime int64, candidates []*txs.Tx) ([]*txs.Tx, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown {
		return nil, errShutdown
	}

	valid := make([]*txs.Tx, 0, len(candidates))
	for _, tx := range candidates {
		if err := executor.Execute(vm.state, blockTime, tx); err != nil {
			vm.log.Debug("dropping transaction from block template",
				log.Stringer("txID", tx.ID()),
				log.Err(err),
			)
			vm.metrics.IncTxSkipped()
			continue
		}
		valid = append(valid, tx)
	}
	return valid, vm.state.Abort()
}

// SetState transitions the VM between bootstrapping and normal operation.
func (vm *VM) SetState(ctx context.Context, stateNum uint32) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	switch consensusState := consensuscore.State(stateNum); consensusState {
	case consensuscore.Bootstrapping:
		vm.bootstrapped = false
		vm.log.Info("governance VM entering bootstrap state")
		return nil
	case consensuscore.Ready:
		vm.bootstrapped = true
		vm.log.Info("governance VM entering ready state")
		return nil
	default:
		return fmt.Errorf("%w: %d", errUnknownStateNum, stateNum)
	}
}

// Shutdown releases the chain state and the underlying database.
func (vm *VM) Shutdown(context.Context) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if vm.shutdown || vm.state == nil {
		return nil
	}
	vm.shutdown = true

	return errors.Join(
		vm.state.Close(),
		vm.baseDB.Close(),
	)
}

// Version returns the semantic version of the VM.
func (*VM) Version(context.Context) (string, error) {
	return Version.String(), nil
}

// HealthCheck reports liveness and a summary of the chain state.
func (vm *VM) HealthCheck(context.Context) (interface{}, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	lastAccepted, err := vm.state.GetLastAccepted()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"healthy":         vm.isInitialized && !vm.shutdown,
		"bootstrapped":    vm.bootstrapped,
		"lastAcceptedID":  lastAccepted.String(),
		"activeProposals": vm.state.NumActiveProposals(),
	}, nil
}

// Connected tracks a newly reachable peer.
func (vm *VM) Connected(ctx context.Context, nodeID ids.NodeID, v *version.Application) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	vm.connectedPeers[nodeID] = v
	return nil
}

// Disconnected forgets an unreachable peer.
func (vm *VM) Disconnected(ctx context.Context, nodeID ids.NodeID) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	delete(vm.connectedPeers, nodeID)
	return nil
}

// State exposes the chain state to the API service.
func (vm *VM) State() *state.State {
	return vm.state
}

// Genesis returns the parsed genesis document.
func (vm *VM) Genesis() *genesis.Genesis {
	return vm.genesis
}

// AppGossip handles gossiped messages from peers.
func (vm *VM) AppGossip(ctx context.Context, nodeID ids.NodeID, msg []byte) error {
	return nil
}

// AppRequest handles direct requests from peers.
func (vm *VM) AppRequest(ctx context.Context, nodeID ids.NodeID, requestID uint32, deadline time.Time, request []byte) error {
	return nil
}

// AppRequestFailed handles failed requests to peers.
func (vm *VM) AppRequestFailed(ctx context.Context, nodeID ids.NodeID, requestID uint32, appErr *consensuscore.AppError) error {
	return nil
}

// AppResponse handles responses from peers.
func (vm *VM) AppResponse(ctx context.Context, nodeID ids.NodeID, requestID uint32, response []byte) error {
	return nil
}

// CrossChainAppRequest handles requests from other chains.
func (vm *VM) CrossChainAppRequest(ctx context.Context, chainID ids.ID, requestID uint32, deadline time.Time, request []byte) error {
	return nil
}

// CrossChainAppRequestFailed handles failed requests to other chains.
func (vm *VM) CrossChainAppRequestFailed(ctx context.Context, chainID ids.ID, requestID uint32, appErr *consensuscore.AppError) error {
	return nil
}

// CrossChainAppResponse handles responses from other chains.
func (vm *VM) CrossChainAppResponse(ctx context.Context, chainID ids.ID, requestID uint32, response []byte) error {
	return nil
}
