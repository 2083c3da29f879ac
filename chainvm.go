// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/rpc/v2"

	consensuscore "github.com/luxfi/consensus/core"
	"github.com/luxfi/consensus/engine/chain/block"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/math/set"
	"github.com/luxfi/version"
	luxvm "github.com/luxfi/vm"
	"github.com/luxfi/vm/utils/json"

	"github.com/luxfi/govvm/api"
	"github.com/luxfi/govvm/txs"
)

var _ block.ChainVM = (*ChainVM)(nil)

var (
	errVMNotInitialized = errors.New("VM not initialized")
	errBlockNotFound    = errors.New("block not found")
	errNoPendingTxs     = errors.New("no transactions to include")
	errTxInMempool      = errors.New("transaction is already in the mempool")
	errMempoolFull      = errors.New("mempool is full")
)

// ChainVM wraps the functional governance VM to implement the block.ChainVM
// interface required for running under the consensus engine.
type ChainVM struct {
	inner *VM

	log log.Logger

	// Guards the block index, the mempool, and the chain tip.
	lock sync.RWMutex

	// Blocks that passed verification but are not yet decided.
	verifiedBlocks map[ids.ID]*Block

	lastAccepted *Block
	preferredID  ids.ID

	// Pending transactions in submission order.
	mempool    []*txs.Tx
	mempoolIDs set.Set[ids.ID]

	// Channel to notify consensus of pending work.
	toEngine chan<- luxvm.Message

	initialized bool
}

// NewChainVM creates a ChainVM around a fresh functional VM.
func NewChainVM(logger log.Logger) *ChainVM {
	return &ChainVM{
		inner:          &VM{log: logger},
		log:            logger,
		verifiedBlocks: make(map[ids.ID]*Block),
		mempoolIDs:     set.NewSet[ids.ID](0),
	}
}

// Initialize implements the block.ChainVM interface. It initializes the
// inner VM and then loads the chain tip, creating the genesis block when
// the database is fresh.
func (vm *ChainVM) Initialize(
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

	switch ch := msgChan.(type) {
	case chan luxvm.Message:
		vm.toEngine = ch
	case chan<- luxvm.Message:
		vm.toEngine = ch
	}

	if err := vm.inner.Initialize(
		ctx,
		consensusCtx,
		dbManager,
		genesisBytes,
		upgradeBytes,
		configBytes,
		msgChan,
		fxs,
		appSender,
	); err != nil {
		return err
	}
	vm.log = vm.inner.log

	lastAcceptedID, err := vm.inner.state.GetLastAccepted()
	switch {
	case err == nil:
		blkBytes, err := vm.inner.state.GetBlock(lastAcceptedID)
		if err != nil {
			return fmt.Errorf("failed to load last accepted block: %w", err)
		}
		blk, err := parseBlock(vm, blkBytes)
		if err != nil {
			return fmt.Errorf("failed to parse last accepted block: %w", err)
		}
		blk.status = StatusAccepted
		vm.lastAccepted = blk
		vm.preferredID = blk.id

	case errors.Is(err, database.ErrNotFound):
		genesisBlk, err := newBlock(vm, ids.Empty, 0, vm.inner.genesis.Timestamp, nil)
		if err != nil {
			return fmt.Errorf("failed to build genesis block: %w", err)
		}
		genesisBlk.status = StatusAccepted
		if err := vm.inner.state.PutBlock(genesisBlk.id, 0, genesisBlk.bytes); err != nil {
			return err
		}
		if err := vm.inner.state.SetLastAccepted(genesisBlk.id); err != nil {
			return err
		}
		// Commits the genesis allocations staged by the inner VM together
		// with the genesis block.
		if err := vm.inner.state.Commit(); err != nil {
			return errors.Join(err, vm.inner.state.Abort())
		}
		vm.lastAccepted = genesisBlk
		vm.preferredID = genesisBlk.id
		vm.log.Info("committed genesis block",
			log.Stringer("blkID", genesisBlk.id),
		)

	default:
		return err
	}

	vm.initialized = true
	vm.log.Info("governance chain initialized",
		log.Stringer("lastAcceptedID", vm.preferredID),
		log.Uint64("height", vm.lastAccepted.Hght),
	)
	return nil
}

// SubmitTx admits a transaction to the mempool and notifies consensus that
// a block can be built. The transaction must already be signed; semantic
// checks run at block building and acceptance.
func (vm *ChainVM) SubmitTx(tx *txs.Tx) error {
	if err := tx.SyntacticVerify(); err != nil {
		return err
	}

	vm.lock.Lock()
	defer vm.lock.Unlock()

	if !vm.initialized {
		return errVMNotInitialized
	}

	txID := tx.ID()
	if vm.mempoolIDs.Contains(txID) {
		return errTxInMempool
	}
	if vm.mempoolIDs.Len() >= vm.inner.Config.MempoolSize {
		return errMempoolFull
	}

	vm.mempool = append(vm.mempool, tx)
	vm.mempoolIDs.Add(txID)
	vm.inner.metrics.IncTxSubmitted()

	vm.notifyPendingTxs()
	return nil
}

// notifyPendingTxs signals the consensus engine that a block can be built.
// The caller holds the lock.
func (vm *ChainVM) notifyPendingTxs() {
	if vm.toEngine == nil {
		return
	}
	select {
	case vm.toEngine <- luxvm.Message{Type: luxvm.PendingTxs}:
	default:
		// The engine already has a pending notification.
	}
}

// BuildBlock implements the block.ChainVM interface. It drains up to
// MaxTxsPerBlock pending transactions, drops the ones that no longer apply
// to the preferred state, and bundles the survivors into a block.
func (vm *ChainVM) BuildBlock(ctx context.Context) (block.Block, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if !vm.initialized {
		return nil, errVMNotInitialized
	}

	parent, err := vm.getBlock(vm.preferredID)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferred block: %w", err)
	}

	timestamp := vm.inner.clock.Time().Unix()
	if timestamp < parent.Tmstmp {
		timestamp = parent.Tmstmp
	}

	candidates := vm.popTxs(vm.inner.Config.MaxTxsPerBlock)
	if len(candidates) == 0 {
		return nil, errNoPendingTxs
	}

	valid, err := vm.inner.FilterTxs(timestamp, candidates)
	if err != nil {
		return nil, err
	}
	if len(valid) == 0 {
		return nil, errNoPendingTxs
	}

	signedTxs := make([][]byte, len(valid))
	for i, tx := range valid {
		signedTxs[i] = tx.Bytes()
	}

	blk, err := newBlock(vm, parent.id, parent.Hght+1, timestamp, signedTxs)
	if err != nil {
		return nil, err
	}
	blk.blockTxs = valid

	vm.log.Debug("built block",
		log.Stringer("blkID", blk.id),
		log.Uint64("height", blk.Hght),
		log.Int("txs", len(valid)),
	)
	return blk, nil
}

// popTxs removes and returns up to [maxTxs] pending transactions in
// submission order.
func (vm *ChainVM) popTxs(maxTxs int) []*txs.Tx {
	popped := make([]*txs.Tx, 0, maxTxs)
	for len(vm.mempool) > 0 && len(popped) < maxTxs {
		tx := vm.mempool[0]
		vm.mempool = vm.mempool[1:]
		txID := tx.ID()
		// Skip entries that were dropped when a block was accepted.
		if !vm.mempoolIDs.Contains(txID) {
			continue
		}
		vm.mempoolIDs.Remove(txID)
		popped = append(popped, tx)
	}
	return popped
}

// dropFromMempool removes accepted transactions from the pending set. The
// caller holds the lock.
func (vm *ChainVM) dropFromMempool(blockTxs []*txs.Tx) {
	for _, tx := range blockTxs {
		vm.mempoolIDs.Remove(tx.ID())
	}
}

// ParseBlock implements the block.ChainVM interface.
func (vm *ChainVM) ParseBlock(ctx context.Context, blkBytes []byte) (block.Block, error) {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	blk, err := parseBlock(vm, blkBytes)
	if err != nil {
		return nil, err
	}
	if existing, ok := vm.verifiedBlocks[blk.id]; ok {
		return existing, nil
	}
	if vm.lastAccepted != nil && vm.lastAccepted.id == blk.id {
		return vm.lastAccepted, nil
	}
	return blk, nil
}

// GetBlock implements the block.ChainVM interface.
func (vm *ChainVM) GetBlock(ctx context.Context, blkID ids.ID) (block.Block, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.getBlock(blkID)
}

// getBlock looks a block up in the undecided set, the chain tip, and
// finally the accepted block index. The caller holds the lock.
func (vm *ChainVM) getBlock(blkID ids.ID) (*Block, error) {
	if blk, ok := vm.verifiedBlocks[blkID]; ok {
		return blk, nil
	}
	if vm.lastAccepted != nil && vm.lastAccepted.id == blkID {
		return vm.lastAccepted, nil
	}

	blkBytes, err := vm.inner.state.GetBlock(blkID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errBlockNotFound
	}
	if err != nil {
		return nil, err
	}
	blk, err := parseBlock(vm, blkBytes)
	if err != nil {
		return nil, err
	}
	blk.status = StatusAccepted
	return blk, nil
}

// SetPreference implements the block.ChainVM interface.
func (vm *ChainVM) SetPreference(ctx context.Context, blkID ids.ID) error {
	vm.lock.Lock()
	defer vm.lock.Unlock()

	if _, err := vm.getBlock(blkID); err != nil {
		return fmt.Errorf("%w: %s", errBlockNotFound, blkID)
	}
	vm.preferredID = blkID
	return nil
}

// LastAccepted implements the block.ChainVM interface.
func (vm *ChainVM) LastAccepted(context.Context) (ids.ID, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if vm.lastAccepted == nil {
		return ids.Empty, errVMNotInitialized
	}
	return vm.lastAccepted.id, nil
}

// GetBlockIDAtHeight implements the consensus height index. Only accepted
// blocks are indexed.
func (vm *ChainVM) GetBlockIDAtHeight(ctx context.Context, height uint64) (ids.ID, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	return vm.inner.state.GetBlockIDAtHeight(height)
}

// WaitForEvent implements the block.ChainVM interface. Pending work is
// signalled through the toEngine channel by SubmitTx.
func (vm *ChainVM) WaitForEvent(ctx context.Context) (interface{}, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// CreateHandlers exposes the JSON-RPC service and the event stream.
func (vm *ChainVM) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	handlers := map[string]http.Handler{}
	if !vm.inner.Config.APIEnabled {
		vm.inner.log.Info("chain API is disabled")
		return handlers, nil
	}

	codec := json.NewCodec()

	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(codec, "application/json")
	rpcServer.RegisterCodec(codec, "application/json;charset=UTF-8")
	rpcServer.RegisterInterceptFunc(vm.inner.metrics.InterceptRequest)
	rpcServer.RegisterAfterFunc(vm.inner.metrics.AfterRequest)
	if err := rpcServer.RegisterService(api.NewService(vm), "govvm"); err != nil {
		return nil, err
	}

	handlers[""] = rpcServer
	if vm.inner.Config.PubSubEnabled {
		handlers["/events"] = vm.inner.pubsub
	}
	return handlers, nil
}

// NewHTTPHandler implements the block.ChainVM interface.
func (vm *ChainVM) NewHTTPHandler(ctx context.Context) (interface{}, error) {
	return vm.CreateHandlers(ctx)
}

// CreateStaticHandlers implements the common VM interface.
func (vm *ChainVM) CreateStaticHandlers(context.Context) (map[string]http.Handler, error) {
	return nil, nil
}

// HealthCheck implements the common VM interface.
func (vm *ChainVM) HealthCheck(ctx context.Context) (interface{}, error) {
	return vm.inner.HealthCheck(ctx)
}

// SetState implements the common VM interface.
func (vm *ChainVM) SetState(ctx context.Context, stateNum uint32) error {
	return vm.inner.SetState(ctx, stateNum)
}

// Shutdown implements the common VM interface.
func (vm *ChainVM) Shutdown(ctx context.Context) error {
	return vm.inner.Shutdown(ctx)
}

// Version implements the common VM interface.
func (vm *ChainVM) Version(ctx context.Context) (string, error) {
	return vm.inner.Version(ctx)
}

// Connected implements the common VM interface.
func (vm *ChainVM) Connected(ctx context.Context, nodeID ids.NodeID, v interface{}) error {
	if ver, ok := v.(*version.Application); ok {
		return vm.inner.Connected(ctx, nodeID, ver)
	}
	return nil
}

// Disconnected implements the common VM interface.
func (vm *ChainVM) Disconnected(ctx context.Context, nodeID ids.NodeID) error {
	return vm.inner.Disconnected(ctx, nodeID)
}

// AppGossip implements the common VM interface.
func (vm *ChainVM) AppGossip(ctx context.Context, nodeID ids.NodeID, msg []byte) error {
	return vm.inner.AppGossip(ctx, nodeID, msg)
}

// AppRequest implements the common VM interface.
func (vm *ChainVM) AppRequest(ctx context.Context, nodeID ids.NodeID, requestID uint32, deadline time.Time, request []byte) error {
	return vm.inner.AppRequest(ctx, nodeID, requestID, deadline, request)
}

// AppRequestFailed implements the common VM interface.
func (vm *ChainVM) AppRequestFailed(ctx context.Context, nodeID ids.NodeID, requestID uint32, appErr *consensuscore.AppError) error {
	return vm.inner.AppRequestFailed(ctx, nodeID, requestID, appErr)
}

// AppResponse implements the common VM interface.
func (vm *ChainVM) AppResponse(ctx context.Context, nodeID ids.NodeID, requestID uint32, response []byte) error {
	return vm.inner.AppResponse(ctx, nodeID, requestID, response)
}
