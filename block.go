// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luxfi/consensus/engine/chain/block"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/govvm/txs"
)

var _ block.Block = (*Block)(nil)

var (
	errEmptyBlock        = errors.New("block holds no transactions")
	errInvalidGenesis    = errors.New("block at height 0 is reserved for the genesis block")
	errUnknownParent     = errors.New("parent block not found")
	errInvalidHeight     = errors.New("invalid block height")
	errTimestampTooEarly = errors.New("block timestamp before parent timestamp")
	errTimestampTooLate  = errors.New("block timestamp too far in the future")
	errMalformedTx       = errors.New("block holds a malformed transaction")
)

// maxClockSkew bounds how far ahead of local time a block may claim to be.
const maxClockSkew = 10 * time.Second

// Status tracks a block through the consensus lifecycle.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusProcessing
	StatusAccepted
	StatusRejected
)

// Block bundles an ordered batch of signed transactions under a parent
// reference. Verification is structural; the batch is applied to the chain
// state when the block is accepted, and transactions that fail against that
// state are dropped rather than failing the block.
type Block struct {
	PrntID    ids.ID   `serialize:"true" json:"parentID"`
	Hght      uint64   `serialize:"true" json:"height"`
	Tmstmp    int64    `serialize:"true" json:"timestamp"`
	SignedTxs [][]byte `serialize:"true" json:"txs"`

	vm       *ChainVM
	id       ids.ID
	bytes    []byte
	blockTxs []*txs.Tx
	status   Status
}

// newBlock assembles a block over [signedTxs] and seals its ID.
func newBlock(
	vm *ChainVM,
	parentID ids.ID,
	height uint64,
	timestamp int64,
	signedTxs [][]byte,
) (*Block, error) {
	blk := &Block{
		PrntID:    parentID,
		Hght:      height,
		Tmstmp:    timestamp,
		SignedTxs: signedTxs,

		vm: vm,
	}
	blkBytes, err := Codec.Marshal(CodecVersion, blk)
	if err != nil {
		return nil, err
	}
	blk.initialize(blkBytes)
	return blk, nil
}

// parseBlock deserializes a block and seals its ID over the original bytes.
func parseBlock(vm *ChainVM, blkBytes []byte) (*Block, error) {
	blk := &Block{vm: vm}
	if _, err := Codec.Unmarshal(blkBytes, blk); err != nil {
		return nil, err
	}
	blk.initialize(blkBytes)
	return blk, nil
}

func (b *Block) initialize(blkBytes []byte) {
	b.bytes = blkBytes
	b.id = hash.ComputeHash256Array(blkBytes)
}

// ID returns the hash of the block's serialization.
func (b *Block) ID() ids.ID {
	return b.id
}

// Parent returns the parent block's ID.
func (b *Block) Parent() ids.ID {
	return b.PrntID
}

// ParentID returns the parent block's ID.
func (b *Block) ParentID() ids.ID {
	return b.PrntID
}

// Height returns the block's distance from the genesis block.
func (b *Block) Height() uint64 {
	return b.Hght
}

// Timestamp returns the chain time this block proposes.
func (b *Block) Timestamp() time.Time {
	return time.Unix(b.Tmstmp, 0)
}

// Bytes returns the block's serialization.
func (b *Block) Bytes() []byte {
	return b.bytes
}

// Status returns the block's consensus status.
func (b *Block) Status() uint8 {
	return uint8(b.status)
}

// Txs returns the parsed transactions of the block.
func (b *Block) Txs() []*txs.Tx {
	return b.blockTxs
}

// Verify checks the block's structure against its parent: contiguous
// height, monotonic timestamp within the local clock bound, and
// syntactically valid transactions. State transitions are deferred to
// Accept, so verification stages nothing.
func (b *Block) Verify(context.Context) error {
	b.vm.lock.Lock()
	defer b.vm.lock.Unlock()

	if b.Hght == 0 {
		return errInvalidGenesis
	}
	parent, err := b.vm.getBlock(b.PrntID)
	if err != nil {
		return fmt.Errorf("%w: %s", errUnknownParent, b.PrntID)
	}
	if expected := parent.Hght + 1; b.Hght != expected {
		return fmt.Errorf("%w: expected %d got %d", errInvalidHeight, expected, b.Hght)
	}
	if b.Tmstmp < parent.Tmstmp {
		return fmt.Errorf("%w: parent holds %d got %d", errTimestampTooEarly, parent.Tmstmp, b.Tmstmp)
	}
	if localTime := b.vm.inner.clock.Time(); b.Timestamp().After(localTime.Add(maxClockSkew)) {
		return fmt.Errorf("%w: local time %s got %s", errTimestampTooLate, localTime, b.Timestamp())
	}
	if len(b.SignedTxs) == 0 {
		return errEmptyBlock
	}
	if err := b.parseTxs(); err != nil {
		return err
	}

	b.status = StatusProcessing
	b.vm.verifiedBlocks[b.id] = b
	return nil
}

// Accept applies the block to the chain state and commits the result.
func (b *Block) Accept(ctx context.Context) error {
	b.vm.lock.Lock()
	defer b.vm.lock.Unlock()

	if err := b.parseTxs(); err != nil {
		return err
	}
	applied, err := b.vm.inner.ProcessBlock(ctx, b)
	if err != nil {
		return err
	}

	b.status = StatusAccepted
	delete(b.vm.verifiedBlocks, b.id)
	b.vm.lastAccepted = b
	b.vm.preferredID = b.id
	b.vm.dropFromMempool(b.blockTxs)

	b.vm.log.Info("accepted block",
		log.Stringer("blkID", b.id),
		log.Uint64("height", b.Hght),
		log.Int("txs", len(b.blockTxs)),
		log.Int("applied", len(applied)),
	)
	return nil
}

// Reject drops the block. Nothing was staged during verification, so there
// is no diff to abandon. The block's transactions return to the mempool so
// that a competing block can still include them.
func (b *Block) Reject(context.Context) error {
	b.vm.lock.Lock()
	defer b.vm.lock.Unlock()

	b.status = StatusRejected
	delete(b.vm.verifiedBlocks, b.id)

	requeued := 0
	if err := b.parseTxs(); err == nil {
		for _, tx := range b.blockTxs {
			txID := tx.ID()
			if b.vm.mempoolIDs.Contains(txID) || b.vm.mempoolIDs.Len() >= b.vm.inner.Config.MempoolSize {
				continue
			}
			b.vm.mempool = append(b.vm.mempool, tx)
			b.vm.mempoolIDs.Add(txID)
			requeued++
		}
	}
	if requeued > 0 {
		b.vm.notifyPendingTxs()
	}

	b.vm.log.Debug("rejected block",
		log.Stringer("blkID", b.id),
		log.Uint64("height", b.Hght),
		log.Int("requeuedTxs", requeued),
	)
	return nil
}

// parseTxs decodes the block's transactions once and caches them.
func (b *Block) parseTxs() error {
	if b.blockTxs != nil {
		return nil
	}
	blockTxs := make([]*txs.Tx, 0, len(b.SignedTxs))
	for _, txBytes := range b.SignedTxs {
		tx, err := txs.Parse(txBytes)
		if err != nil {
			return fmt.Errorf("%w: %w", errMalformedTx, err)
		}
		if err := tx.SyntacticVerify(); err != nil {
			return fmt.Errorf("%w: %w", errMalformedTx, err)
		}
		blockTxs = append(blockTxs, tx)
	}
	b.blockTxs = blockTxs
	return nil
}
