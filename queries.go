// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/govvm/api"
	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/governance"
	"github.com/luxfi/govvm/state"
)

var _ api.VM = (*ChainVM)(nil)

// The methods below back the API service. Each one holds the chain lock
// for the duration of the call, so a single RPC never observes a
// half-committed block.

// NetworkID returns the network this chain runs on.
func (vm *ChainVM) NetworkID() uint32 {
	return vm.inner.networkID
}

// Bootstrapped reports whether consensus has marked the chain ready.
func (vm *ChainVM) Bootstrapped() bool {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.bootstrapped
}

// GenesisDoc returns the parsed genesis document.
func (vm *ChainVM) GenesisDoc() *genesis.Genesis {
	return vm.inner.Genesis()
}

// ChainTip returns the ID, height, and timestamp of the last accepted
// block.
func (vm *ChainVM) ChainTip() (ids.ID, uint64, int64, error) {
	vm.lock.RLock()
	defer vm.lock.RUnlock()

	if vm.lastAccepted == nil {
		return ids.Empty, 0, 0, errVMNotInitialized
	}
	return vm.lastAccepted.id, vm.lastAccepted.Hght, vm.lastAccepted.Tmstmp, nil
}

// IndexedTx returns the stored bytes of an accepted transaction.
func (vm *ChainVM) IndexedTx(txID ids.ID) ([]byte, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.GetTx(txID)
}

// TokenLedger returns the token metadata, total supply, owner, and pause
// flag as one consistent view.
func (vm *ChainVM) TokenLedger() (*genesis.Token, uint64, ids.ShortID, bool, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	token, err := vm.inner.state.GetToken()
	if err != nil {
		return nil, 0, ids.ShortEmpty, false, err
	}
	supply, err := vm.inner.state.GetTotalSupply()
	if err != nil {
		return nil, 0, ids.ShortEmpty, false, err
	}
	owner, err := vm.inner.state.GetOwner()
	if err != nil {
		return nil, 0, ids.ShortEmpty, false, err
	}
	paused, err := vm.inner.state.IsPaused()
	if err != nil {
		return nil, 0, ids.ShortEmpty, false, err
	}
	return token, supply, owner, paused, nil
}

// Account returns the ledger row of [addr]. Unknown addresses have a zero
// account.
func (vm *ChainVM) Account(addr ids.ShortID) (*state.Account, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.GetAccount(addr)
}

// Allowance returns the amount [spender] may move out of [owner]'s
// balance.
func (vm *ChainVM) Allowance(owner, spender ids.ShortID) (uint64, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.GetAllowance(owner, spender)
}

// Proposal returns the stored proposal [proposalID].
func (vm *ChainVM) Proposal(proposalID ids.ID) (*governance.Proposal, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.GetProposal(proposalID)
}

// ActiveProposals returns up to [limit] live proposals ordered by voting
// deadline.
func (vm *ChainVM) ActiveProposals(limit int) ([]*governance.Proposal, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.ActiveProposalsByDeadline(limit)
}

// ProposalsByStatus returns up to [limit] proposals with the given stored
// status, in ID order.
func (vm *ChainVM) ProposalsByStatus(status governance.Status, limit int) ([]*governance.Proposal, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.ProposalsByStatus(status, limit)
}

// Tally returns [proposalID] together with the verdict its tallies would
// produce against the current supply and parameters.
func (vm *ChainVM) Tally(proposalID ids.ID) (*governance.Proposal, governance.Outcome, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	proposal, err := vm.inner.state.GetProposal(proposalID)
	if err != nil {
		return nil, governance.Outcome{}, err
	}
	params, err := vm.inner.state.GetParams()
	if err != nil {
		return nil, governance.Outcome{}, err
	}
	supply, err := vm.inner.state.GetTotalSupply()
	if err != nil {
		return nil, governance.Outcome{}, err
	}
	outcome, err := governance.Evaluate(proposal, params, supply)
	if err != nil {
		return nil, governance.Outcome{}, err
	}
	return proposal, outcome, nil
}

// Vote returns the ballot [voter] cast on [proposalID], or
// database.ErrNotFound if they have not voted.
func (vm *ChainVM) Vote(proposalID ids.ID, voter ids.ShortID) (*governance.Vote, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.GetVote(proposalID, voter)
}

// GovernanceParams returns the governance parameters the chain runs with.
func (vm *ChainVM) GovernanceParams() (governance.Params, error) {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.GetParams()
}

// NumActiveProposals returns the size of the live-proposal set.
func (vm *ChainVM) NumActiveProposals() int {
	vm.inner.lock.RLock()
	defer vm.inner.lock.RUnlock()

	return vm.inner.state.NumActiveProposals()
}
