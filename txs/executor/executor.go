// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package executor applies transactions to the chain state. Every visit
// method validates against the current state before writing anything, so
// a rejected transaction leaves no partial writes behind.
package executor

import (
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/govvm/governance"
	"github.com/luxfi/govvm/state"
	"github.com/luxfi/govvm/txs"
)

var (
	_ txs.Visitor = (*Executor)(nil)

	ErrPaused                 = errors.New("token ledger is paused")
	ErrUnauthorized           = errors.New("caller is not authorized")
	ErrNonceMismatch          = errors.New("incorrect nonce")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInsufficientAllowance  = errors.New("insufficient allowance")
	ErrAmountOverflow         = errors.New("amount overflows")
	ErrInvalidVotingPeriod    = errors.New("invalid voting period")
	ErrBelowProposalThreshold = errors.New("balance below proposal threshold")
	ErrVotingClosed           = errors.New("voting is not open")
	ErrVotingNotEnded         = errors.New("voting window has not ended")
	ErrAlreadyVoted           = errors.New("address has already voted")
	ErrNoVoteWeight           = errors.New("voter holds no tokens")
	ErrProposalSettled        = errors.New("proposal has already been settled")
	ErrProposalNotPassed      = errors.New("proposal has not passed")
)

// Executor applies a single transaction to the state at a given block
// time. It implements txs.Visitor; the Tx field carries the signed
// wrapper so governance transactions can use the transaction ID.
type Executor struct {
	State     *state.State
	BlockTime int64
	Tx        *txs.Tx
}

// Execute applies [tx] to [chainState] as of [blockTime].
func Execute(chainState *state.State, blockTime int64, tx *txs.Tx) error {
	executor := &Executor{
		State:     chainState,
		BlockTime: blockTime,
		Tx:        tx,
	}
	return tx.Unsigned.Visit(executor)
}

func (e *Executor) TransferTx(tx *txs.TransferTx) error {
	if err := e.checkNotPaused(); err != nil {
		return err
	}
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	if sender.Balance < tx.Amount {
		return fmt.Errorf("%w: balance %d, amount %d", ErrInsufficientBalance, sender.Balance, tx.Amount)
	}

	sender.Nonce++
	if tx.To == tx.From {
		return e.State.PutAccount(tx.From, sender)
	}

	recipient, err := e.State.GetAccount(tx.To)
	if err != nil {
		return err
	}
	newBalance, err := safemath.Add64(recipient.Balance, tx.Amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	}

	sender.Balance -= tx.Amount
	recipient.Balance = newBalance
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.PutAccount(tx.To, recipient)
}

func (e *Executor) ApproveTx(tx *txs.ApproveTx) error {
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}

	sender.Nonce++
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.PutAllowance(tx.From, tx.Spender, tx.Amount)
}

func (e *Executor) TransferFromTx(tx *txs.TransferFromTx) error {
	if err := e.checkNotPaused(); err != nil {
		return err
	}
	spender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}

	// The spender, owner, and recipient may alias one another, so all
	// balance arithmetic goes through one shared view per address.
	accounts := map[ids.ShortID]*state.Account{tx.From: spender}
	getAccount := func(addr ids.ShortID) (*state.Account, error) {
		if account, ok := accounts[addr]; ok {
			return account, nil
		}
		account, err := e.State.GetAccount(addr)
		if err != nil {
			return nil, err
		}
		accounts[addr] = account
		return account, nil
	}

	allowance, err := e.State.GetAllowance(tx.Owner, tx.From)
	if err != nil {
		return err
	}
	if allowance < tx.Amount {
		return fmt.Errorf("%w: allowance %d, amount %d", ErrInsufficientAllowance, allowance, tx.Amount)
	}

	owner, err := getAccount(tx.Owner)
	if err != nil {
		return err
	}
	if owner.Balance < tx.Amount {
		return fmt.Errorf("%w: balance %d, amount %d", ErrInsufficientBalance, owner.Balance, tx.Amount)
	}
	recipient, err := getAccount(tx.To)
	if err != nil {
		return err
	}

	spender.Nonce++
	owner.Balance -= tx.Amount
	newBalance, err := safemath.Add64(recipient.Balance, tx.Amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	}
	recipient.Balance = newBalance

	for addr, account := range accounts {
		if err := e.State.PutAccount(addr, account); err != nil {
			return err
		}
	}
	return e.State.PutAllowance(tx.Owner, tx.From, allowance-tx.Amount)
}

func (e *Executor) MintTx(tx *txs.MintTx) error {
	if err := e.checkNotPaused(); err != nil {
		return err
	}
	if err := e.checkOwner(tx.From); err != nil {
		return err
	}
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}

	supply, err := e.State.GetTotalSupply()
	if err != nil {
		return err
	}
	newSupply, err := safemath.Add64(supply, tx.Amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	}

	recipient := sender
	if tx.To != tx.From {
		recipient, err = e.State.GetAccount(tx.To)
		if err != nil {
			return err
		}
	}
	newBalance, err := safemath.Add64(recipient.Balance, tx.Amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	}

	sender.Nonce++
	recipient.Balance = newBalance
	if tx.To != tx.From {
		if err := e.State.PutAccount(tx.To, recipient); err != nil {
			return err
		}
	}
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.SetTotalSupply(newSupply)
}

func (e *Executor) BurnTx(tx *txs.BurnTx) error {
	if err := e.checkNotPaused(); err != nil {
		return err
	}
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	if sender.Balance < tx.Amount {
		return fmt.Errorf("%w: balance %d, amount %d", ErrInsufficientBalance, sender.Balance, tx.Amount)
	}

	supply, err := e.State.GetTotalSupply()
	if err != nil {
		return err
	}
	newSupply, err := safemath.Sub(supply, tx.Amount)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAmountOverflow, err)
	}

	sender.Nonce++
	sender.Balance -= tx.Amount
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.SetTotalSupply(newSupply)
}

func (e *Executor) SetPausedTx(tx *txs.SetPausedTx) error {
	if err := e.checkOwner(tx.From); err != nil {
		return err
	}
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}

	sender.Nonce++
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.SetPaused(tx.Paused)
}

func (e *Executor) TransferOwnershipTx(tx *txs.TransferOwnershipTx) error {
	if err := e.checkOwner(tx.From); err != nil {
		return err
	}
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}

	sender.Nonce++
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.SetOwner(tx.NewOwner)
}

func (e *Executor) CreateProposalTx(tx *txs.CreateProposalTx) error {
	proposer, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	params, err := e.State.GetParams()
	if err != nil {
		return err
	}

	if tx.StartTime < e.BlockTime {
		return fmt.Errorf(
			"%w: start %d is before block time %d",
			ErrInvalidVotingPeriod, tx.StartTime, e.BlockTime,
		)
	}
	if length := tx.EndTime - tx.StartTime; !params.ValidWindow(length) {
		return fmt.Errorf(
			"%w: window of %ds is outside [%ds, %ds]",
			ErrInvalidVotingPeriod, length, params.MinVotingPeriod, params.MaxVotingPeriod,
		)
	}
	if proposer.Balance < params.ProposalThreshold {
		return fmt.Errorf(
			"%w: balance %d, threshold %d",
			ErrBelowProposalThreshold, proposer.Balance, params.ProposalThreshold,
		)
	}

	proposal := &governance.Proposal{
		ID:          e.Tx.ID(),
		Title:       tx.Title,
		Description: tx.Description,
		Proposer:    tx.From,
		StartTime:   tx.StartTime,
		EndTime:     tx.EndTime,
		Status:      governance.StatusPending,
	}
	proposal.Status = proposal.CurrentStatus(e.BlockTime)
	if err := proposal.Verify(); err != nil {
		return err
	}

	proposer.Nonce++
	if err := e.State.PutAccount(tx.From, proposer); err != nil {
		return err
	}
	if err := e.State.PutProposal(proposal); err != nil {
		return err
	}
	return e.State.PushActiveProposal(proposal.ID, proposal.EndTime)
}

func (e *Executor) CastVoteTx(tx *txs.CastVoteTx) error {
	voter, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	proposal, err := e.State.GetProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	if !proposal.VotingOpen(e.BlockTime) {
		return fmt.Errorf("%w: proposal %s is %s", ErrVotingClosed, proposal.ID, proposal.CurrentStatus(e.BlockTime))
	}
	voted, err := e.State.HasVoted(tx.ProposalID, tx.From)
	if err != nil {
		return err
	}
	if voted {
		return fmt.Errorf("%w: %s on proposal %s", ErrAlreadyVoted, tx.From, tx.ProposalID)
	}
	if voter.Balance == 0 {
		return ErrNoVoteWeight
	}

	// The stored status advances Pending -> Active on the first write
	// after the window opens.
	proposal.Status = proposal.CurrentStatus(e.BlockTime)
	if err := proposal.AddVote(tx.Choice, voter.Balance); err != nil {
		return err
	}

	voter.Nonce++
	if err := e.State.PutAccount(tx.From, voter); err != nil {
		return err
	}
	if err := e.State.PutProposal(proposal); err != nil {
		return err
	}
	return e.State.PutVote(&governance.Vote{
		ProposalID: tx.ProposalID,
		Voter:      tx.From,
		Choice:     tx.Choice,
		Weight:     voter.Balance,
	})
}

func (e *Executor) FinalizeProposalTx(tx *txs.FinalizeProposalTx) error {
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	proposal, err := e.State.GetProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	status := proposal.CurrentStatus(e.BlockTime)
	if status != governance.StatusActive {
		return fmt.Errorf("%w: proposal %s is %s", ErrProposalSettled, proposal.ID, status)
	}
	if !proposal.VotingClosed(e.BlockTime) {
		return fmt.Errorf(
			"%w: proposal %s closes at %d, block time %d",
			ErrVotingNotEnded, proposal.ID, proposal.EndTime, e.BlockTime,
		)
	}

	supply, err := e.State.GetTotalSupply()
	if err != nil {
		return err
	}
	params, err := e.State.GetParams()
	if err != nil {
		return err
	}
	outcome, err := governance.Evaluate(proposal, params, supply)
	if err != nil {
		return err
	}

	if outcome.Passed {
		proposal.Status = governance.StatusPassed
	} else {
		proposal.Status = governance.StatusFailed
	}

	sender.Nonce++
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	if err := e.State.PutProposal(proposal); err != nil {
		return err
	}
	return e.State.RemoveActiveProposal(proposal.ID)
}

func (e *Executor) ExecuteProposalTx(tx *txs.ExecuteProposalTx) error {
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	proposal, err := e.State.GetProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	if proposal.Status != governance.StatusPassed {
		return fmt.Errorf("%w: proposal %s is %s", ErrProposalNotPassed, proposal.ID, proposal.Status)
	}

	proposal.Status = governance.StatusExecuted
	proposal.Executed = true

	sender.Nonce++
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	return e.State.PutProposal(proposal)
}

func (e *Executor) CancelProposalTx(tx *txs.CancelProposalTx) error {
	sender, err := e.checkNonce(&tx.BaseTx)
	if err != nil {
		return err
	}
	proposal, err := e.State.GetProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	if tx.From != proposal.Proposer {
		if err := e.checkOwner(tx.From); err != nil {
			return err
		}
	}
	status := proposal.CurrentStatus(e.BlockTime)
	if status != governance.StatusPending && status != governance.StatusActive {
		return fmt.Errorf("%w: proposal %s is %s", ErrProposalSettled, proposal.ID, status)
	}

	proposal.Status = governance.StatusCancelled

	sender.Nonce++
	if err := e.State.PutAccount(tx.From, sender); err != nil {
		return err
	}
	if err := e.State.PutProposal(proposal); err != nil {
		return err
	}
	return e.State.RemoveActiveProposal(proposal.ID)
}

// checkNonce returns the sender's account after checking that the
// transaction consumes the account's current nonce. The caller bumps the
// nonce and persists the account in its write phase.
func (e *Executor) checkNonce(tx *txs.BaseTx) (*state.Account, error) {
	account, err := e.State.GetAccount(tx.From)
	if err != nil {
		return nil, err
	}
	if account.Nonce != tx.Nonce {
		return nil, fmt.Errorf(
			"%w: tx nonce %d, account nonce %d",
			ErrNonceMismatch, tx.Nonce, account.Nonce,
		)
	}
	return account, nil
}

func (e *Executor) checkOwner(addr ids.ShortID) error {
	owner, err := e.State.GetOwner()
	if err != nil {
		return err
	}
	if addr != owner {
		return fmt.Errorf("%w: %s is not the owner", ErrUnauthorized, addr)
	}
	return nil
}

func (e *Executor) checkNotPaused() error {
	paused, err := e.State.IsPaused()
	if err != nil {
		return err
	}
	if paused {
		return ErrPaused
	}
	return nil
}
