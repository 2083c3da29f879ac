// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api exposes the governance VM over JSON-RPC and provides the
// matching Go client.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/luxfi/address/formatting"
	"github.com/luxfi/constants"
	"github.com/luxfi/crypto/address"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	vmapi "github.com/luxfi/vm/api"
	"github.com/luxfi/vm/utils/json"

	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/governance"
	"github.com/luxfi/govvm/state"
	"github.com/luxfi/govvm/txs"
)

// chainAlias prefixes bech32 addresses returned by the service.
const chainAlias = "govvm"

var (
	ErrNotBootstrapped = errors.New("chain is not bootstrapped")
	ErrInvalidAddress  = errors.New("invalid address")
	ErrUnknownProposal = errors.New("unknown proposal")
	ErrUnknownTx       = errors.New("unknown transaction")
	errNilProposalID   = errors.New("proposalID is required")
)

// VM is the chain backend the service queries. Implementations wrap every
// call in the chain lock, so each RPC observes a consistent committed view.
type VM interface {
	SubmitTx(tx *txs.Tx) error
	NetworkID() uint32
	Bootstrapped() bool
	GenesisDoc() *genesis.Genesis

	ChainTip() (ids.ID, uint64, int64, error)
	IndexedTx(txID ids.ID) ([]byte, error)

	TokenLedger() (*genesis.Token, uint64, ids.ShortID, bool, error)
	Account(addr ids.ShortID) (*state.Account, error)
	Allowance(owner, spender ids.ShortID) (uint64, error)

	Proposal(proposalID ids.ID) (*governance.Proposal, error)
	ActiveProposals(limit int) ([]*governance.Proposal, error)
	ProposalsByStatus(status governance.Status, limit int) ([]*governance.Proposal, error)
	Tally(proposalID ids.ID) (*governance.Proposal, governance.Outcome, error)
	Vote(proposalID ids.ID, voter ids.ShortID) (*governance.Vote, error)
	GovernanceParams() (governance.Params, error)
	NumActiveProposals() int
}

// Service is the govvm JSON-RPC service.
type Service struct {
	vm VM
}

// NewService returns the RPC service backed by [vm].
func NewService(vm VM) *Service {
	return &Service{vm: vm}
}

// ParseAddress accepts a bech32 address or a cb58-encoded short ID.
func ParseAddress(addrStr string) (ids.ShortID, error) {
	if addr, err := address.ParseToID(addrStr); err == nil {
		return addr, nil
	}
	addr, err := ids.ShortFromString(addrStr)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("%w: %q", ErrInvalidAddress, addrStr)
	}
	return addr, nil
}

// formatAddress renders [addr] as a bech32 address on this network.
func (s *Service) formatAddress(addr ids.ShortID) (string, error) {
	hrp := constants.GetHRP(s.vm.NetworkID())
	return address.Format(chainAlias, hrp, addr[:])
}

// PingReply is the response to a Ping call.
type PingReply struct {
	Success bool `json:"success"`
}

// Ping answers any request, bootstrapped or not.
func (s *Service) Ping(_ *http.Request, _ *struct{}, reply *PingReply) error {
	reply.Success = true
	return nil
}

// HealthReply summarizes the chain's liveness.
type HealthReply struct {
	Healthy         bool        `json:"healthy"`
	Bootstrapped    bool        `json:"bootstrapped"`
	LastAcceptedID  ids.ID      `json:"lastAcceptedID"`
	Height          json.Uint64 `json:"height"`
	ActiveProposals json.Uint64 `json:"activeProposals"`
}

// Health reports the chain tip and the live-proposal count.
func (s *Service) Health(_ *http.Request, _ *struct{}, reply *HealthReply) error {
	blkID, height, _, err := s.vm.ChainTip()
	if err != nil {
		return err
	}
	reply.Healthy = true
	reply.Bootstrapped = s.vm.Bootstrapped()
	reply.LastAcceptedID = blkID
	reply.Height = json.Uint64(height)
	reply.ActiveProposals = json.Uint64(s.vm.NumActiveProposals())
	return nil
}

// LastAcceptedReply identifies the most recently accepted block.
type LastAcceptedReply struct {
	BlockID   ids.ID      `json:"blockID"`
	Height    json.Uint64 `json:"height"`
	Timestamp json.Uint64 `json:"timestamp"`
}

// LastAccepted returns the chain tip.
func (s *Service) LastAccepted(_ *http.Request, _ *struct{}, reply *LastAcceptedReply) error {
	blkID, height, timestamp, err := s.vm.ChainTip()
	if err != nil {
		return err
	}
	reply.BlockID = blkID
	reply.Height = json.Uint64(height)
	reply.Timestamp = json.Uint64(timestamp)
	return nil
}

// HeightReply is the response to a Height call.
type HeightReply struct {
	Height json.Uint64 `json:"height"`
}

// Height returns the height of the last accepted block.
func (s *Service) Height(_ *http.Request, _ *struct{}, reply *HeightReply) error {
	_, height, _, err := s.vm.ChainTip()
	if err != nil {
		return err
	}
	reply.Height = json.Uint64(height)
	return nil
}

// GenesisReply carries the parsed genesis document.
type GenesisReply struct {
	Genesis *genesis.Genesis `json:"genesis"`
}

// Genesis returns the chain's genesis document.
func (s *Service) Genesis(_ *http.Request, _ *struct{}, reply *GenesisReply) error {
	reply.Genesis = s.vm.GenesisDoc()
	return nil
}

// IssueTx decodes a signed transaction and submits it to the mempool.
func (s *Service) IssueTx(_ *http.Request, args *vmapi.FormattedTx, reply *vmapi.JSONTxID) error {
	if !s.vm.Bootstrapped() {
		return ErrNotBootstrapped
	}

	txBytes, err := formatting.Decode(args.Encoding, args.Tx)
	if err != nil {
		return fmt.Errorf("problem decoding transaction: %w", err)
	}
	tx, err := txs.Parse(txBytes)
	if err != nil {
		return fmt.Errorf("couldn't parse tx: %w", err)
	}
	if err := s.vm.SubmitTx(tx); err != nil {
		return fmt.Errorf("couldn't issue tx: %w", err)
	}

	reply.TxID = tx.ID()
	return nil
}

// GetTxArgs identify an accepted transaction to fetch.
type GetTxArgs struct {
	TxID     ids.ID              `json:"txID"`
	Encoding formatting.Encoding `json:"encoding"`
}

// GetTxReply carries an accepted transaction's bytes.
type GetTxReply struct {
	Tx       string              `json:"tx"`
	Encoding formatting.Encoding `json:"encoding"`
}

// GetTx returns an accepted transaction by ID. Transactions are only
// retrievable when indexing is enabled in the chain config.
func (s *Service) GetTx(_ *http.Request, args *GetTxArgs, reply *GetTxReply) error {
	txBytes, err := s.vm.IndexedTx(args.TxID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownTx, args.TxID)
	}
	if err != nil {
		return err
	}

	txStr, err := formatting.Encode(args.Encoding, txBytes)
	if err != nil {
		return fmt.Errorf("couldn't encode tx: %w", err)
	}
	reply.Tx = txStr
	reply.Encoding = args.Encoding
	return nil
}

// BalanceArgs identify the account to inspect.
type BalanceArgs struct {
	Address string `json:"address"`
}

// BalanceReply is the response to a Balance call.
type BalanceReply struct {
	Address string      `json:"address"`
	Balance json.Uint64 `json:"balance"`
}

// Balance returns the token balance of an address. Unknown addresses have
// a zero balance.
func (s *Service) Balance(_ *http.Request, args *BalanceArgs, reply *BalanceReply) error {
	addr, err := ParseAddress(args.Address)
	if err != nil {
		return err
	}
	account, err := s.vm.Account(addr)
	if err != nil {
		return err
	}
	addrStr, err := s.formatAddress(addr)
	if err != nil {
		return err
	}
	reply.Address = addrStr
	reply.Balance = json.Uint64(account.Balance)
	return nil
}

// AccountArgs identify the account to inspect.
type AccountArgs struct {
	Address string `json:"address"`
}

// AccountReply is the response to an Account call.
type AccountReply struct {
	Address string      `json:"address"`
	Balance json.Uint64 `json:"balance"`
	Nonce   json.Uint64 `json:"nonce"`
}

// Account returns the balance and nonce of an address. The nonce is the
// number of transactions the address has had accepted, which is also the
// nonce its next transaction must carry.
func (s *Service) Account(_ *http.Request, args *AccountArgs, reply *AccountReply) error {
	addr, err := ParseAddress(args.Address)
	if err != nil {
		return err
	}
	account, err := s.vm.Account(addr)
	if err != nil {
		return err
	}
	addrStr, err := s.formatAddress(addr)
	if err != nil {
		return err
	}
	reply.Address = addrStr
	reply.Balance = json.Uint64(account.Balance)
	reply.Nonce = json.Uint64(account.Nonce)
	return nil
}

// TotalSupplyReply is the response to a TotalSupply call.
type TotalSupplyReply struct {
	Supply json.Uint64 `json:"supply"`
}

// TotalSupply returns the circulating token supply.
func (s *Service) TotalSupply(_ *http.Request, _ *struct{}, reply *TotalSupplyReply) error {
	_, supply, _, _, err := s.vm.TokenLedger()
	if err != nil {
		return err
	}
	reply.Supply = json.Uint64(supply)
	return nil
}

// AllowanceArgs identify an (owner, spender) approval row.
type AllowanceArgs struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
}

// AllowanceReply is the response to an Allowance call.
type AllowanceReply struct {
	Allowance json.Uint64 `json:"allowance"`
}

// Allowance returns the amount [spender] may move out of [owner]'s balance.
func (s *Service) Allowance(_ *http.Request, args *AllowanceArgs, reply *AllowanceReply) error {
	owner, err := ParseAddress(args.Owner)
	if err != nil {
		return err
	}
	spender, err := ParseAddress(args.Spender)
	if err != nil {
		return err
	}
	allowance, err := s.vm.Allowance(owner, spender)
	if err != nil {
		return err
	}
	reply.Allowance = json.Uint64(allowance)
	return nil
}

// TokenInfoReply describes the token and its administrative state.
type TokenInfoReply struct {
	Name         string      `json:"name"`
	Symbol       string      `json:"symbol"`
	Denomination json.Uint32 `json:"denomination"`
	TotalSupply  json.Uint64 `json:"totalSupply"`
	Owner        string      `json:"owner"`
	Paused       bool        `json:"paused"`
}

// TokenInfo returns the token metadata, supply, owner, and pause flag.
func (s *Service) TokenInfo(_ *http.Request, _ *struct{}, reply *TokenInfoReply) error {
	token, supply, owner, paused, err := s.vm.TokenLedger()
	if err != nil {
		return err
	}
	ownerStr, err := s.formatAddress(owner)
	if err != nil {
		return err
	}
	reply.Name = token.Name
	reply.Symbol = token.Symbol
	reply.Denomination = json.Uint32(token.Denomination)
	reply.TotalSupply = json.Uint64(supply)
	reply.Owner = ownerStr
	reply.Paused = paused
	return nil
}

// ProposalInfo is the JSON rendering of a proposal record.
type ProposalInfo struct {
	ID            ids.ID      `json:"id"`
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Proposer      string      `json:"proposer"`
	StartTime     json.Uint64 `json:"startTime"`
	EndTime       json.Uint64 `json:"endTime"`
	ForWeight     json.Uint64 `json:"forWeight"`
	AgainstWeight json.Uint64 `json:"againstWeight"`
	AbstainWeight json.Uint64 `json:"abstainWeight"`
	ForVotes      json.Uint32 `json:"forVotes"`
	AgainstVotes  json.Uint32 `json:"againstVotes"`
	AbstainVotes  json.Uint32 `json:"abstainVotes"`
	Status        string      `json:"status"`
	Executed      bool        `json:"executed"`
}

func (s *Service) makeProposalInfo(proposal *governance.Proposal) (ProposalInfo, error) {
	proposerStr, err := s.formatAddress(proposal.Proposer)
	if err != nil {
		return ProposalInfo{}, err
	}
	return ProposalInfo{
		ID:            proposal.ID,
		Title:         proposal.Title,
		Description:   proposal.Description,
		Proposer:      proposerStr,
		StartTime:     json.Uint64(proposal.StartTime),
		EndTime:       json.Uint64(proposal.EndTime),
		ForWeight:     json.Uint64(proposal.ForWeight),
		AgainstWeight: json.Uint64(proposal.AgainstWeight),
		AbstainWeight: json.Uint64(proposal.AbstainWeight),
		ForVotes:      json.Uint32(proposal.ForVotes),
		AgainstVotes:  json.Uint32(proposal.AgainstVotes),
		AbstainVotes:  json.Uint32(proposal.AbstainVotes),
		Status:        proposal.Status.String(),
		Executed:      proposal.Executed,
	}, nil
}

// ProposalArgs identify the proposal to fetch.
type ProposalArgs struct {
	ProposalID ids.ID `json:"proposalID"`
}

// ProposalReply carries one proposal record.
type ProposalReply struct {
	Proposal ProposalInfo `json:"proposal"`
}

// Proposal returns a proposal with its running tallies and stored status.
func (s *Service) Proposal(_ *http.Request, args *ProposalArgs, reply *ProposalReply) error {
	if args.ProposalID == ids.Empty {
		return errNilProposalID
	}
	proposal, err := s.vm.Proposal(args.ProposalID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownProposal, args.ProposalID)
	}
	if err != nil {
		return err
	}
	reply.Proposal, err = s.makeProposalInfo(proposal)
	return err
}

// ProposalsArgs select which proposals to list.
type ProposalsArgs struct {
	// Status filters the listing. Empty or "active" lists the live
	// proposals ordered by voting deadline; any other status scans the
	// proposal set in ID order.
	Status string      `json:"status"`
	Limit  json.Uint32 `json:"limit"`
}

// ProposalsReply carries the matching proposals.
type ProposalsReply struct {
	Proposals []ProposalInfo `json:"proposals"`
}

// Proposals lists proposals, live ones by default.
func (s *Service) Proposals(_ *http.Request, args *ProposalsArgs, reply *ProposalsReply) error {
	limit := int(args.Limit)

	var (
		proposals []*governance.Proposal
		err       error
	)
	switch args.Status {
	case "", "active", "Active":
		proposals, err = s.vm.ActiveProposals(limit)
	default:
		status, parseErr := governance.ParseStatus(args.Status)
		if parseErr != nil {
			return parseErr
		}
		if status == governance.StatusActive {
			proposals, err = s.vm.ActiveProposals(limit)
		} else {
			proposals, err = s.vm.ProposalsByStatus(status, limit)
		}
	}
	if err != nil {
		return err
	}

	reply.Proposals = make([]ProposalInfo, len(proposals))
	for i, proposal := range proposals {
		reply.Proposals[i], err = s.makeProposalInfo(proposal)
		if err != nil {
			return err
		}
	}
	return nil
}

// TallyArgs identify the proposal to tally.
type TallyArgs struct {
	ProposalID ids.ID `json:"proposalID"`
}

// TallyReply carries the tallies and the verdict they would produce if the
// proposal were finalized against the current supply.
type TallyReply struct {
	ProposalID    ids.ID      `json:"proposalID"`
	Status        string      `json:"status"`
	ForWeight     json.Uint64 `json:"forWeight"`
	AgainstWeight json.Uint64 `json:"againstWeight"`
	AbstainWeight json.Uint64 `json:"abstainWeight"`
	Participation json.Uint64 `json:"participation"`
	QuorumMet     bool        `json:"quorumMet"`
	ThresholdMet  bool        `json:"thresholdMet"`
	Passed        bool        `json:"passed"`
}

// Tally returns a proposal's tallies and a verdict preview.
func (s *Service) Tally(_ *http.Request, args *TallyArgs, reply *TallyReply) error {
	if args.ProposalID == ids.Empty {
		return errNilProposalID
	}
	proposal, outcome, err := s.vm.Tally(args.ProposalID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownProposal, args.ProposalID)
	}
	if err != nil {
		return err
	}
	reply.ProposalID = proposal.ID
	reply.Status = proposal.Status.String()
	reply.ForWeight = json.Uint64(proposal.ForWeight)
	reply.AgainstWeight = json.Uint64(proposal.AgainstWeight)
	reply.AbstainWeight = json.Uint64(proposal.AbstainWeight)
	reply.Participation = json.Uint64(outcome.Participation)
	reply.QuorumMet = outcome.QuorumMet
	reply.ThresholdMet = outcome.ThresholdMet
	reply.Passed = outcome.Passed
	return nil
}

// VoteArgs identify a (proposal, voter) ballot.
type VoteArgs struct {
	ProposalID ids.ID `json:"proposalID"`
	Voter      string `json:"voter"`
}

// VoteReply reports whether the voter has voted, and how.
type VoteReply struct {
	Voted  bool        `json:"voted"`
	Choice string      `json:"choice,omitempty"`
	Weight json.Uint64 `json:"weight"`
}

// Vote returns the ballot a voter cast on a proposal, if any.
func (s *Service) Vote(_ *http.Request, args *VoteArgs, reply *VoteReply) error {
	if args.ProposalID == ids.Empty {
		return errNilProposalID
	}
	voter, err := ParseAddress(args.Voter)
	if err != nil {
		return err
	}

	vote, err := s.vm.Vote(args.ProposalID, voter)
	if errors.Is(err, database.ErrNotFound) {
		reply.Voted = false
		return nil
	}
	if err != nil {
		return err
	}
	reply.Voted = true
	reply.Choice = vote.Choice.String()
	reply.Weight = json.Uint64(vote.Weight)
	return nil
}

// ParamsReply carries the governance parameters.
type ParamsReply struct {
	QuorumBps         json.Uint32 `json:"quorumBps"`
	ThresholdBps      json.Uint32 `json:"thresholdBps"`
	MinVotingPeriod   json.Uint64 `json:"minVotingPeriod"`
	MaxVotingPeriod   json.Uint64 `json:"maxVotingPeriod"`
	ProposalThreshold json.Uint64 `json:"proposalThreshold"`
}

// Params returns the governance parameters the chain runs with.
func (s *Service) Params(_ *http.Request, _ *struct{}, reply *ParamsReply) error {
	params, err := s.vm.GovernanceParams()
	if err != nil {
		return err
	}
	reply.QuorumBps = json.Uint32(params.QuorumBps)
	reply.ThresholdBps = json.Uint32(params.ThresholdBps)
	reply.MinVotingPeriod = json.Uint64(params.MinVotingPeriod)
	reply.MaxVotingPeriod = json.Uint64(params.MaxVotingPeriod)
	reply.ProposalThreshold = json.Uint64(params.ProposalThreshold)
	return nil
}
