// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"context"
	"fmt"

	"github.com/luxfi/address/formatting"
	"github.com/luxfi/constants"
	"github.com/luxfi/crypto/address"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"
	"github.com/luxfi/rpc"

	vmapi "github.com/luxfi/vm/api"
	"github.com/luxfi/vm/utils/json"

	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/txs"
)

// Client talks to a govvm chain over JSON-RPC.
type Client struct {
	Requester rpc.EndpointRequester
	networkID uint32
}

// NewClient returns a client for the chain hosted at
// [uri]/ext/bc/[chain]. [chain] is the chain's ID or alias.
func NewClient(uri, chain string) *Client {
	return &Client{Requester: rpc.NewEndpointRequester(
		fmt.Sprintf("%s/ext/bc/%s", uri, chain),
	)}
}

// NewClientWithNetworkID returns a client that formats bech32 addresses
// for [networkID].
func NewClientWithNetworkID(uri, chain string, networkID uint32) *Client {
	client := NewClient(uri, chain)
	client.networkID = networkID
	return client
}

// SetNetworkID sets the network ID used for address formatting.
func (c *Client) SetNetworkID(networkID uint32) {
	c.networkID = networkID
}

// FormatAddress renders [addr] as a bech32 address on this client's
// network.
func (c *Client) FormatAddress(addr ids.ShortID) (string, error) {
	hrp := constants.GetHRP(c.networkID)
	return address.Format(chainAlias, hrp, addr[:])
}

// Ping checks whether the chain is serving requests.
func (c *Client) Ping(ctx context.Context, options ...rpc.Option) (bool, error) {
	res := &PingReply{}
	err := c.Requester.SendRequest(ctx, "govvm.ping", struct{}{}, res, options...)
	return res.Success, err
}

// Health returns the chain's liveness summary.
func (c *Client) Health(ctx context.Context, options ...rpc.Option) (*HealthReply, error) {
	res := &HealthReply{}
	err := c.Requester.SendRequest(ctx, "govvm.health", struct{}{}, res, options...)
	return res, err
}

// LastAccepted returns the ID and height of the last accepted block.
func (c *Client) LastAccepted(ctx context.Context, options ...rpc.Option) (ids.ID, uint64, error) {
	res := &LastAcceptedReply{}
	err := c.Requester.SendRequest(ctx, "govvm.lastAccepted", struct{}{}, res, options...)
	return res.BlockID, uint64(res.Height), err
}

// Height returns the height of the last accepted block.
func (c *Client) Height(ctx context.Context, options ...rpc.Option) (uint64, error) {
	res := &HeightReply{}
	err := c.Requester.SendRequest(ctx, "govvm.height", struct{}{}, res, options...)
	return uint64(res.Height), err
}

// Genesis returns the chain's genesis document.
func (c *Client) Genesis(ctx context.Context, options ...rpc.Option) (*genesis.Genesis, error) {
	res := &GenesisReply{}
	err := c.Requester.SendRequest(ctx, "govvm.genesis", struct{}{}, res, options...)
	return res.Genesis, err
}

// IssueTx submits raw signed transaction bytes.
func (c *Client) IssueTx(ctx context.Context, txBytes []byte, options ...rpc.Option) (ids.ID, error) {
	txStr, err := formatting.Encode(formatting.Hex, txBytes)
	if err != nil {
		return ids.Empty, fmt.Errorf("couldn't encode tx: %w", err)
	}

	res := &vmapi.JSONTxID{}
	err = c.Requester.SendRequest(ctx, "govvm.issueTx", &vmapi.FormattedTx{
		Tx:       txStr,
		Encoding: formatting.Hex,
	}, res, options...)
	return res.TxID, err
}

// SignAndIssueTx signs [unsigned] with [key] and submits it.
func (c *Client) SignAndIssueTx(ctx context.Context, unsigned txs.UnsignedTx, key *secp256k1.PrivateKey, options ...rpc.Option) (ids.ID, error) {
	tx, err := txs.Sign(unsigned, key)
	if err != nil {
		return ids.Empty, err
	}
	return c.IssueTx(ctx, tx.Bytes(), options...)
}

// GetTx fetches an accepted transaction's bytes by ID.
func (c *Client) GetTx(ctx context.Context, txID ids.ID, options ...rpc.Option) ([]byte, error) {
	res := &GetTxReply{}
	err := c.Requester.SendRequest(ctx, "govvm.getTx", &GetTxArgs{
		TxID:     txID,
		Encoding: formatting.Hex,
	}, res, options...)
	if err != nil {
		return nil, err
	}
	return formatting.Decode(res.Encoding, res.Tx)
}

// Balance returns the token balance of [addr].
func (c *Client) Balance(ctx context.Context, addr ids.ShortID, options ...rpc.Option) (uint64, error) {
	res := &BalanceReply{}
	err := c.Requester.SendRequest(ctx, "govvm.balance", &BalanceArgs{
		Address: addr.String(),
	}, res, options...)
	return uint64(res.Balance), err
}

// Account returns the balance and nonce of [addr].
func (c *Client) Account(ctx context.Context, addr ids.ShortID, options ...rpc.Option) (balance uint64, nonce uint64, err error) {
	res := &AccountReply{}
	err = c.Requester.SendRequest(ctx, "govvm.account", &AccountArgs{
		Address: addr.String(),
	}, res, options...)
	return uint64(res.Balance), uint64(res.Nonce), err
}

// TotalSupply returns the circulating token supply.
func (c *Client) TotalSupply(ctx context.Context, options ...rpc.Option) (uint64, error) {
	res := &TotalSupplyReply{}
	err := c.Requester.SendRequest(ctx, "govvm.totalSupply", struct{}{}, res, options...)
	return uint64(res.Supply), err
}

// Allowance returns the amount [spender] may move out of [owner]'s balance.
func (c *Client) Allowance(ctx context.Context, owner, spender ids.ShortID, options ...rpc.Option) (uint64, error) {
	res := &AllowanceReply{}
	err := c.Requester.SendRequest(ctx, "govvm.allowance", &AllowanceArgs{
		Owner:   owner.String(),
		Spender: spender.String(),
	}, res, options...)
	return uint64(res.Allowance), err
}

// TokenInfo returns the token metadata, supply, owner, and pause flag.
func (c *Client) TokenInfo(ctx context.Context, options ...rpc.Option) (*TokenInfoReply, error) {
	res := &TokenInfoReply{}
	err := c.Requester.SendRequest(ctx, "govvm.tokenInfo", struct{}{}, res, options...)
	return res, err
}

// Proposal fetches one proposal record.
func (c *Client) Proposal(ctx context.Context, proposalID ids.ID, options ...rpc.Option) (*ProposalInfo, error) {
	res := &ProposalReply{}
	err := c.Requester.SendRequest(ctx, "govvm.proposal", &ProposalArgs{
		ProposalID: proposalID,
	}, res, options...)
	if err != nil {
		return nil, err
	}
	return &res.Proposal, nil
}

// Proposals lists proposals. An empty [status] lists the live proposals
// ordered by voting deadline.
func (c *Client) Proposals(ctx context.Context, status string, limit uint32, options ...rpc.Option) ([]ProposalInfo, error) {
	res := &ProposalsReply{}
	err := c.Requester.SendRequest(ctx, "govvm.proposals", &ProposalsArgs{
		Status: status,
		Limit:  json.Uint32(limit),
	}, res, options...)
	return res.Proposals, err
}

// Tally returns a proposal's tallies and verdict preview.
func (c *Client) Tally(ctx context.Context, proposalID ids.ID, options ...rpc.Option) (*TallyReply, error) {
	res := &TallyReply{}
	err := c.Requester.SendRequest(ctx, "govvm.tally", &TallyArgs{
		ProposalID: proposalID,
	}, res, options...)
	return res, err
}

// Vote returns the ballot [voter] cast on [proposalID], if any.
func (c *Client) Vote(ctx context.Context, proposalID ids.ID, voter ids.ShortID, options ...rpc.Option) (*VoteReply, error) {
	res := &VoteReply{}
	err := c.Requester.SendRequest(ctx, "govvm.vote", &VoteArgs{
		ProposalID: proposalID,
		Voter:      voter.String(),
	}, res, options...)
	return res, err
}

// Params returns the governance parameters the chain runs with.
func (c *Client) Params(ctx context.Context, options ...rpc.Option) (*ParamsReply, error) {
	res := &ParamsReply{}
	err := c.Requester.SendRequest(ctx, "govvm.params", struct{}{}, res, options...)
	return res, err
}
