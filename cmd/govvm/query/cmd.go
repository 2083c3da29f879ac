// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package query reads chain state over the JSON-RPC endpoint.
package query

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "query",
		Short: "Reads token and governance state",
	}
	c.AddCommand(
		balanceCommand(),
		accountCommand(),
		allowanceCommand(),
		supplyCommand(),
		tokenCommand(),
		heightCommand(),
		proposalCommand(),
		proposalsCommand(),
		tallyCommand(),
		voteCommand(),
		paramsCommand(),
	)
	return c
}

// printJSON renders the reply the same way the RPC endpoint would.
func printJSON(c *cobra.Command, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), string(out))
	return nil
}

func balanceCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "balance",
		Short: "Prints the token balance of an address",
		RunE:  balanceFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(AddressKey, "", "Address to inspect (required)")
	return c
}

func balanceFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	addr, err := getAddress(flags, AddressKey)
	if err != nil {
		return err
	}
	balance, err := client.Balance(c.Context(), addr)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), balance)
	return nil
}

func accountCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "account",
		Short: "Prints the balance and nonce of an address",
		RunE:  accountFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(AddressKey, "", "Address to inspect (required)")
	return c
}

func accountFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	addr, err := getAddress(flags, AddressKey)
	if err != nil {
		return err
	}
	balance, nonce, err := client.Account(c.Context(), addr)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.OutOrStdout(), "balance: %d\nnonce: %d\n", balance, nonce)
	return nil
}

func allowanceCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "allowance",
		Short: "Prints the amount a spender may move out of an owner's balance",
		RunE:  allowanceFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(OwnerKey, "", "Owner of the funds (required)")
	flags.String(SpenderKey, "", "Approved spender (required)")
	return c
}

func allowanceFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	owner, err := getAddress(flags, OwnerKey)
	if err != nil {
		return err
	}
	spender, err := getAddress(flags, SpenderKey)
	if err != nil {
		return err
	}
	allowance, err := client.Allowance(c.Context(), owner, spender)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), allowance)
	return nil
}

func supplyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "supply",
		Short: "Prints the circulating token supply",
		RunE:  supplyFunc,
	}
	AddFlags(c.Flags())
	return c
}

func supplyFunc(c *cobra.Command, args []string) error {
	client, err := newClient(c.Flags(), args)
	if err != nil {
		return err
	}
	supply, err := client.TotalSupply(c.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), supply)
	return nil
}

func tokenCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "token",
		Short: "Prints the token metadata, owner, and pause state",
		RunE:  tokenFunc,
	}
	AddFlags(c.Flags())
	return c
}

func tokenFunc(c *cobra.Command, args []string) error {
	client, err := newClient(c.Flags(), args)
	if err != nil {
		return err
	}
	info, err := client.TokenInfo(c.Context())
	if err != nil {
		return err
	}
	return printJSON(c, info)
}

func heightCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "height",
		Short: "Prints the height of the last accepted block",
		RunE:  heightFunc,
	}
	AddFlags(c.Flags())
	return c
}

func heightFunc(c *cobra.Command, args []string) error {
	client, err := newClient(c.Flags(), args)
	if err != nil {
		return err
	}
	height, err := client.Height(c.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.OutOrStdout(), height)
	return nil
}

func proposalCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "proposal",
		Short: "Prints one proposal with its tallies",
		RunE:  proposalFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal to fetch (required)")
	return c
}

func proposalFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	proposalID, err := getID(flags, ProposalIDKey)
	if err != nil {
		return err
	}
	proposal, err := client.Proposal(c.Context(), proposalID)
	if err != nil {
		return err
	}
	return printJSON(c, proposal)
}

func proposalsCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "proposals",
		Short: "Lists proposals, live ones by default",
		RunE:  proposalsFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(StatusKey, "", "Filter by status; empty lists active proposals")
	flags.Uint32(LimitKey, 0, "Maximum number of proposals to return; zero means no limit")
	return c
}

func proposalsFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	status, err := flags.GetString(StatusKey)
	if err != nil {
		return err
	}
	limit, err := flags.GetUint32(LimitKey)
	if err != nil {
		return err
	}
	proposals, err := client.Proposals(c.Context(), status, limit)
	if err != nil {
		return err
	}
	return printJSON(c, proposals)
}

func tallyCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "tally",
		Short: "Prints a proposal's tallies and the verdict they would produce",
		RunE:  tallyFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal to tally (required)")
	return c
}

func tallyFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	proposalID, err := getID(flags, ProposalIDKey)
	if err != nil {
		return err
	}
	tally, err := client.Tally(c.Context(), proposalID)
	if err != nil {
		return err
	}
	return printJSON(c, tally)
}

func voteCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "vote",
		Short: "Prints the ballot an address cast on a proposal",
		RunE:  voteFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal to inspect (required)")
	flags.String(VoterKey, "", "Voter to look up (required)")
	return c
}

func voteFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	client, err := newClient(flags, args)
	if err != nil {
		return err
	}
	proposalID, err := getID(flags, ProposalIDKey)
	if err != nil {
		return err
	}
	voter, err := getAddress(flags, VoterKey)
	if err != nil {
		return err
	}
	vote, err := client.Vote(c.Context(), proposalID, voter)
	if err != nil {
		return err
	}
	return printJSON(c, vote)
}

func paramsCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "params",
		Short: "Prints the chain's governance parameters",
		RunE:  paramsFunc,
	}
	AddFlags(c.Flags())
	return c
}

func paramsFunc(c *cobra.Command, args []string) error {
	client, err := newClient(c.Flags(), args)
	if err != nil {
		return err
	}
	params, err := client.Params(c.Context())
	if err != nil {
		return err
	}
	return printJSON(c, params)
}
