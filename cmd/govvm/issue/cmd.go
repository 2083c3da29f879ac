// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package issue signs transactions with a local key and submits them over
// the chain's JSON-RPC endpoint.
package issue

import (
	"log"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/luxfi/govvm/api"
	"github.com/luxfi/govvm/governance"
	"github.com/luxfi/govvm/txs"
)

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "issue",
		Short: "Signs and issues transactions",
	}
	c.AddCommand(
		transferCommand(),
		approveCommand(),
		transferFromCommand(),
		mintCommand(),
		burnCommand(),
		pauseCommand(),
		unpauseCommand(),
		transferOwnershipCommand(),
		proposeCommand(),
		voteCommand(),
		finalizeCommand(),
		executeCommand(),
		cancelCommand(),
	)
	return c
}

// buildFunc assembles an unsigned transaction from the parsed flags. The
// sender and its next nonce are already filled in.
type buildFunc func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error)

// issueTx fetches the signer's nonce, builds the transaction, signs it, and
// submits it to the chain.
func issueTx(c *cobra.Command, args []string, build buildFunc) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}

	ctx := c.Context()
	client := api.NewClient(config.URI, config.ChainID)

	address := config.PrivateKey.Address()
	_, nonce, err := client.Account(ctx, address)
	if err != nil {
		return err
	}

	unsigned, err := build(flags, txs.BaseTx{From: address, Nonce: nonce})
	if err != nil {
		return err
	}

	issueStartTime := time.Now()
	txID, err := client.SignAndIssueTx(ctx, unsigned, config.PrivateKey)
	if err != nil {
		return err
	}
	log.Printf("issued tx %s in %s\n", txID, time.Since(issueStartTime))
	return nil
}

func transferCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "transfer",
		Short: "Moves tokens to another address",
		RunE:  transferFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ToKey, "", "Address receiving the tokens (required)")
	flags.Uint64(AmountKey, 0, "Amount of tokens to move (required)")
	return c
}

func transferFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		to, err := getAddress(flags, ToKey)
		if err != nil {
			return nil, err
		}
		amount, err := flags.GetUint64(AmountKey)
		if err != nil {
			return nil, err
		}
		return &txs.TransferTx{BaseTx: base, To: to, Amount: amount}, nil
	})
}

func approveCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "approve",
		Short: "Sets the amount a spender may move out of the signer's balance",
		RunE:  approveFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(SpenderKey, "", "Address being approved (required)")
	flags.Uint64(AmountKey, 0, "Allowance to set; zero revokes it")
	return c
}

func approveFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		spender, err := getAddress(flags, SpenderKey)
		if err != nil {
			return nil, err
		}
		amount, err := flags.GetUint64(AmountKey)
		if err != nil {
			return nil, err
		}
		return &txs.ApproveTx{BaseTx: base, Spender: spender, Amount: amount}, nil
	})
}

func transferFromCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "transfer-from",
		Short: "Moves tokens out of another address against the signer's allowance",
		RunE:  transferFromFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(OwnerKey, "", "Address the tokens are moved out of (required)")
	flags.String(ToKey, "", "Address receiving the tokens (required)")
	flags.Uint64(AmountKey, 0, "Amount of tokens to move (required)")
	return c
}

func transferFromFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		owner, err := getAddress(flags, OwnerKey)
		if err != nil {
			return nil, err
		}
		to, err := getAddress(flags, ToKey)
		if err != nil {
			return nil, err
		}
		amount, err := flags.GetUint64(AmountKey)
		if err != nil {
			return nil, err
		}
		return &txs.TransferFromTx{BaseTx: base, Owner: owner, To: to, Amount: amount}, nil
	})
}

func mintCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "mint",
		Short: "Creates new tokens; owner only",
		RunE:  mintFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ToKey, "", "Address receiving the minted tokens (required)")
	flags.Uint64(AmountKey, 0, "Amount of tokens to create (required)")
	return c
}

func mintFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		to, err := getAddress(flags, ToKey)
		if err != nil {
			return nil, err
		}
		amount, err := flags.GetUint64(AmountKey)
		if err != nil {
			return nil, err
		}
		return &txs.MintTx{BaseTx: base, To: to, Amount: amount}, nil
	})
}

func burnCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "burn",
		Short: "Destroys tokens from the signer's balance",
		RunE:  burnFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.Uint64(AmountKey, 0, "Amount of tokens to destroy (required)")
	return c
}

func burnFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		amount, err := flags.GetUint64(AmountKey)
		if err != nil {
			return nil, err
		}
		return &txs.BurnTx{BaseTx: base, Amount: amount}, nil
	})
}

func pauseCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "pause",
		Short: "Halts transfers, mints, and burns; owner only",
		RunE:  pauseFunc,
	}
	AddFlags(c.Flags())
	return c
}

func pauseFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(_ *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		return &txs.SetPausedTx{BaseTx: base, Paused: true}, nil
	})
}

func unpauseCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "unpause",
		Short: "Resumes transfers, mints, and burns; owner only",
		RunE:  unpauseFunc,
	}
	AddFlags(c.Flags())
	return c
}

func unpauseFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(_ *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		return &txs.SetPausedTx{BaseTx: base, Paused: false}, nil
	})
}

func transferOwnershipCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "transfer-ownership",
		Short: "Hands chain ownership to another address; owner only",
		RunE:  transferOwnershipFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(NewOwnerKey, "", "Address becoming the owner (required)")
	return c
}

func transferOwnershipFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		newOwner, err := getAddress(flags, NewOwnerKey)
		if err != nil {
			return nil, err
		}
		return &txs.TransferOwnershipTx{BaseTx: base, NewOwner: newOwner}, nil
	})
}

func proposeCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "propose",
		Short: "Opens a governance proposal",
		RunE:  proposeFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(TitleKey, "", "Title of the proposal (required)")
	flags.String(DescriptionKey, "", "Full text of the proposal")
	flags.Int64(StartTimeKey, 0, "Unix time at which voting opens (required)")
	flags.Int64(EndTimeKey, 0, "Unix time at which voting closes (required)")
	return c
}

func proposeFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		title, err := flags.GetString(TitleKey)
		if err != nil {
			return nil, err
		}
		description, err := flags.GetString(DescriptionKey)
		if err != nil {
			return nil, err
		}
		startTime, err := flags.GetInt64(StartTimeKey)
		if err != nil {
			return nil, err
		}
		endTime, err := flags.GetInt64(EndTimeKey)
		if err != nil {
			return nil, err
		}
		return &txs.CreateProposalTx{
			BaseTx:      base,
			Title:       title,
			Description: description,
			StartTime:   startTime,
			EndTime:     endTime,
		}, nil
	})
}

func voteCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "vote",
		Short: "Casts a ballot on a proposal",
		RunE:  voteFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal being voted on (required)")
	flags.String(ChoiceKey, "for", "Ballot: for, against, or abstain")
	return c
}

func voteFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		proposalID, err := getID(flags, ProposalIDKey)
		if err != nil {
			return nil, err
		}
		choiceStr, err := flags.GetString(ChoiceKey)
		if err != nil {
			return nil, err
		}
		choice, err := governance.ParseChoice(choiceStr)
		if err != nil {
			return nil, err
		}
		return &txs.CastVoteTx{BaseTx: base, ProposalID: proposalID, Choice: choice}, nil
	})
}

func finalizeCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "finalize",
		Short: "Settles a proposal whose voting window has ended",
		RunE:  finalizeFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal to settle (required)")
	return c
}

func finalizeFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		proposalID, err := getID(flags, ProposalIDKey)
		if err != nil {
			return nil, err
		}
		return &txs.FinalizeProposalTx{BaseTx: base, ProposalID: proposalID}, nil
	})
}

func executeCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "execute",
		Short: "Marks a passed proposal as executed",
		RunE:  executeFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal to execute (required)")
	return c
}

func executeFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		proposalID, err := getID(flags, ProposalIDKey)
		if err != nil {
			return nil, err
		}
		return &txs.ExecuteProposalTx{BaseTx: base, ProposalID: proposalID}, nil
	})
}

func cancelCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "cancel",
		Short: "Withdraws a proposal before it settles; proposer or owner only",
		RunE:  cancelFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	flags.String(ProposalIDKey, "", "Proposal to cancel (required)")
	return c
}

func cancelFunc(c *cobra.Command, args []string) error {
	return issueTx(c, args, func(flags *pflag.FlagSet, base txs.BaseTx) (txs.UnsignedTx, error) {
		proposalID, err := getID(flags, ProposalIDKey)
		if err != nil {
			return nil, err
		}
		return &txs.CancelProposalTx{BaseTx: base, ProposalID: proposalID}, nil
	})
}
