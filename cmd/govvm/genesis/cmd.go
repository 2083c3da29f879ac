// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis converts a genesis JSON document into the bytes the chain
// is created with.
package genesis

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/formatting"

	"github.com/luxfi/govvm/genesis"
)

var errNoGenesisFile = errors.New("a genesis JSON document is required")

func Command() *cobra.Command {
	c := &cobra.Command{
		Use:   "genesis",
		Short: "Validates a genesis JSON document and emits the chain's genesis bytes",
		RunE:  genesisFunc,
	}
	flags := c.Flags()
	AddFlags(flags)
	return c
}

func genesisFunc(c *cobra.Command, args []string) error {
	flags := c.Flags()
	config, err := ParseFlags(flags, args)
	if err != nil {
		return err
	}
	if config.GenesisFile == "" {
		return errNoGenesisFile
	}

	jsonBytes, err := os.ReadFile(config.GenesisFile)
	if err != nil {
		return err
	}
	g, err := genesis.New(jsonBytes)
	if err != nil {
		return err
	}
	genesisBytes, err := g.Bytes()
	if err != nil {
		return err
	}

	if config.Output == "" {
		genesisStr, err := formatting.Encode(formatting.Hex, genesisBytes)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), genesisStr)
		return nil
	}
	return os.WriteFile(config.Output, genesisBytes, 0o644)
}
