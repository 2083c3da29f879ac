// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package run serves the VM as an rpcchainvm plugin.
package run

import (
	"github.com/spf13/cobra"

	"github.com/luxfi/log"
	"github.com/luxfi/utils/ulimit"
	"github.com/luxfi/vm/vms/rpcchainvm"

	"github.com/luxfi/govvm"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Runs the governance VM plugin",
		RunE:  runFunc,
	}
}

func runFunc(c *cobra.Command, args []string) error {
	logger := log.Root()
	if err := ulimit.Set(ulimit.DefaultFDLimit, logger); err != nil {
		return err
	}
	vm := govvm.NewChainVM(logger)
	return rpcchainvm.Serve(c.Context(), logger, vm)
}
