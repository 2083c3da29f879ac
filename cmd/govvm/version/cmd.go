// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package version prints the VM build information.
package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/luxfi/version"

	"github.com/luxfi/govvm"
)

func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the VM version and the protocols it speaks",
		RunE:  versionFunc,
	}
}

func versionFunc(c *cobra.Command, args []string) error {
	fmt.Fprintf(
		c.OutOrStdout(),
		"Governance-VM/%s [node=%s, rpcchainvm=%d]\n",
		govvm.Version, version.Current, version.RPCChainVMProtocol,
	)
	return nil
}
