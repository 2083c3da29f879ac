// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/luxfi/log"
	"github.com/luxfi/utils/ulimit"
	"github.com/luxfi/version"
	"github.com/luxfi/vm/vms/rpcchainvm"

	"github.com/luxfi/govvm"
)

func main() {
	versionStr := fmt.Sprintf("Governance-VM/%s [node=%s, rpcchainvm=%d]",
		govvm.Version, version.Current, version.RPCChainVMProtocol)

	if err := ulimit.Set(ulimit.DefaultFDLimit, log.Root()); err != nil {
		fmt.Printf("failed to set fd limit: %s\n", err)
		os.Exit(1)
	}

	vm := govvm.NewChainVM(log.Root())

	fmt.Printf("Starting %s\n", versionStr)
	if err := rpcchainvm.Serve(context.Background(), log.Root(), vm); err != nil {
		fmt.Printf("rpcchainvm.Serve error: %s\n", err)
		os.Exit(1)
	}
}
