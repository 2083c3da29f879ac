// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/luxfi/govvm/cmd/govvm/genesis"
	"github.com/luxfi/govvm/cmd/govvm/issue"
	"github.com/luxfi/govvm/cmd/govvm/query"
	"github.com/luxfi/govvm/cmd/govvm/run"
	"github.com/luxfi/govvm/cmd/govvm/version"
)

func init() {
	cobra.EnablePrefixMatching = true
}

func main() {
	cmd := &cobra.Command{
		Use:   "govvm",
		Short: "Runs and interacts with the governance VM",
	}
	cmd.AddCommand(
		genesis.Command(),
		issue.Command(),
		query.Command(),
		run.Command(),
		version.Command(),
	)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
