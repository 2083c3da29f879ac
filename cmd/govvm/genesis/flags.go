// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/spf13/pflag"
)

const (
	GenesisFileKey = "genesis-file"
	OutputKey      = "output"
)

func AddFlags(flags *pflag.FlagSet) {
	flags.String(GenesisFileKey, "", "Path of the genesis JSON document (required)")
	flags.String(OutputKey, "", "Path to write the genesis bytes to; prints hex to stdout when empty")
}

type Config struct {
	GenesisFile string
	Output      string
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	genesisFile, err := flags.GetString(GenesisFileKey)
	if err != nil {
		return nil, err
	}

	output, err := flags.GetString(OutputKey)
	if err != nil {
		return nil, err
	}

	return &Config{
		GenesisFile: genesisFile,
		Output:      output,
	}, nil
}
