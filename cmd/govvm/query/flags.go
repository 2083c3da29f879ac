// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package query

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luxfi/ids"

	"github.com/luxfi/govvm/api"
)

const (
	URIKey     = "uri"
	ChainIDKey = "chain-id"

	AddressKey    = "address"
	OwnerKey      = "owner"
	SpenderKey    = "spender"
	ProposalIDKey = "proposal-id"
	VoterKey      = "voter"
	StatusKey     = "status"
	LimitKey      = "limit"
)

// AddFlags registers the flags every query subcommand shares.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, "http://127.0.0.1:9650", "API URI to reach the chain at")
	flags.String(ChainIDKey, "govvm", "Chain to query")
}

// newClient parses the shared flags and dials the chain's endpoint.
func newClient(flags *pflag.FlagSet, args []string) (*api.Client, error) {
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	uri, err := flags.GetString(URIKey)
	if err != nil {
		return nil, err
	}
	chainID, err := flags.GetString(ChainIDKey)
	if err != nil {
		return nil, err
	}
	return api.NewClient(uri, chainID), nil
}

// getAddress reads a flag holding a bech32 address or a cb58 short ID.
func getAddress(flags *pflag.FlagSet, key string) (ids.ShortID, error) {
	addrStr, err := flags.GetString(key)
	if err != nil {
		return ids.ShortEmpty, err
	}
	addr, err := api.ParseAddress(addrStr)
	if err != nil {
		return ids.ShortEmpty, fmt.Errorf("invalid --%s: %w", key, err)
	}
	return addr, nil
}

// getID reads a flag holding a cb58-encoded ID.
func getID(flags *pflag.FlagSet, key string) (ids.ID, error) {
	idStr, err := flags.GetString(key)
	if err != nil {
		return ids.Empty, err
	}
	id, err := ids.FromString(idStr)
	if err != nil {
		return ids.Empty, fmt.Errorf("invalid --%s: %w", key, err)
	}
	return id, nil
}
