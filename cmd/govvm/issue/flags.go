// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package issue

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/ids"

	"github.com/luxfi/govvm/api"
)

const (
	URIKey        = "uri"
	ChainIDKey    = "chain-id"
	PrivateKeyKey = "private-key"

	ToKey          = "to"
	OwnerKey       = "owner"
	SpenderKey     = "spender"
	NewOwnerKey    = "new-owner"
	AmountKey      = "amount"
	TitleKey       = "title"
	DescriptionKey = "description"
	StartTimeKey   = "start-time"
	EndTimeKey     = "end-time"
	ProposalIDKey  = "proposal-id"
	ChoiceKey      = "choice"
)

// AddFlags registers the flags every issue subcommand shares.
func AddFlags(flags *pflag.FlagSet) {
	flags.String(URIKey, "http://127.0.0.1:9650", "API URI to reach the chain at")
	flags.String(ChainIDKey, "govvm", "Chain to issue the transaction on")
	flags.String(PrivateKeyKey, "", "Private key to sign the transaction with (required)")
}

type Config struct {
	URI        string
	ChainID    string
	PrivateKey *secp256k1.PrivateKey
}

func ParseFlags(flags *pflag.FlagSet, args []string) (*Config, error) {
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

	skStr, err := flags.GetString(PrivateKeyKey)
	if err != nil {
		return nil, err
	}

	var sk secp256k1.PrivateKey
	if err := sk.UnmarshalText([]byte(`"` + skStr + `"`)); err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Config{
		URI:        uri,
		ChainID:    chainID,
		PrivateKey: &sk,
	}, nil
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
