// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the runtime parameters of the governance VM.
package config

import (
	"encoding/json"
	"errors"
)

var (
	errNoMempoolSpace  = errors.New("mempool size must be positive")
	errNoBlockCapacity = errors.New("max txs per block must be positive")

	// DefaultConfig is used for any field the chain config leaves unset.
	DefaultConfig = Config{
		MempoolSize:       1024,
		MaxTxsPerBlock:    256,
		IndexTransactions: true,
		APIEnabled:        true,
		PubSubEnabled:     true,
	}
)

// Config contains the node-operator tunables of the governance VM. It is
// parsed from the chain config bytes handed to Initialize.
type Config struct {
	// MempoolSize bounds the number of transactions waiting to be built
	// into a block.
	MempoolSize int `json:"mempoolSize"`
	// MaxTxsPerBlock bounds the number of transactions in a built block.
	MaxTxsPerBlock int `json:"maxTxsPerBlock"`
	// IndexTransactions enables indexing of accepted transactions by ID.
	IndexTransactions bool `json:"indexTransactions"`
	// APIEnabled exposes the JSON-RPC service.
	APIEnabled bool `json:"apiEnabled"`
	// PubSubEnabled exposes the websocket event feed.
	PubSubEnabled bool `json:"pubSubEnabled"`
}

// Verify returns nil if the config is internally consistent.
func (c *Config) Verify() error {
	switch {
	case c.MempoolSize <= 0:
		return errNoMempoolSpace
	case c.MaxTxsPerBlock <= 0:
		return errNoBlockCapacity
	default:
		return nil
	}
}

// ParseConfig overlays [configBytes] on the default config. Empty bytes
// select the defaults unchanged.
func ParseConfig(configBytes []byte) (Config, error) {
	if len(configBytes) == 0 {
		return DefaultConfig, nil
	}

	cfg := DefaultConfig
	if err := json.Unmarshal(configBytes, &cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Verify()
}
