// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"

	"github.com/luxfi/govvm/genesis"
	"github.com/luxfi/govvm/governance"
)

const codecVersion = 0

// Codec serializes the rows persisted by the state: accounts, proposals,
// votes, and the singleton records.
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()

	// Register types
	c.RegisterType(&Account{})
	c.RegisterType(&governance.Proposal{})
	c.RegisterType(&governance.Vote{})
	c.RegisterType(&governance.Params{})
	c.RegisterType(&genesis.Token{})
	c.RegisterType(&activeIndex{})

	Codec = codec.NewDefaultManager()
	if err := Codec.RegisterCodec(codecVersion, c); err != nil {
		panic(err)
	}
}
