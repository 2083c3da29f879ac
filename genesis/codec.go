// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const CodecVersion = 0

// Codec serializes the genesis document.
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()

	c.RegisterType(&Genesis{})
	c.RegisterType(&Token{})
	c.RegisterType(&Allocation{})

	Codec = codec.NewDefaultManager()
	if err := Codec.RegisterCodec(CodecVersion, c); err != nil {
		panic(err)
	}
}
