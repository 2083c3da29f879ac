// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package govvm

import (
	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

// CodecVersion is the current codec version for block serialization.
const CodecVersion = 0

// Codec serializes blocks for the wire and the database.
var Codec codec.Manager

func init() {
	c := linearcodec.NewDefault()

	c.RegisterType(&Block{})

	Codec = codec.NewDefaultManager()
	if err := Codec.RegisterCodec(CodecVersion, c); err != nil {
		panic(err)
	}
}
