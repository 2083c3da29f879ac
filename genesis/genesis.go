// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package genesis defines the genesis document of the governance VM: the
// token metadata, the initial balance allocations, the owning address, and
// the governance parameters.
package genesis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/utils"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/govvm/governance"
)

const (
	// MaxNameLen bounds the token name.
	MaxNameLen = 128
	// MaxSymbolLen bounds the token symbol.
	MaxSymbolLen = 16
	// MaxDenomination bounds the token denomination.
	MaxDenomination = 32
)

var (
	errEmptyName           = errors.New("token name is empty")
	errNameTooLong         = fmt.Errorf("token name exceeds %d bytes", MaxNameLen)
	errEmptySymbol         = errors.New("token symbol is empty")
	errSymbolTooLong       = fmt.Errorf("token symbol exceeds %d bytes", MaxSymbolLen)
	errDenominationTooBig  = fmt.Errorf("token denomination exceeds %d", MaxDenomination)
	errNoAllocations       = errors.New("genesis has no allocations")
	errUnsortedAllocations = errors.New("genesis allocations are not sorted and unique")
	errEmptyAllocation     = errors.New("genesis allocation to the empty address")
	errEmptyOwner          = errors.New("genesis owner is the empty address")
)

// Token is the metadata of the chain's fungible token.
type Token struct {
	Name         string `serialize:"true" json:"name"`
	Symbol       string `serialize:"true" json:"symbol"`
	Denomination uint8  `serialize:"true" json:"denomination"`
}

// Verify returns nil iff the token metadata is well-formed.
func (t *Token) Verify() error {
	switch {
	case len(t.Name) == 0:
		return errEmptyName
	case len(t.Name) > MaxNameLen:
		return errNameTooLong
	case len(t.Symbol) == 0:
		return errEmptySymbol
	case len(t.Symbol) > MaxSymbolLen:
		return errSymbolTooLong
	case t.Denomination > MaxDenomination:
		return errDenominationTooBig
	}
	return nil
}

// Allocation grants an address an initial balance.
type Allocation struct {
	Address ids.ShortID `serialize:"true" json:"address"`
	Balance uint64      `serialize:"true" json:"balance"`
}

// Compare implements utils.Sortable over the allocated address.
func (a Allocation) Compare(other Allocation) int {
	return bytes.Compare(a.Address[:], other.Address[:])
}

// Genesis is the chain's initial state.
type Genesis struct {
	Timestamp   int64             `serialize:"true" json:"timestamp"`
	Token       Token             `serialize:"true" json:"token"`
	Allocations []Allocation      `serialize:"true" json:"allocations"`
	Owner       ids.ShortID       `serialize:"true" json:"owner"`
	Params      governance.Params `serialize:"true" json:"params"`
}

// Validate returns nil iff the genesis document is well-formed: valid token
// metadata, sorted and unique allocations to non-empty addresses whose sum
// does not overflow, a non-empty owner, and consistent governance
// parameters.
func (g *Genesis) Validate() error {
	if err := g.Token.Verify(); err != nil {
		return err
	}
	if len(g.Allocations) == 0 {
		return errNoAllocations
	}
	if !utils.IsSortedAndUnique(g.Allocations) {
		return errUnsortedAllocations
	}

	supply := uint64(0)
	for _, alloc := range g.Allocations {
		if alloc.Address == ids.ShortEmpty {
			return errEmptyAllocation
		}
		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return fmt.Errorf("genesis allocations overflow: %w", err)
		}
	}

	if g.Owner == ids.ShortEmpty {
		return errEmptyOwner
	}
	return g.Params.Verify()
}

// InitialSupply returns the sum of the allocated balances.
func (g *Genesis) InitialSupply() (uint64, error) {
	supply := uint64(0)
	for _, alloc := range g.Allocations {
		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return 0, err
		}
	}
	return supply, nil
}

// Bytes returns the canonical serialization of the genesis.
func (g *Genesis) Bytes() ([]byte, error) {
	return Codec.Marshal(CodecVersion, g)
}

// Parse deserializes and validates a genesis document.
func Parse(genesisBytes []byte) (*Genesis, error) {
	g := &Genesis{}
	if _, err := Codec.Unmarshal(genesisBytes, g); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	return g, g.Validate()
}

// New builds a genesis from its JSON document. Allocations are sorted and
// unset governance parameters are replaced with the defaults.
func New(jsonBytes []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(jsonBytes, g); err != nil {
		return nil, fmt.Errorf("failed to parse genesis json: %w", err)
	}

	utils.Sort(g.Allocations)
	if g.Params == (governance.Params{}) {
		g.Params = governance.DefaultParams()
	}
	return g, g.Validate()
}
