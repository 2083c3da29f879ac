// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
	"github.com/luxfi/utils"

	"github.com/luxfi/govvm/governance"
)

func newTestGenesis() *Genesis {
	allocations := []Allocation{
		{Address: ids.ShortID{1}, Balance: 1_000_000},
		{Address: ids.ShortID{2}, Balance: 500_000},
	}
	utils.Sort(allocations)
	return &Genesis{
		Timestamp:   1_700_000_000,
		Token:       Token{Name: "Governance Token", Symbol: "GOV", Denomination: 9},
		Allocations: allocations,
		Owner:       ids.ShortID{1},
		Params:      governance.DefaultParams(),
	}
}

func TestGenesisValidate(t *testing.T) {
	tests := []struct {
		name        string
		modify      func(*Genesis)
		expectedErr error
	}{
		{
			name:   "valid",
			modify: func(*Genesis) {},
		},
		{
			name: "empty token name",
			modify: func(g *Genesis) {
				g.Token.Name = ""
			},
			expectedErr: errEmptyName,
		},
		{
			name: "empty symbol",
			modify: func(g *Genesis) {
				g.Token.Symbol = ""
			},
			expectedErr: errEmptySymbol,
		},
		{
			name: "denomination too big",
			modify: func(g *Genesis) {
				g.Token.Denomination = MaxDenomination + 1
			},
			expectedErr: errDenominationTooBig,
		},
		{
			name: "no allocations",
			modify: func(g *Genesis) {
				g.Allocations = nil
			},
			expectedErr: errNoAllocations,
		},
		{
			name: "unsorted allocations",
			modify: func(g *Genesis) {
				g.Allocations[0], g.Allocations[1] = g.Allocations[1], g.Allocations[0]
			},
			expectedErr: errUnsortedAllocations,
		},
		{
			name: "duplicate allocations",
			modify: func(g *Genesis) {
				g.Allocations[1].Address = g.Allocations[0].Address
			},
			expectedErr: errUnsortedAllocations,
		},
		{
			name: "allocation to empty address",
			modify: func(g *Genesis) {
				g.Allocations = []Allocation{{Address: ids.ShortEmpty, Balance: 1}}
			},
			expectedErr: errEmptyAllocation,
		},
		{
			name: "empty owner",
			modify: func(g *Genesis) {
				g.Owner = ids.ShortEmpty
			},
			expectedErr: errEmptyOwner,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := newTestGenesis()
			test.modify(g)
			require.ErrorIs(t, g.Validate(), test.expectedErr)
		})
	}
}

func TestGenesisSupplyOverflow(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	g.Allocations = []Allocation{
		{Address: ids.ShortID{1}, Balance: math.MaxUint64},
		{Address: ids.ShortID{2}, Balance: 1},
	}
	require.Error(g.Validate())

	_, err := g.InitialSupply()
	require.Error(err)
}

func TestGenesisRoundTrip(t *testing.T) {
	require := require.New(t)

	g := newTestGenesis()
	genesisBytes, err := g.Bytes()
	require.NoError(err)

	parsed, err := Parse(genesisBytes)
	require.NoError(err)
	require.Equal(g, parsed)

	supply, err := parsed.InitialSupply()
	require.NoError(err)
	require.Equal(uint64(1_500_000), supply)
}

func TestGenesisFromJSON(t *testing.T) {
	require := require.New(t)

	// Unsorted allocations and unset params: New sorts and fills defaults.
	doc := newTestGenesis()
	doc.Allocations[0], doc.Allocations[1] = doc.Allocations[1], doc.Allocations[0]
	doc.Params = governance.Params{}
	jsonBytes, err := json.Marshal(doc)
	require.NoError(err)

	g, err := New(jsonBytes)
	require.NoError(err)
	require.True(utils.IsSortedAndUnique(g.Allocations))
	require.Equal(governance.DefaultParams(), g.Params)
	require.Equal(doc.Token, g.Token)
	require.Equal(doc.Owner, g.Owner)
}

func TestGenesisParseInvalid(t *testing.T) {
	require := require.New(t)

	_, err := Parse([]byte("not a genesis"))
	require.Error(err)

	_, err = New([]byte("{"))
	require.Error(err)
}
