// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"math/bits"

	safemath "github.com/luxfi/math"
)

// Outcome is the result of evaluating a proposal's tallies against the
// governance parameters.
type Outcome struct {
	Participation uint64 `json:"participation"`
	QuorumMet     bool   `json:"quorumMet"`
	ThresholdMet  bool   `json:"thresholdMet"`
	Passed        bool   `json:"passed"`
}

// Evaluate applies [params] to the proposal's tallies. Quorum compares the
// full participation (for + against + abstain) against the total supply;
// the threshold compares the for-weight against the decided weight only.
// A proposal passes iff both checks hold.
func Evaluate(p *Proposal, params Params, totalSupply uint64) (Outcome, error) {
	participation, err := p.Participation()
	if err != nil {
		return Outcome{}, err
	}
	decided, err := safemath.Add64(p.ForWeight, p.AgainstWeight)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Participation: participation,
		QuorumMet:     meetsBps(participation, totalSupply, params.QuorumBps),
		ThresholdMet:  exceedsBps(p.ForWeight, decided, params.ThresholdBps),
	}
	out.Passed = out.QuorumMet && out.ThresholdMet
	return out, nil
}

// meetsBps reports whether num*MaxBps >= den*bps. Both products are
// compared as 128-bit values so full-range uint64 weights cannot overflow.
func meetsBps(num, den uint64, bps uint32) bool {
	lhsHi, lhsLo := bits.Mul64(num, MaxBps)
	rhsHi, rhsLo := bits.Mul64(den, uint64(bps))
	if lhsHi != rhsHi {
		return lhsHi > rhsHi
	}
	return lhsLo >= rhsLo
}

// exceedsBps reports whether num*MaxBps > den*bps.
func exceedsBps(num, den uint64, bps uint32) bool {
	lhsHi, lhsLo := bits.Mul64(num, MaxBps)
	rhsHi, rhsLo := bits.Mul64(den, uint64(bps))
	if lhsHi != rhsHi {
		return lhsHi > rhsHi
	}
	return lhsLo > rhsLo
}
