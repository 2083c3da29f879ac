// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"errors"
	"fmt"
)

const (
	// MaxBps is the denominator of all basis-point parameters.
	MaxBps = 10_000

	defaultQuorumBps       = 2_000 // 20% of the total supply must participate
	defaultThresholdBps    = 5_000 // strict majority of the decided weight
	defaultMinVotingPeriod = 60 * 60
	defaultMaxVotingPeriod = 14 * 24 * 60 * 60
)

var (
	errQuorumTooLarge    = fmt.Errorf("quorum exceeds %d bps", MaxBps)
	errThresholdTooLarge = fmt.Errorf("threshold exceeds %d bps", MaxBps)
	errZeroMinPeriod     = errors.New("min voting period must be positive")
	errPeriodsInverted   = errors.New("max voting period below min voting period")
)

// Params are the chain-wide governance parameters. They are set in the
// genesis and fixed for the lifetime of the chain.
type Params struct {
	// QuorumBps is the fraction of the total supply, in basis points, that
	// must vote (for, against, or abstain) for a proposal to be decidable.
	QuorumBps uint32 `serialize:"true" json:"quorumBps"`

	// ThresholdBps is the fraction of the decided weight (for + against),
	// in basis points, that the for-tally must strictly exceed for a
	// proposal to pass. Abstain weight counts toward quorum only.
	ThresholdBps uint32 `serialize:"true" json:"thresholdBps"`

	// MinVotingPeriod and MaxVotingPeriod bound the length of a proposal's
	// voting window, in seconds.
	MinVotingPeriod int64 `serialize:"true" json:"minVotingPeriod"`
	MaxVotingPeriod int64 `serialize:"true" json:"maxVotingPeriod"`

	// ProposalThreshold is the minimum balance an address must hold to
	// create a proposal.
	ProposalThreshold uint64 `serialize:"true" json:"proposalThreshold"`
}

// DefaultParams returns the parameters used when the genesis leaves them
// unset.
func DefaultParams() Params {
	return Params{
		QuorumBps:         defaultQuorumBps,
		ThresholdBps:      defaultThresholdBps,
		MinVotingPeriod:   defaultMinVotingPeriod,
		MaxVotingPeriod:   defaultMaxVotingPeriod,
		ProposalThreshold: 0,
	}
}

// Verify returns nil iff the parameters are internally consistent.
func (p *Params) Verify() error {
	switch {
	case p.QuorumBps > MaxBps:
		return errQuorumTooLarge
	case p.ThresholdBps > MaxBps:
		return errThresholdTooLarge
	case p.MinVotingPeriod <= 0:
		return errZeroMinPeriod
	case p.MaxVotingPeriod < p.MinVotingPeriod:
		return errPeriodsInverted
	}
	return nil
}

// ValidWindow reports whether a voting window of [length] seconds is
// within the configured bounds.
func (p *Params) ValidWindow(length int64) bool {
	return length >= p.MinVotingPeriod && length <= p.MaxVotingPeriod
}
