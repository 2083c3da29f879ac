// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package governance defines the proposal and voting model maintained by the
// governance VM: proposals with bounded voting windows, weighted for/against/
// abstain tallies, and a monotonic status machine.
package governance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/ids"

	safemath "github.com/luxfi/math"
)

const (
	// MaxTitleLen bounds the length of a proposal title.
	MaxTitleLen = 256
	// MaxDescriptionLen bounds the length of a proposal description.
	MaxDescriptionLen = 4096
)

var (
	// ErrInvalidChoice marks a ballot option outside For/Against/Abstain.
	ErrInvalidChoice = errors.New("invalid vote choice")

	errEmptyTitle         = errors.New("proposal title is empty")
	errTitleTooLong       = fmt.Errorf("proposal title exceeds %d bytes", MaxTitleLen)
	errDescriptionTooLong = fmt.Errorf("proposal description exceeds %d bytes", MaxDescriptionLen)
	errEmptyProposer      = errors.New("proposer is the empty address")
	errInvalidWindow      = errors.New("proposal end time is not after start time")
)

// Status is the lifecycle state of a proposal.
type Status uint8

const (
	StatusPending Status = iota
	StatusActive
	StatusPassed
	StatusFailed
	StatusExecuted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusActive:
		return "Active"
	case StatusPassed:
		return "Passed"
	case StatusFailed:
		return "Failed"
	case StatusExecuted:
		return "Executed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Invalid"
	}
}

// Valid returns nil iff s is one of the defined statuses.
func (s Status) Valid() error {
	if s > StatusCancelled {
		return fmt.Errorf("invalid proposal status %d", uint8(s))
	}
	return nil
}

// ParseStatus is the inverse of Status.String, ignoring case.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(s) {
	case "pending":
		return StatusPending, nil
	case "active":
		return StatusActive, nil
	case "passed":
		return StatusPassed, nil
	case "failed":
		return StatusFailed, nil
	case "executed":
		return StatusExecuted, nil
	case "cancelled":
		return StatusCancelled, nil
	default:
		return 0, fmt.Errorf("unknown proposal status %q", s)
	}
}

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusFailed || s == StatusExecuted || s == StatusCancelled
}

// CanTransition reports whether a proposal may move from s to next. The
// status machine is monotonic: Pending advances to Active by time, Active
// resolves to Passed or Failed, Passed may be Executed once, and only
// Pending or Active proposals may be Cancelled.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusPassed || next == StatusFailed || next == StatusCancelled
	case StatusPassed:
		return next == StatusExecuted
	default:
		return false
	}
}

// VoteChoice is a ballot option.
type VoteChoice uint8

const (
	VoteAgainst VoteChoice = iota
	VoteFor
	VoteAbstain
)

func (c VoteChoice) String() string {
	switch c {
	case VoteAgainst:
		return "Against"
	case VoteFor:
		return "For"
	case VoteAbstain:
		return "Abstain"
	default:
		return "Invalid"
	}
}

// Valid returns nil iff c is one of the defined ballot options.
func (c VoteChoice) Valid() error {
	if c > VoteAbstain {
		return fmt.Errorf("%w: %d", ErrInvalidChoice, uint8(c))
	}
	return nil
}

// ParseChoice is the inverse of VoteChoice.String, ignoring case.
func ParseChoice(s string) (VoteChoice, error) {
	switch strings.ToLower(s) {
	case "against":
		return VoteAgainst, nil
	case "for":
		return VoteFor, nil
	case "abstain":
		return VoteAbstain, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, s)
	}
}

// Proposal is a governance proposal together with its running tallies. The
// stored Status may lag the time-derived one: a Pending proposal whose start
// time has passed reports Active without a state write.
type Proposal struct {
	ID          ids.ID      `serialize:"true" json:"id"`
	Title       string      `serialize:"true" json:"title"`
	Description string      `serialize:"true" json:"description"`
	Proposer    ids.ShortID `serialize:"true" json:"proposer"`

	// Voting is open during [StartTime, EndTime), in unix seconds.
	StartTime int64 `serialize:"true" json:"startTime"`
	EndTime   int64 `serialize:"true" json:"endTime"`

	ForWeight     uint64 `serialize:"true" json:"forWeight"`
	AgainstWeight uint64 `serialize:"true" json:"againstWeight"`
	AbstainWeight uint64 `serialize:"true" json:"abstainWeight"`

	ForVotes     uint32 `serialize:"true" json:"forVotes"`
	AgainstVotes uint32 `serialize:"true" json:"againstVotes"`
	AbstainVotes uint32 `serialize:"true" json:"abstainVotes"`

	Status   Status `serialize:"true" json:"status"`
	Executed bool   `serialize:"true" json:"executed"`
}

// Verify checks the statically checkable proposal fields.
func (p *Proposal) Verify() error {
	switch {
	case len(p.Title) == 0:
		return errEmptyTitle
	case len(p.Title) > MaxTitleLen:
		return errTitleTooLong
	case len(p.Description) > MaxDescriptionLen:
		return errDescriptionTooLong
	case p.Proposer == ids.ShortEmpty:
		return errEmptyProposer
	case p.EndTime <= p.StartTime:
		return errInvalidWindow
	}
	return p.Status.Valid()
}

// CurrentStatus returns the status as of [now], deriving Active from a
// stored Pending once the voting window has opened. All other statuses are
// reported as stored; an Active proposal past its end time stays Active
// until it is finalized.
func (p *Proposal) CurrentStatus(now int64) Status {
	if p.Status == StatusPending && now >= p.StartTime {
		return StatusActive
	}
	return p.Status
}

// VotingOpen reports whether a ballot cast at [now] is accepted.
func (p *Proposal) VotingOpen(now int64) bool {
	return p.CurrentStatus(now) == StatusActive && now >= p.StartTime && now < p.EndTime
}

// VotingClosed reports whether the voting window has ended.
func (p *Proposal) VotingClosed(now int64) bool {
	return now >= p.EndTime
}

// AddVote increases the tally for [choice] by [weight] and increments the
// matching voter count. Tallies only grow; overflow is an error.
func (p *Proposal) AddVote(choice VoteChoice, weight uint64) error {
	if err := choice.Valid(); err != nil {
		return err
	}

	var err error
	switch choice {
	case VoteFor:
		p.ForWeight, err = safemath.Add64(p.ForWeight, weight)
		p.ForVotes++
	case VoteAgainst:
		p.AgainstWeight, err = safemath.Add64(p.AgainstWeight, weight)
		p.AgainstVotes++
	case VoteAbstain:
		p.AbstainWeight, err = safemath.Add64(p.AbstainWeight, weight)
		p.AbstainVotes++
	}
	return err
}

// Participation returns the total weight that has voted.
func (p *Proposal) Participation() (uint64, error) {
	decided, err := safemath.Add64(p.ForWeight, p.AgainstWeight)
	if err != nil {
		return 0, err
	}
	return safemath.Add64(decided, p.AbstainWeight)
}

// Vote is a single recorded ballot. A (ProposalID, Voter) pair is recorded
// at most once; the row doubles as the has-voted marker and the choice
// lookup.
type Vote struct {
	ProposalID ids.ID      `serialize:"true" json:"proposalID"`
	Voter      ids.ShortID `serialize:"true" json:"voter"`
	Choice     VoteChoice  `serialize:"true" json:"choice"`
	Weight     uint64      `serialize:"true" json:"weight"`
}
