// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"bytes"
	"fmt"

	"github.com/google/btree"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/govvm/governance"
)

// activeIndex is the singleton row backing the live-proposal set. Entries
// are appended on creation and swap-removed on finalization or
// cancellation, so the slice order is creation order with removal
// artifacts.
type activeIndex struct {
	Entries []activeEntry `serialize:"true"`
}

type activeEntry struct {
	ID      ids.ID `serialize:"true"`
	EndTime int64  `serialize:"true"`
}

func activeEntryLess(a, b activeEntry) bool {
	if a.EndTime != b.EndTime {
		return a.EndTime < b.EndTime
	}
	return bytes.Compare(a.ID[:], b.ID[:]) < 0
}

// GetProposal returns the stored proposal [proposalID], or
// database.ErrNotFound if it was never created.
func (s *State) GetProposal(proposalID ids.ID) (*governance.Proposal, error) {
	if proposal, found := s.proposalCache.Get(proposalID); found {
		cp := proposal
		return &cp, nil
	}

	bytes, err := s.proposalDB.Get(proposalID[:])
	if err != nil {
		return nil, err
	}

	proposal := &governance.Proposal{}
	if _, err := Codec.Unmarshal(bytes, proposal); err != nil {
		return nil, err
	}
	s.proposalCache.Put(proposalID, *proposal)
	cp := *proposal
	return &cp, nil
}

// HasProposal reports whether [proposalID] exists.
func (s *State) HasProposal(proposalID ids.ID) (bool, error) {
	if _, found := s.proposalCache.Get(proposalID); found {
		return true, nil
	}
	return s.proposalDB.Has(proposalID[:])
}

// PutProposal stores [proposal] under its ID.
func (s *State) PutProposal(proposal *governance.Proposal) error {
	bytes, err := Codec.Marshal(codecVersion, proposal)
	if err != nil {
		return err
	}
	if err := s.proposalDB.Put(proposal.ID[:], bytes); err != nil {
		return err
	}
	s.proposalCache.Put(proposal.ID, *proposal)
	return nil
}

// GetVote returns the ballot [voter] cast on [proposalID], or
// database.ErrNotFound if they have not voted.
func (s *State) GetVote(proposalID ids.ID, voter ids.ShortID) (*governance.Vote, error) {
	bytes, err := s.voteDB.Get(voteKey(proposalID, voter))
	if err != nil {
		return nil, err
	}
	vote := &governance.Vote{}
	if _, err := Codec.Unmarshal(bytes, vote); err != nil {
		return nil, err
	}
	return vote, nil
}

// HasVoted reports whether [voter] has already cast a ballot on
// [proposalID].
func (s *State) HasVoted(proposalID ids.ID, voter ids.ShortID) (bool, error) {
	return s.voteDB.Has(voteKey(proposalID, voter))
}

// PutVote records a ballot. Callers must check HasVoted first; a vote row
// is never overwritten.
func (s *State) PutVote(vote *governance.Vote) error {
	bytes, err := Codec.Marshal(codecVersion, vote)
	if err != nil {
		return err
	}
	return s.voteDB.Put(voteKey(vote.ProposalID, vote.Voter), bytes)
}

// GetProposalVotes returns every ballot cast on [proposalID].
func (s *State) GetProposalVotes(proposalID ids.ID) ([]*governance.Vote, error) {
	iter := s.voteDB.NewIteratorWithPrefix(proposalID[:])
	defer iter.Release()

	var votes []*governance.Vote
	for iter.Next() {
		vote := &governance.Vote{}
		if _, err := Codec.Unmarshal(iter.Value(), vote); err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, iter.Error()
}

func voteKey(proposalID ids.ID, voter ids.ShortID) []byte {
	key := make([]byte, 0, len(proposalID)+len(voter))
	key = append(key, proposalID[:]...)
	return append(key, voter[:]...)
}

// PushActiveProposal appends [proposalID] to the live-proposal set.
func (s *State) PushActiveProposal(proposalID ids.ID, endTime int64) error {
	index, err := s.getActiveIndex()
	if err != nil {
		return err
	}

	entry := activeEntry{ID: proposalID, EndTime: endTime}
	index.Entries = append(index.Entries, entry)
	if err := s.putActiveIndex(index); err != nil {
		return err
	}
	s.activeTree.ReplaceOrInsert(entry)
	return nil
}

// RemoveActiveProposal swap-removes [proposalID] from the live-proposal
// set: the removed slot is filled with the last entry and the slice is
// truncated.
func (s *State) RemoveActiveProposal(proposalID ids.ID) error {
	index, err := s.getActiveIndex()
	if err != nil {
		return err
	}

	for i, entry := range index.Entries {
		if entry.ID != proposalID {
			continue
		}
		last := len(index.Entries) - 1
		index.Entries[i] = index.Entries[last]
		index.Entries = index.Entries[:last]
		if err := s.putActiveIndex(index); err != nil {
			return err
		}
		s.activeTree.Delete(entry)
		return nil
	}
	return fmt.Errorf("%w: proposal %s is not active", database.ErrNotFound, proposalID)
}

// ActiveProposalIDs returns the IDs of the live proposals in stored order.
func (s *State) ActiveProposalIDs() ([]ids.ID, error) {
	index, err := s.getActiveIndex()
	if err != nil {
		return nil, err
	}
	proposalIDs := make([]ids.ID, len(index.Entries))
	for i, entry := range index.Entries {
		proposalIDs[i] = entry.ID
	}
	return proposalIDs, nil
}

// NumActiveProposals returns the size of the live-proposal set.
func (s *State) NumActiveProposals() int {
	return s.activeTree.Len()
}

// ActiveProposalsByDeadline returns up to [limit] live proposals ordered by
// voting deadline, soonest first. A non-positive limit returns all of them.
func (s *State) ActiveProposalsByDeadline(limit int) ([]*governance.Proposal, error) {
	if limit <= 0 {
		limit = s.activeTree.Len()
	}

	proposalIDs := make([]ids.ID, 0, limit)
	s.activeTree.Ascend(func(entry activeEntry) bool {
		proposalIDs = append(proposalIDs, entry.ID)
		return len(proposalIDs) < limit
	})

	proposals := make([]*governance.Proposal, len(proposalIDs))
	for i, proposalID := range proposalIDs {
		proposal, err := s.GetProposal(proposalID)
		if err != nil {
			return nil, err
		}
		proposals[i] = proposal
	}
	return proposals, nil
}

// ProposalsByStatus returns up to [limit] proposals whose stored status is
// [status], in proposal ID order. A non-positive limit returns all of them.
// This scans the proposal bucket; callers listing live proposals should use
// ActiveProposalsByDeadline instead.
func (s *State) ProposalsByStatus(status governance.Status, limit int) ([]*governance.Proposal, error) {
	iter := s.proposalDB.NewIterator()
	defer iter.Release()

	var proposals []*governance.Proposal
	for iter.Next() {
		proposal := &governance.Proposal{}
		if _, err := Codec.Unmarshal(iter.Value(), proposal); err != nil {
			return nil, err
		}
		if proposal.Status != status {
			continue
		}
		proposals = append(proposals, proposal)
		if limit > 0 && len(proposals) >= limit {
			break
		}
	}
	return proposals, iter.Error()
}

// DueProposalIDs returns the IDs of live proposals whose voting window
// closed at or before [now], ordered by deadline.
func (s *State) DueProposalIDs(now int64) []ids.ID {
	var due []ids.ID
	s.activeTree.AscendLessThan(activeEntry{EndTime: now + 1}, func(entry activeEntry) bool {
		due = append(due, entry.ID)
		return true
	})
	return due
}

func (s *State) getActiveIndex() (*activeIndex, error) {
	index := &activeIndex{}
	bytes, err := s.singletonDB.Get(ActiveProposalsKey)
	switch err {
	case nil:
	case database.ErrNotFound:
		return index, nil
	default:
		return nil, err
	}
	if _, err := Codec.Unmarshal(bytes, index); err != nil {
		return nil, err
	}
	return index, nil
}

func (s *State) putActiveIndex(index *activeIndex) error {
	bytes, err := Codec.Marshal(codecVersion, index)
	if err != nil {
		return err
	}
	return s.singletonDB.Put(ActiveProposalsKey, bytes)
}

// rebuildActiveTree reloads the deadline index from the stored
// live-proposal set.
func (s *State) rebuildActiveTree() error {
	index, err := s.getActiveIndex()
	if err != nil {
		return err
	}
	tree := btree.NewG(2, activeEntryLess)
	for _, entry := range index.Entries {
		tree.ReplaceOrInsert(entry)
	}
	s.activeTree = tree
	return nil
}
