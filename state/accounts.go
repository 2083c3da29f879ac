// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/luxfi/database"
	"github.com/luxfi/ids"
)

// Account is the per-address ledger row.
type Account struct {
	Balance uint64 `serialize:"true" json:"balance"`
	Nonce   uint64 `serialize:"true" json:"nonce"`
}

// GetAccount returns the account stored for [addr]. Unknown addresses have
// a zero account: no balance and a zero nonce.
func (s *State) GetAccount(addr ids.ShortID) (*Account, error) {
	if account, found := s.accountCache.Get(addr); found {
		cp := account
		return &cp, nil
	}

	bytes, err := s.accountDB.Get(addr[:])
	switch err {
	case nil:
	case database.ErrNotFound:
		return &Account{}, nil
	default:
		return nil, err
	}

	account := &Account{}
	if _, err := Codec.Unmarshal(bytes, account); err != nil {
		return nil, err
	}
	s.accountCache.Put(addr, *account)
	cp := *account
	return &cp, nil
}

// PutAccount stores [account] under [addr].
func (s *State) PutAccount(addr ids.ShortID, account *Account) error {
	bytes, err := Codec.Marshal(codecVersion, account)
	if err != nil {
		return err
	}
	if err := s.accountDB.Put(addr[:], bytes); err != nil {
		return err
	}
	s.accountCache.Put(addr, *account)
	return nil
}

// GetBalance returns the token balance of [addr], zero for unknown
// addresses.
func (s *State) GetBalance(addr ids.ShortID) (uint64, error) {
	account, err := s.GetAccount(addr)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

// GetAllowance returns the amount [spender] may move out of [owner]'s
// balance, zero when no approval exists.
func (s *State) GetAllowance(owner, spender ids.ShortID) (uint64, error) {
	amount, err := database.GetUInt64(s.allowanceDB, allowanceKey(owner, spender))
	if err == database.ErrNotFound {
		return 0, nil
	}
	return amount, err
}

// PutAllowance stores the approval of [owner] for [spender]. A zero amount
// deletes the row.
func (s *State) PutAllowance(owner, spender ids.ShortID, amount uint64) error {
	key := allowanceKey(owner, spender)
	if amount == 0 {
		return s.allowanceDB.Delete(key)
	}
	return database.PutUInt64(s.allowanceDB, key, amount)
}

func allowanceKey(owner, spender ids.ShortID) []byte {
	key := make([]byte, 0, len(owner)+len(spender))
	key = append(key, owner[:]...)
	return append(key, spender[:]...)
}
