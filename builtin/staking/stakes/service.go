// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
)

var (
	slotStakes  = lid.BytesToBytes32([]byte("stakes"))
	slotStakers = lid.BytesToBytes32([]byte("stakers"))
	slotKnown   = lid.BytesToBytes32([]byte("known-stakers"))
)

// Service stores the per account records and the list of every account
// that ever staked.
type Service struct {
	stakes  *solidity.Mapping[lid.Address, *Stake]
	stakers *solidity.List[lid.Address]
	known   *solidity.Mapping[lid.Address, bool]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		stakes:  solidity.NewMapping[lid.Address, *Stake](sctx, slotStakes),
		stakers: solidity.NewList[lid.Address](sctx, slotStakers),
		known:   solidity.NewMapping[lid.Address, bool](sctx, slotKnown),
	}
}

// Get returns the record of addr, zero valued if it never staked.
func (s *Service) Get(addr lid.Address) (*Stake, error) {
	st, err := s.stakes.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	if st == nil {
		return newStake(), nil
	}
	return st.normalize(), nil
}

func (s *Service) Set(addr lid.Address, st *Stake) error {
	if st.IsEmpty() {
		s.stakes.Clear(addr)
		return nil
	}
	if st.Value.Sign() > 0 {
		known, err := s.known.Get(addr)
		if err != nil {
			return errors.Wrap(err, "failed to get staker")
		}
		if !known {
			if err := s.known.Set(addr, true); err != nil {
				return err
			}
			if err := s.stakers.Push(addr); err != nil {
				return err
			}
		}
	}
	if err := s.stakes.Set(addr, st); err != nil {
		return errors.Wrap(err, "failed to set stake")
	}
	return nil
}

// Stakers lists every account that has ever held a stake, in order of first stake.
func (s *Service) Stakers() ([]lid.Address, error) {
	var addrs []lid.Address
	err := s.stakers.Each(func(_ uint64, addr lid.Address) (bool, error) {
		addrs = append(addrs, addr)
		return true, nil
	})
	return addrs, err
}
