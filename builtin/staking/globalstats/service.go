// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
)

var (
	slotTotalStaked        = lid.BytesToBytes32([]byte("total-staked"))
	slotTotalStakers       = lid.BytesToBytes32([]byte("total-stakers"))
	slotProfitPerShare     = lid.BytesToBytes32([]byte("profit-per-share"))
	slotTotalDistributions = lid.BytesToBytes32([]byte("total-distributions"))
	slotTotalStakingTax    = lid.BytesToBytes32([]byte("total-staking-tax"))
	slotTotalUnstakingTax  = lid.BytesToBytes32([]byte("total-unstaking-tax"))
	slotUndistributed      = lid.BytesToBytes32([]byte("undistributed"))
	slotTotalWithdrawn     = lid.BytesToBytes32([]byte("total-withdrawn"))
)

// Totals is a snapshot of the contract wide counters.
type Totals struct {
	TotalStaked        *big.Int
	TotalStakers       *big.Int
	ProfitPerShare     *big.Int
	TotalDistributions *big.Int
	TotalStakingTax    *big.Int
	TotalUnstakingTax  *big.Int
	Undistributed      *big.Int
	TotalWithdrawn     *big.Int
}

// Service manages contract-wide staking totals.
type Service struct {
	totalStaked        *solidity.Uint256
	totalStakers       *solidity.Uint256
	profitPerShare     *solidity.Uint256
	totalDistributions *solidity.Uint256
	totalStakingTax    *solidity.Uint256
	totalUnstakingTax  *solidity.Uint256
	undistributed      *solidity.Uint256
	totalWithdrawn     *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalStaked:        solidity.NewUint256(sctx, slotTotalStaked),
		totalStakers:       solidity.NewUint256(sctx, slotTotalStakers),
		profitPerShare:     solidity.NewUint256(sctx, slotProfitPerShare),
		totalDistributions: solidity.NewUint256(sctx, slotTotalDistributions),
		totalStakingTax:    solidity.NewUint256(sctx, slotTotalStakingTax),
		totalUnstakingTax:  solidity.NewUint256(sctx, slotTotalUnstakingTax),
		undistributed:      solidity.NewUint256(sctx, slotUndistributed),
		totalWithdrawn:     solidity.NewUint256(sctx, slotTotalWithdrawn),
	}
}

func (s *Service) Totals() (*Totals, error) {
	var (
		t   Totals
		err error
	)
	for _, f := range []struct {
		dst  **big.Int
		slot *solidity.Uint256
	}{
		{&t.TotalStaked, s.totalStaked},
		{&t.TotalStakers, s.totalStakers},
		{&t.ProfitPerShare, s.profitPerShare},
		{&t.TotalDistributions, s.totalDistributions},
		{&t.TotalStakingTax, s.totalStakingTax},
		{&t.TotalUnstakingTax, s.totalUnstakingTax},
		{&t.Undistributed, s.undistributed},
		{&t.TotalWithdrawn, s.totalWithdrawn},
	} {
		if *f.dst, err = f.slot.Get(); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func (s *Service) TotalStaked() (*big.Int, error) {
	return s.totalStaked.Get()
}

func (s *Service) TotalStakers() (*big.Int, error) {
	return s.totalStakers.Get()
}

func (s *Service) ProfitPerShare() (*big.Int, error) {
	return s.profitPerShare.Get()
}

// AddStake adds net to the total; joined marks an Unstaked to Staked transition.
func (s *Service) AddStake(net *big.Int, joined bool) error {
	if err := s.totalStaked.Add(net); err != nil {
		return err
	}
	if joined {
		return s.totalStakers.Add(big.NewInt(1))
	}
	return nil
}

// RemoveStake subtracts amount from the total; left marks a Staked to Unstaked transition.
func (s *Service) RemoveStake(amount *big.Int, left bool) error {
	if err := s.totalStaked.Sub(amount); err != nil {
		return err
	}
	if left {
		return s.totalStakers.Sub(big.NewInt(1))
	}
	return nil
}

// IncreaseProfitPerShare bumps the accumulator and returns its new value.
func (s *Service) IncreaseProfitPerShare(delta *big.Int) (*big.Int, error) {
	acc, err := s.profitPerShare.Get()
	if err != nil {
		return nil, err
	}
	acc.Add(acc, delta)
	if err := s.profitPerShare.Set(acc); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) AddDistribution(amount *big.Int) error {
	return s.totalDistributions.Add(amount)
}

func (s *Service) AddStakingTax(amount *big.Int) error {
	return s.totalStakingTax.Add(amount)
}

func (s *Service) AddUnstakingTax(amount *big.Int) error {
	return s.totalUnstakingTax.Add(amount)
}

func (s *Service) AddUndistributed(amount *big.Int) error {
	return s.undistributed.Add(amount)
}

func (s *Service) AddWithdrawn(amount *big.Int) error {
	return s.totalWithdrawn.Add(amount)
}
