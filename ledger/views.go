// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/builtin/staking/globalstats"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/xenv"
)

// Account is the state of one address across the builtin contracts.
type Account struct {
	Balance           *big.Int
	Stake             *big.Int
	Dividends         *big.Int
	Registered        bool
	Referrals         *big.Int
	RewardsRegistered bool
}

// Staking summarizes the staking contract.
type Staking struct {
	Totals   *globalstats.Totals
	Version  uint64
	Active   bool
	Handlers []lid.Address
}

// Reward is a staker's position in one reward cycle.
type Reward struct {
	Cycle       uint64
	Current     uint64
	Ownership   *big.Int
	PoolTotal   *big.Int
	TotalReward *big.Int
	Payout      *big.Int
	Claimed     *big.Int
}

func (l *Ledger) Account(addr lid.Address) (acc *Account, err error) {
	err = l.view(func(env *xenv.Environment) error {
		token := builtin.Token.Native(env)
		staking := builtin.Staking.Native(env)
		pool := builtin.RewardPool.Native(env)

		acc = &Account{}
		if acc.Balance, err = token.BalanceOf(addr); err != nil {
			return err
		}
		if acc.Stake, err = staking.StakeValue(addr); err != nil {
			return err
		}
		if acc.Dividends, err = staking.DividendsOf(addr); err != nil {
			return err
		}
		if acc.Registered, err = staking.IsRegistered(addr); err != nil {
			return err
		}
		if acc.Referrals, err = staking.Referrals(addr); err != nil {
			return err
		}
		acc.RewardsRegistered, err = pool.IsRegistered(addr)
		return err
	})
	return
}

// StakeAt returns the stake of addr as of block number.
func (l *Ledger) StakeAt(addr lid.Address, number uint32) (value *big.Int, err error) {
	err = l.view(func(env *xenv.Environment) error {
		value, err = builtin.Staking.Native(env).StakeValueAt(addr, number)
		return err
	})
	return
}

// TotalStakedAt returns the total stake as of block number.
func (l *Ledger) TotalStakedAt(number uint32) (value *big.Int, err error) {
	err = l.view(func(env *xenv.Environment) error {
		value, err = builtin.Staking.Native(env).TotalStakedAt(number)
		return err
	})
	return
}

func (l *Ledger) Staking() (s *Staking, err error) {
	err = l.view(func(env *xenv.Environment) error {
		staking := builtin.Staking.Native(env)
		s = &Staking{}
		if s.Totals, err = staking.Totals(); err != nil {
			return err
		}
		if s.Version, err = staking.Version(); err != nil {
			return err
		}
		if s.Active, err = staking.IsActive(); err != nil {
			return err
		}
		s.Handlers, err = staking.StakeHandlers()
		return err
	})
	return
}

func (l *Ledger) Stakers() (stakers []lid.Address, err error) {
	err = l.view(func(env *xenv.Environment) error {
		stakers, err = builtin.Staking.Native(env).Stakers()
		return err
	})
	return
}

// Reward reports the staker's share of a reward cycle.
func (l *Ledger) Reward(staker lid.Address, cycle uint64) (r *Reward, err error) {
	err = l.view(func(env *xenv.Environment) error {
		pool := builtin.RewardPool.Native(env)
		r = &Reward{Cycle: cycle}
		if r.Current, err = pool.GetCurrentCycleCount(); err != nil {
			return err
		}
		if r.Ownership, err = pool.CycleOwnership(staker, cycle); err != nil {
			return err
		}
		if r.PoolTotal, err = pool.CyclePoolTotal(cycle); err != nil {
			return err
		}
		if r.TotalReward, err = pool.CycleTotalReward(cycle); err != nil {
			return err
		}
		if r.Payout, err = pool.CalculatePayout(staker, cycle); err != nil {
			return err
		}
		r.Claimed, err = pool.Claimed(staker, cycle)
		return err
	})
	return
}
