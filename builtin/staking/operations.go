// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin/staking/stakes"
	"github.com/lidprotocol/lid/builtin/tax"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/xenv"
)

// Stake locks amount of the staker's tokens. The staking tax is taken from
// amount and paid to the existing stakers.
func (s *Staking) Stake(staker lid.Address, amount *big.Int) error {
	return s.env.Atomic(func() error {
		if err := s.requireActive(); err != nil {
			return err
		}
		if amount.Cmp(lid.OneToken) < 0 {
			return ErrStakeTooSmall
		}
		bal, err := s.token.BalanceOf(staker)
		if err != nil {
			return err
		}
		if bal.Cmp(amount) < 0 {
			return ErrStakeExceedsBalance
		}
		if err := s.token.Transfer(staker, s.addr, amount); err != nil {
			return err
		}
		return s.addStake(staker, amount)
	})
}

// Unstake releases amount of stake. The unstaking tax stays in the contract
// and is paid to the other stakers.
func (s *Staking) Unstake(staker lid.Address, amount *big.Int) error {
	return s.env.Atomic(func() error {
		if err := s.requireActive(); err != nil {
			return err
		}
		if amount.Cmp(lid.OneToken) < 0 {
			return ErrUnstakeTooSmall
		}
		st, err := s.stakes.Get(staker)
		if err != nil {
			return err
		}
		if amount.Cmp(st.Value) > 0 {
			return ErrUnstakeExceedsStake
		}
		bp, err := s.params.Get(lid.KeyUnstakingTaxBP)
		if err != nil {
			return err
		}
		unstakingTax, net, err := tax.Split(amount, bp)
		if err != nil {
			return err
		}

		acc, err := s.stats.ProfitPerShare()
		if err != nil {
			return err
		}
		if err := st.Settle(acc); err != nil {
			return err
		}
		old := new(big.Int).Set(st.Value)
		st.Value.Sub(st.Value, amount)
		if err := s.stats.RemoveStake(amount, st.Value.Sign() == 0); err != nil {
			return err
		}

		total, err := s.stats.TotalStaked()
		if err != nil {
			return err
		}
		others := total.Sub(total, st.Value)
		if acc, err = s.spread(unstakingTax, others, others); err != nil {
			return err
		}
		// remaining shares of the unstaker do not earn their own exit tax
		st.PayoutsTo = acc
		if err := s.stakes.Set(staker, st); err != nil {
			return err
		}
		if err := s.stats.AddUnstakingTax(unstakingTax); err != nil {
			return err
		}
		if err := s.token.Transfer(s.addr, staker, net); err != nil {
			return err
		}
		if err := s.checkpoint(staker, st.Value); err != nil {
			return err
		}

		s.log("Unstake", staker, lid.Address{}, amount)
		logger.Debug("unstaked", "staker", staker, "amount", amount, "tax", unstakingTax)
		return s.notify(staker, old, st.Value, false)
	})
}

// Distribute pays amount of the caller's tokens to all current stakers.
func (s *Staking) Distribute(caller lid.Address, amount *big.Int) error {
	return s.env.Atomic(func() error {
		bal, err := s.token.BalanceOf(caller)
		if err != nil {
			return err
		}
		if bal.Cmp(amount) < 0 {
			return ErrDistributeExceeds
		}
		total, err := s.stats.TotalStaked()
		if err != nil {
			return err
		}
		if total.Sign() == 0 {
			return ErrNothingStaked
		}
		if err := s.token.Transfer(caller, s.addr, amount); err != nil {
			return err
		}
		if _, err := s.spread(amount, total, total); err != nil {
			return err
		}
		if err := s.stats.AddDistribution(amount); err != nil {
			return err
		}
		s.log("Distribute", caller, lid.Address{}, amount)
		logger.Debug("distributed", "from", caller, "amount", amount)
		return nil
	})
}

// HandleTaxDistribution books amount of transfer tax that the token contract
// already moved into this contract. With nobody staked the amount is kept
// as undistributed.
func (s *Staking) HandleTaxDistribution(caller lid.Address, amount *big.Int) error {
	return s.env.Atomic(func() error {
		if caller != s.token.Address() {
			return ErrNotToken
		}
		if amount.Sign() < 0 {
			return ErrNegativeAmount
		}
		total, err := s.stats.TotalStaked()
		if err != nil {
			return err
		}
		if _, err := s.spread(amount, total, total); err != nil {
			return err
		}
		if err := s.stats.AddDistribution(amount); err != nil {
			return err
		}
		s.log("TaxDistribution", caller, lid.Address{}, amount)
		return nil
	})
}

// Withdraw pays amount of dividends out to the staker.
func (s *Staking) Withdraw(staker lid.Address, amount *big.Int) error {
	return s.env.Atomic(func() error {
		if err := s.requireActive(); err != nil {
			return err
		}
		if err := s.takeDividends(staker, amount, ErrWithdrawExceeds); err != nil {
			return err
		}
		if err := s.stats.AddWithdrawn(amount); err != nil {
			return err
		}
		if err := s.token.Transfer(s.addr, staker, amount); err != nil {
			return err
		}
		s.log("Withdraw", staker, lid.Address{}, amount)
		logger.Debug("withdrew", "staker", staker, "amount", amount)
		return nil
	})
}

// Reinvest turns amount of dividends into stake, paying the staking tax on it.
func (s *Staking) Reinvest(staker lid.Address, amount *big.Int) error {
	return s.env.Atomic(func() error {
		if err := s.requireActive(); err != nil {
			return err
		}
		if err := s.takeDividends(staker, amount, ErrReinvestExceeds); err != nil {
			return err
		}
		s.log("Reinvest", staker, lid.Address{}, amount)
		return s.addStake(staker, amount)
	})
}

// RegisterAndStake registers the staker, pays the registration fee and stakes
// the rest of amount. Without a referrer the fee goes to the stakers, with
// one it goes to the referrer.
func (s *Staking) RegisterAndStake(staker lid.Address, amount *big.Int, referrer lid.Address) error {
	return s.env.Atomic(func() error {
		if err := s.requireActive(); err != nil {
			return err
		}
		registered, err := s.registered.Get(staker)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}
		if referrer == staker {
			return ErrSelfReferral
		}
		feeKey := lid.KeyRegistrationFeeWithoutReferrer
		if !referrer.IsZero() {
			ok, err := s.registered.Get(referrer)
			if err != nil {
				return err
			}
			if !ok {
				return ErrReferrerUnregistered
			}
			feeKey = lid.KeyRegistrationFeeWithReferrer
		}
		bal, err := s.token.BalanceOf(staker)
		if err != nil {
			return err
		}
		if bal.Cmp(amount) < 0 {
			return ErrRegisterBalance
		}
		fee, err := s.params.Get(feeKey)
		if err != nil {
			return err
		}
		if amount.Cmp(fee) < 0 {
			return ErrRegistrationFee
		}

		if err := s.registered.Set(staker, true); err != nil {
			return err
		}
		if referrer.IsZero() {
			if err := s.token.Transfer(staker, s.addr, fee); err != nil {
				return err
			}
			total, err := s.stats.TotalStaked()
			if err != nil {
				return err
			}
			if _, err := s.spread(fee, total, total); err != nil {
				return err
			}
			if err := s.stats.AddDistribution(fee); err != nil {
				return err
			}
		} else {
			if err := s.token.Transfer(staker, referrer, fee); err != nil {
				return err
			}
			n, err := s.referrals.Get(referrer)
			if err != nil {
				return err
			}
			if err := s.referrals.Set(referrer, n.Add(n, big.NewInt(1))); err != nil {
				return err
			}
		}
		s.log("Register", staker, referrer, fee)
		logger.Debug("registered", "staker", staker, "referrer", referrer, "fee", fee)

		rest := new(big.Int).Sub(amount, fee)
		if rest.Cmp(lid.OneToken) < 0 {
			return ErrStakeTooSmall
		}
		if err := s.token.Transfer(staker, s.addr, rest); err != nil {
			return err
		}
		return s.addStake(staker, rest)
	})
}

// addStake credits amount, already held by the contract, to the staker
// less the staking tax.
func (s *Staking) addStake(staker lid.Address, amount *big.Int) error {
	bp, err := s.params.Get(lid.KeyStakingTaxBP)
	if err != nil {
		return err
	}
	stakingTax, net, err := tax.Split(amount, bp)
	if err != nil {
		return err
	}
	total, err := s.stats.TotalStaked()
	if err != nil {
		return err
	}
	// new shares count towards the denominator but are not credited
	acc, err := s.spread(stakingTax, new(big.Int).Add(total, net), total)
	if err != nil {
		return err
	}

	st, err := s.stakes.Get(staker)
	if err != nil {
		return err
	}
	if err := st.Settle(acc); err != nil {
		return err
	}
	old := new(big.Int).Set(st.Value)
	st.Value.Add(st.Value, net)
	if err := s.stakes.Set(staker, st); err != nil {
		return err
	}
	if err := s.stats.AddStake(net, old.Sign() == 0 && net.Sign() > 0); err != nil {
		return err
	}
	if err := s.stats.AddStakingTax(stakingTax); err != nil {
		return err
	}
	if err := s.checkpoint(staker, st.Value); err != nil {
		return err
	}

	s.log("Stake", staker, lid.Address{}, net)
	logger.Debug("staked", "staker", staker, "amount", amount, "tax", stakingTax)
	return s.notify(staker, old, st.Value, true)
}

// takeDividends settles the staker and removes amount from the settled dividends.
func (s *Staking) takeDividends(staker lid.Address, amount *big.Int, insufficient error) error {
	st, err := s.stakes.Get(staker)
	if err != nil {
		return err
	}
	acc, err := s.stats.ProfitPerShare()
	if err != nil {
		return err
	}
	if err := st.Settle(acc); err != nil {
		return err
	}
	if amount.Sign() < 0 || amount.Cmp(st.Stored) > 0 {
		return insufficient
	}
	st.Stored.Sub(st.Stored, amount)
	return s.stakes.Set(staker, st)
}

// spread credits amount to holders shares by raising the accumulator by
// amount / denom per share. Whatever the holders do not receive, including
// rounding dust, is booked as undistributed. It returns the new accumulator.
func (s *Staking) spread(amount, denom, holders *big.Int) (*big.Int, error) {
	acc, err := s.stats.ProfitPerShare()
	if err != nil {
		return nil, err
	}
	if amount.Sign() == 0 {
		return acc, nil
	}
	if holders.Sign() == 0 {
		return acc, s.stats.AddUndistributed(amount)
	}
	delta, err := stakes.PerShare(amount, denom)
	if err != nil {
		return nil, err
	}
	credited, err := stakes.MulDiv(delta, holders)
	if err != nil {
		return nil, err
	}
	if err := s.stats.AddUndistributed(new(big.Int).Sub(amount, credited)); err != nil {
		return nil, err
	}
	return s.stats.IncreaseProfitPerShare(delta)
}

func (s *Staking) log(name string, account, counterparty lid.Address, amount *big.Int) {
	s.env.Log(&xenv.Event{
		Address:      s.addr,
		Name:         name,
		Account:      account,
		Counterparty: counterparty,
		Amount:       new(big.Int).Set(amount),
	})
}
