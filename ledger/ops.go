// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"math/big"

	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/xenv"
)

// Mint creates tokens. Owner only.
func (l *Ledger) Mint(ctx context.Context, caller, to lid.Address, amount *big.Int) error {
	return l.execute(ctx, "mint", func(env *xenv.Environment) error {
		return builtin.Token.Native(env).Mint(caller, to, amount)
	})
}

func (l *Ledger) Transfer(ctx context.Context, from, to lid.Address, amount *big.Int) error {
	return l.execute(ctx, "transfer", func(env *xenv.Environment) error {
		return builtin.Token.Native(env).Transfer(from, to, amount)
	})
}

func (l *Ledger) Stake(ctx context.Context, staker lid.Address, amount *big.Int) error {
	return l.execute(ctx, "stake", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).Stake(staker, amount)
	})
}

func (l *Ledger) Unstake(ctx context.Context, staker lid.Address, amount *big.Int) error {
	return l.execute(ctx, "unstake", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).Unstake(staker, amount)
	})
}

func (l *Ledger) Distribute(ctx context.Context, caller lid.Address, amount *big.Int) error {
	return l.execute(ctx, "distribute", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).Distribute(caller, amount)
	})
}

// CollectTax moves transfer tax from payer into the staking contract and
// books it as a distribution, as the token contract does on taxed transfers.
func (l *Ledger) CollectTax(ctx context.Context, payer lid.Address, amount *big.Int) error {
	return l.execute(ctx, "collect-tax", func(env *xenv.Environment) error {
		token := builtin.Token.Native(env)
		if err := token.Transfer(payer, builtin.Staking.Address, amount); err != nil {
			return err
		}
		return builtin.Staking.Native(env).HandleTaxDistribution(token.Address(), amount)
	})
}

func (l *Ledger) Withdraw(ctx context.Context, staker lid.Address, amount *big.Int) error {
	return l.execute(ctx, "withdraw", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).Withdraw(staker, amount)
	})
}

func (l *Ledger) Reinvest(ctx context.Context, staker lid.Address, amount *big.Int) error {
	return l.execute(ctx, "reinvest", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).Reinvest(staker, amount)
	})
}

// RegisterAndStake pays the registration fee and stakes the rest. A zero
// referrer means no referrer.
func (l *Ledger) RegisterAndStake(ctx context.Context, staker lid.Address, amount *big.Int, referrer lid.Address) error {
	return l.execute(ctx, "register-and-stake", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).RegisterAndStake(staker, amount, referrer)
	})
}

// RegisterRewards enrolls the staker in the reward pool.
func (l *Ledger) RegisterRewards(ctx context.Context, staker lid.Address) error {
	return l.execute(ctx, "register-rewards", func(env *xenv.Environment) error {
		return builtin.RewardPool.Native(env).Register(staker)
	})
}

// Claim pays the staker's reward of a closed cycle and returns the amount paid.
func (l *Ledger) Claim(ctx context.Context, staker lid.Address, cycle uint64) (*big.Int, error) {
	var paid *big.Int
	err := l.execute(ctx, "claim", func(env *xenv.Environment) (err error) {
		paid, err = builtin.RewardPool.Native(env).Claim(staker, cycle)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

func (l *Ledger) MigrateV2(ctx context.Context, caller lid.Address) error {
	return l.execute(ctx, "migrate-v2", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).MigrateV2(caller)
	})
}

func (l *Ledger) SetStakingTaxBP(ctx context.Context, caller lid.Address, bp *big.Int) error {
	return l.execute(ctx, "set-staking-tax", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).SetStakingTaxBP(caller, bp)
	})
}

func (l *Ledger) SetUnstakingTaxBP(ctx context.Context, caller lid.Address, bp *big.Int) error {
	return l.execute(ctx, "set-unstaking-tax", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).SetUnstakingTaxBP(caller, bp)
	})
}

func (l *Ledger) SetStartTime(ctx context.Context, caller lid.Address, startTime uint64) error {
	return l.execute(ctx, "set-start-time", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).SetStartTime(caller, startTime)
	})
}

func (l *Ledger) SetRegistrationFees(ctx context.Context, caller lid.Address, withReferrer, withoutReferrer *big.Int) error {
	return l.execute(ctx, "set-registration-fees", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).SetRegistrationFees(caller, withReferrer, withoutReferrer)
	})
}

func (l *Ledger) RegisterStakeHandler(ctx context.Context, caller, handler lid.Address) error {
	return l.execute(ctx, "register-handler", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).RegisterStakeHandler(caller, handler)
	})
}

func (l *Ledger) UnregisterStakeHandler(ctx context.Context, caller lid.Address, index uint64) error {
	return l.execute(ctx, "unregister-handler", func(env *xenv.Environment) error {
		return builtin.Staking.Native(env).UnregisterStakeHandler(caller, index)
	})
}

func (l *Ledger) TransferOwnership(ctx context.Context, caller, newOwner lid.Address) error {
	return l.execute(ctx, "transfer-ownership", func(env *xenv.Environment) error {
		return builtin.Params.WithState(env.State()).TransferOwnership(caller, newOwner)
	})
}
