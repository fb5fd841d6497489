// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/builtin/rewardpool"
	"github.com/lidprotocol/lid/kv"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/state"
	"github.com/lidprotocol/lid/xenv"
)

// Builder helper to build the launch state.
type Builder struct {
	timestamp uint64
	procs     []func(env *xenv.Environment) error
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// State add a state process.
func (b *Builder) State(proc func(env *xenv.Environment) error) *Builder {
	b.procs = append(b.procs, proc)
	return b
}

// Build runs the state processes at block 0 and writes the result into bulk.
func (b *Builder) Build(db kv.Getter, bulk kv.Putter) ([]*xenv.Event, error) {
	st := state.New(db, nil)
	env := xenv.New(st, &xenv.BlockContext{Number: 0, Time: b.timestamp})
	for _, proc := range b.procs {
		if err := proc(env); err != nil {
			return nil, errors.Wrap(err, "state process")
		}
	}
	if err := st.Stage().Commit(bulk); err != nil {
		return nil, errors.Wrap(err, "commit state")
	}
	return env.Events(), nil
}

// NewBuilder prepares the launch state described by cfg.
func NewBuilder(cfg *Config) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return new(Builder).
		Timestamp(cfg.LaunchTime).
		State(func(env *xenv.Environment) error {
			p := builtin.Params.WithState(env.State())
			p.SetOwner(cfg.Owner)
			for _, param := range []struct {
				key   lid.Bytes32
				value *big.Int
			}{
				{lid.KeyStakingTaxBP, new(big.Int).SetUint64(cfg.StakingTaxBP)},
				{lid.KeyUnstakingTaxBP, new(big.Int).SetUint64(cfg.UnstakingTaxBP)},
				{lid.KeyStakingStartTime, new(big.Int).SetUint64(cfg.StartTime)},
				{lid.KeyRegistrationFeeWithReferrer, cfg.RegistrationFees.WithReferrer.Value()},
				{lid.KeyRegistrationFeeWithoutReferrer, cfg.RegistrationFees.WithoutReferrer.Value()},
			} {
				if err := p.Set(param.key, param.value); err != nil {
					return err
				}
			}
			return nil
		}).
		State(func(env *xenv.Environment) error {
			token := builtin.Token.Native(env)
			for _, a := range cfg.Allocations {
				if err := token.Allocate(a.Address, a.Amount.Value()); err != nil {
					return err
				}
			}
			// the reward pool pays claims out of its own balance
			return token.Allocate(builtin.RewardPool.Address, cfg.RewardPool.Size.Value())
		}).
		State(func(env *xenv.Environment) error {
			if err := builtin.Staking.Native(env).Initialize(cfg.SchemaVersion); err != nil {
				return err
			}
			return builtin.RewardPool.Native(env).Initialize(&rewardpool.Config{
				ReleaseBP:       cfg.RewardPool.ReleaseBP,
				ReleaseInterval: cfg.RewardPool.ReleaseInterval,
				CycleStart:      cfg.RewardPool.CycleStart,
				Size:            cfg.RewardPool.Size.Value(),
				Staking:         builtin.Staking.Address,
			})
		}).
		State(func(env *xenv.Environment) error {
			// the reward pool follows stake changes from launch
			staking := builtin.Staking.Native(env)
			return staking.RegisterStakeHandler(cfg.Owner, builtin.RewardPool.Address)
		}), nil
}
