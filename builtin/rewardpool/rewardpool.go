// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rewardpool releases a fixed slice of its pool every cycle to the
// registered stakers, in proportion to the stake each held when the cycle began.
package rewardpool

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/lidprotocol/lid/builtin/history"
	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/builtin/token"
	"github.com/lidprotocol/lid/builtin/vesting"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/log"
	"github.com/lidprotocol/lid/xenv"
)

var (
	logger = log.WithContext("pkg", "rewardpool")

	slotReleaseBP  = lid.BytesToBytes32([]byte("release-bp"))
	slotInterval   = lid.BytesToBytes32([]byte("release-interval"))
	slotCycleStart = lid.BytesToBytes32([]byte("cycle-start"))
	slotSize       = lid.BytesToBytes32([]byte("pool-size"))
	slotStaking    = lid.BytesToBytes32([]byte("staking"))
	slotRegistered = lid.BytesToBytes32([]byte("registered"))
	slotOwnership  = lid.BytesToBytes32([]byte("ownership"))
	slotPoolTotal  = lid.BytesToBytes32([]byte("pool-total"))
	slotClaimed    = lid.BytesToBytes32([]byte("claimed"))

	seriesPoolTotal = history.Name("pool-total")
)

var (
	ErrNotStaking        = reverts.NewAuthorization("Sender must be LidStaking sc.")
	ErrNotStarted        = reverts.NewPrecondition("Has not yet started.")
	ErrFirstCycle        = reverts.NewPrecondition("Cannot claim for tokens staked before first cycle starts.")
	ErrCycleNotClosed    = reverts.NewPrecondition("Can only claim for previous cycles.")
	ErrNotRegistered     = reverts.NewPrecondition("Staker must be registered.")
	ErrAlreadyRegistered = reverts.NewPrecondition("Staker already registered.")
)

// StakeReader reads current stakes.
type StakeReader interface {
	StakeValue(addr lid.Address) (*big.Int, error)
}

// Config holds the release schedule and the staking contract allowed to
// report stake changes.
type Config struct {
	ReleaseBP       uint64
	ReleaseInterval uint64
	CycleStart      uint64
	Size            *big.Int
	Staking         lid.Address
}

// claimKey keys the claimed amount of one staker in one cycle.
type claimKey struct {
	cycle  uint64
	staker lid.Address
}

func (k claimKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(k.staker.Bytes(), k.cycle)
}

// RewardPool binder of `RewardPool` contract.
type RewardPool struct {
	addr   lid.Address
	env    *xenv.Environment
	token  *token.Token
	stakes StakeReader

	releaseBP  *solidity.Uint256
	interval   *solidity.Uint256
	cycleStart *solidity.Uint256
	size       *solidity.Uint256
	staking    *solidity.Address
	registered *solidity.Mapping[lid.Address, bool]
	ownership  *history.History
	poolTotal  *history.History
	claimed    *solidity.Mapping[claimKey, *big.Int]
}

func New(addr lid.Address, env *xenv.Environment, token *token.Token, stakes StakeReader) *RewardPool {
	sctx := solidity.NewContext(addr, env.State())
	return &RewardPool{
		addr:       addr,
		env:        env,
		token:      token,
		stakes:     stakes,
		releaseBP:  solidity.NewUint256(sctx, slotReleaseBP),
		interval:   solidity.NewUint256(sctx, slotInterval),
		cycleStart: solidity.NewUint256(sctx, slotCycleStart),
		size:       solidity.NewUint256(sctx, slotSize),
		staking:    solidity.NewAddress(sctx, slotStaking),
		registered: solidity.NewMapping[lid.Address, bool](sctx, slotRegistered),
		ownership:  history.New(sctx, slotOwnership),
		poolTotal:  history.New(sctx, slotPoolTotal),
		claimed:    solidity.NewMapping[claimKey, *big.Int](sctx, slotClaimed),
	}
}

func (r *RewardPool) Address() lid.Address {
	return r.addr
}

// Initialize stores the schedule. Used at genesis.
func (r *RewardPool) Initialize(cfg *Config) error {
	schedule := &vesting.Schedule{
		Start:     cfg.CycleStart,
		Interval:  cfg.ReleaseInterval,
		Size:      cfg.Size,
		ReleaseBP: cfg.ReleaseBP,
	}
	if err := schedule.Validate(); err != nil {
		return errors.WithMessage(err, "reward pool")
	}
	if err := r.releaseBP.Set(new(big.Int).SetUint64(cfg.ReleaseBP)); err != nil {
		return err
	}
	if err := r.interval.Set(new(big.Int).SetUint64(cfg.ReleaseInterval)); err != nil {
		return err
	}
	if err := r.cycleStart.Set(new(big.Int).SetUint64(cfg.CycleStart)); err != nil {
		return err
	}
	if err := r.size.Set(cfg.Size); err != nil {
		return err
	}
	r.staking.Set(cfg.Staking)
	return nil
}

// Schedule loads the release schedule.
func (r *RewardPool) Schedule() (*vesting.Schedule, error) {
	bp, err := r.releaseBP.Get()
	if err != nil {
		return nil, err
	}
	interval, err := r.interval.Get()
	if err != nil {
		return nil, err
	}
	start, err := r.cycleStart.Get()
	if err != nil {
		return nil, err
	}
	size, err := r.size.Get()
	if err != nil {
		return nil, err
	}
	if interval.Sign() == 0 {
		return nil, errors.New("reward pool is not initialized")
	}
	return &vesting.Schedule{
		Start:     start.Uint64(),
		Interval:  interval.Uint64(),
		Size:      size,
		ReleaseBP: bp.Uint64(),
	}, nil
}

// GetCurrentCycleCount returns the number of cycles begun at the current block time.
func (r *RewardPool) GetCurrentCycleCount() (uint64, error) {
	s, err := r.Schedule()
	if err != nil {
		return 0, err
	}
	return s.CycleCount(r.env.BlockContext().Time), nil
}

func (r *RewardPool) IsRegistered(staker lid.Address) (bool, error) {
	return r.registered.Get(staker)
}

// CycleOwnership returns the stake the staker holds in cycle.
func (r *RewardPool) CycleOwnership(staker lid.Address, cycle uint64) (*big.Int, error) {
	return r.ownership.ValueAt(staker, cycle)
}

// CyclePoolTotal returns the registered stake in cycle.
func (r *RewardPool) CyclePoolTotal(cycle uint64) (*big.Int, error) {
	return r.poolTotal.ValueAt(seriesPoolTotal, cycle)
}

// CycleTotalReward returns the slice released in cycle.
func (r *RewardPool) CycleTotalReward(cycle uint64) (*big.Int, error) {
	s, err := r.Schedule()
	if err != nil {
		return nil, err
	}
	return s.Slice(cycle), nil
}

func (r *RewardPool) Claimed(staker lid.Address, cycle uint64) (*big.Int, error) {
	return r.claimed.Get(claimKey{cycle, staker})
}

// CalculatePayout returns ownership * reward / poolTotal for the cycle.
// Cycle 0 and unregistered stakers earn nothing.
func (r *RewardPool) CalculatePayout(staker lid.Address, cycle uint64) (*big.Int, error) {
	if cycle == 0 {
		return new(big.Int), nil
	}
	registered, err := r.registered.Get(staker)
	if err != nil {
		return nil, err
	}
	if !registered {
		return new(big.Int), nil
	}
	total, err := r.CyclePoolTotal(cycle)
	if err != nil {
		return nil, err
	}
	if total.Sign() == 0 {
		return new(big.Int), nil
	}
	ownership, err := r.CycleOwnership(staker, cycle)
	if err != nil {
		return nil, err
	}
	reward, err := r.CycleTotalReward(cycle)
	if err != nil {
		return nil, err
	}
	payout := new(big.Int).Mul(ownership, reward)
	return payout.Div(payout, total), nil
}

// Register makes the staker eligible from the next cycle on, with the stake
// held now.
func (r *RewardPool) Register(staker lid.Address) error {
	return r.env.Atomic(func() error {
		registered, err := r.registered.Get(staker)
		if err != nil {
			return err
		}
		if registered {
			return ErrAlreadyRegistered
		}
		if err := r.registered.Set(staker, true); err != nil {
			return err
		}
		value, err := r.stakes.StakeValue(staker)
		if err != nil {
			return err
		}
		if value.Sign() > 0 {
			if err := r.updateNext(staker, value); err != nil {
				return err
			}
		}
		r.log("Register", staker, value)
		logger.Debug("registered", "staker", staker, "stake", value)
		return nil
	})
}

func (r *RewardPool) HandleStake(caller, staker lid.Address, _, newValue *big.Int) error {
	return r.handle(caller, staker, newValue)
}

func (r *RewardPool) HandleUnstake(caller, staker lid.Address, _, newValue *big.Int) error {
	return r.handle(caller, staker, newValue)
}

func (r *RewardPool) handle(caller, staker lid.Address, newValue *big.Int) error {
	staking, err := r.staking.Get()
	if err != nil {
		return err
	}
	if caller != staking {
		return ErrNotStaking
	}
	registered, err := r.registered.Get(staker)
	if err != nil {
		return err
	}
	if !registered {
		return nil
	}
	return r.updateNext(staker, newValue)
}

// updateNext sets the staker's ownership of the next cycle to value.
// Begun cycles are never modified.
func (r *RewardPool) updateNext(staker lid.Address, value *big.Int) error {
	current, err := r.GetCurrentCycleCount()
	if err != nil {
		return err
	}
	next := current + 1

	prev, err := r.CycleOwnership(staker, next)
	if err != nil {
		return err
	}
	total, err := r.CyclePoolTotal(next)
	if err != nil {
		return err
	}
	total.Sub(total, prev).Add(total, value)

	if err := r.ownership.Record(staker, value, next); err != nil {
		return err
	}
	return r.poolTotal.Record(seriesPoolTotal, total, next)
}

// Claim pays the staker's unclaimed payout of a past cycle and returns it.
func (r *RewardPool) Claim(staker lid.Address, cycle uint64) (paid *big.Int, err error) {
	err = r.env.Atomic(func() error {
		s, err := r.Schedule()
		if err != nil {
			return err
		}
		now := r.env.BlockContext().Time
		if now <= s.Start {
			return ErrNotStarted
		}
		if cycle == 0 {
			return ErrFirstCycle
		}
		if cycle >= s.CycleCount(now) {
			return ErrCycleNotClosed
		}
		registered, err := r.registered.Get(staker)
		if err != nil {
			return err
		}
		if !registered {
			return ErrNotRegistered
		}

		payout, err := r.CalculatePayout(staker, cycle)
		if err != nil {
			return err
		}
		key := claimKey{cycle, staker}
		claimed, err := r.claimed.Get(key)
		if err != nil {
			return err
		}
		paid = new(big.Int).Sub(payout, claimed)
		if paid.Sign() <= 0 {
			paid = new(big.Int)
			return nil
		}
		if err := r.claimed.Set(key, payout); err != nil {
			return err
		}
		if err := r.token.Transfer(r.addr, staker, paid); err != nil {
			return err
		}
		r.log("Claim", staker, paid)
		logger.Debug("claimed", "staker", staker, "cycle", cycle, "amount", paid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

func (r *RewardPool) log(name string, account lid.Address, amount *big.Int) {
	r.env.Log(&xenv.Event{
		Address: r.addr,
		Name:    name,
		Account: account,
		Amount:  new(big.Int).Set(amount),
	})
}
