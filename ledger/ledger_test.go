// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/builtin/rewardpool"
	"github.com/lidprotocol/lid/builtin/staking"
	"github.com/lidprotocol/lid/builtin/tax"
	"github.com/lidprotocol/lid/genesis"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/logdb"
	"github.com/lidprotocol/lid/lvldb"
)

var (
	owner = lid.BytesToAddress([]byte("owner"))
	alice = lid.BytesToAddress([]byte("alice"))
	bob   = lid.BytesToAddress([]byte("bob"))
)

func testConfig() *genesis.Config {
	cfg := genesis.DefaultConfig(owner)
	cfg.LaunchTime = 50
	cfg.StartTime = 100
	cfg.RewardPool.CycleStart = 200
	cfg.RewardPool.ReleaseInterval = 10
	cfg.RewardPool.Size = genesis.NewAmount(lid.Tokens(1000))
	cfg.Allocations = []genesis.Allocation{
		{Address: alice, Amount: genesis.NewAmount(lid.Tokens(100))},
		{Address: bob, Amount: genesis.NewAmount(lid.Tokens(100))},
	}
	return cfg
}

func newLedger(t *testing.T) (*Ledger, *logdb.LogDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ldb, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { ldb.Close() })

	l, err := Open(db, testConfig(), Options{CacheSize: 128, LogDB: ldb})
	require.NoError(t, err)
	return l, ldb
}

func TestOpen(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	_, err = Open(db, nil, Options{})
	assert.Equal(t, ErrNotInitialized, err)

	l, err := Open(db, testConfig(), Options{})
	require.NoError(t, err)
	assert.Equal(t, Clock{Number: 0, Time: 50}, l.Clock())

	require.NoError(t, l.AdvanceTo(1, 101))
	require.NoError(t, l.Stake(context.Background(), alice, lid.Tokens(10)))

	// reopening keeps the clock and the state, and ignores the config
	l, err = Open(db, nil, Options{CacheSize: 16})
	require.NoError(t, err)
	assert.Equal(t, Clock{Number: 1, Time: 101}, l.Clock())
	acc, err := l.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, "9900000000000000000", acc.Stake.String())
	assert.Equal(t, lid.Tokens(90).String(), acc.Balance.String())
}

func TestAdvanceTo(t *testing.T) {
	l, _ := newLedger(t)

	require.NoError(t, l.AdvanceTo(1, 50))
	assert.ErrorIs(t, l.AdvanceTo(1, 60), ErrClockBackwards)
	assert.ErrorIs(t, l.AdvanceTo(2, 49), ErrClockBackwards)
	require.NoError(t, l.Tick(5))
	assert.Equal(t, Clock{Number: 2, Time: 55}, l.Clock())
}

func TestFailedOperationCommitsNothing(t *testing.T) {
	l, ldb := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.AdvanceTo(1, 101))
	require.NoError(t, l.Stake(ctx, alice, lid.Tokens(10)))
	before, err := ldb.FilterEvents(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, staking.ErrUnstakeExceedsStake, l.Unstake(ctx, alice, lid.Tokens(20)))
	assert.Equal(t, staking.ErrStakeExceedsBalance, l.Stake(ctx, alice, lid.Tokens(1000)))

	acc, err := l.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, "9900000000000000000", acc.Stake.String())
	assert.Equal(t, lid.Tokens(90).String(), acc.Balance.String())

	after, err := ldb.FilterEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, after, len(before))

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Equal(t, context.Canceled, l.Stake(canceled, alice, lid.Tokens(1)))
}

func TestStakingRoundTrip(t *testing.T) {
	l, ldb := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.AdvanceTo(1, 101))
	require.NoError(t, l.Stake(ctx, alice, lid.Tokens(10)))
	require.NoError(t, l.Tick(1))
	require.NoError(t, l.CollectTax(ctx, bob, lid.Tokens(1)))

	acc, err := l.Account(alice)
	require.NoError(t, err)
	// alice is the only staker and receives the whole tax, less rounding
	diff := new(big.Int).Sub(lid.Tokens(1), acc.Dividends)
	assert.True(t, diff.Sign() >= 0 && diff.Cmp(big.NewInt(10)) <= 0, "dividends %v", acc.Dividends)

	require.NoError(t, l.Withdraw(ctx, alice, acc.Dividends))
	stakers, err := l.Stakers()
	require.NoError(t, err)
	assert.Equal(t, []lid.Address{alice}, stakers)

	s, err := l.Staking()
	require.NoError(t, err)
	assert.True(t, s.Active)
	assert.Equal(t, uint64(staking.SchemaV2), s.Version)
	assert.Equal(t, []lid.Address{builtin.RewardPool.Address}, s.Handlers)
	assert.Equal(t, acc.Dividends.String(), s.Totals.TotalWithdrawn.String())

	require.NoError(t, l.Tick(1))
	require.NoError(t, l.Unstake(ctx, alice, lid.Tokens(5)))
	v, err := l.StakeAt(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, "9900000000000000000", v.String())
	v, err = l.StakeAt(alice, 3)
	require.NoError(t, err)
	assert.Equal(t, "4900000000000000000", v.String())
	v, err = l.TotalStakedAt(0)
	require.NoError(t, err)
	assert.Zero(t, v.Sign())

	events, err := ldb.FilterEvents(ctx, &logdb.Filter{Contract: &builtin.Staking.Address})
	require.NoError(t, err)
	var names []string
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"Stake", "TaxDistribution", "Withdraw", "Unstake"}, names)
}

func TestRewards(t *testing.T) {
	l, ldb := newLedger(t)
	ctx := context.Background()

	require.NoError(t, l.AdvanceTo(1, 101))
	require.NoError(t, l.RegisterRewards(ctx, alice))
	assert.Equal(t, rewardpool.ErrAlreadyRegistered, l.RegisterRewards(ctx, alice))
	require.NoError(t, l.Stake(ctx, alice, lid.Tokens(10)))

	_, err := l.Claim(ctx, alice, 1)
	assert.Equal(t, rewardpool.ErrNotStarted, err)

	require.NoError(t, l.AdvanceTo(2, 211))
	r, err := l.Reward(alice, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), r.Current)
	assert.Equal(t, "9900000000000000000", r.Ownership.String())
	assert.Equal(t, r.Ownership.String(), r.PoolTotal.String())
	assert.Equal(t, lid.Tokens(100).String(), r.TotalReward.String())
	assert.Equal(t, lid.Tokens(100).String(), r.Payout.String())
	assert.Zero(t, r.Claimed.Sign())

	paid, err := l.Claim(ctx, alice, 1)
	require.NoError(t, err)
	assert.Equal(t, lid.Tokens(100).String(), paid.String())

	acc, err := l.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, lid.Tokens(190).String(), acc.Balance.String())
	assert.True(t, acc.RewardsRegistered)
	assert.False(t, acc.Registered)

	claims, err := ldb.FilterEvents(ctx, &logdb.Filter{Name: "Claim", Account: &alice})
	require.NoError(t, err)
	require.Len(t, claims, 1)
	assert.Equal(t, uint32(2), claims[0].BlockNumber)
	assert.Equal(t, uint64(211), claims[0].BlockTime)
}

func TestAdmin(t *testing.T) {
	l, _ := newLedger(t)
	ctx := context.Background()

	assert.Equal(t, tax.ErrRateTooHigh, l.SetStakingTaxBP(ctx, owner, big.NewInt(10000)))
	assert.Error(t, l.SetUnstakingTaxBP(ctx, alice, big.NewInt(10)))
	require.NoError(t, l.SetStartTime(ctx, owner, 500))

	require.NoError(t, l.AdvanceTo(1, 101))
	s, err := l.Staking()
	require.NoError(t, err)
	assert.False(t, s.Active)

	require.NoError(t, l.Mint(ctx, owner, bob, lid.Tokens(5)))
	require.NoError(t, l.TransferOwnership(ctx, owner, alice))
	assert.Error(t, l.Mint(ctx, owner, bob, lid.Tokens(5)))
	require.NoError(t, l.Mint(ctx, alice, bob, lid.Tokens(5)))

	acc, err := l.Account(bob)
	require.NoError(t, err)
	assert.Equal(t, lid.Tokens(110).String(), acc.Balance.String())
}
