// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/builtin/params"
	"github.com/lidprotocol/lid/builtin/token"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/lvldb"
	"github.com/lidprotocol/lid/state"
	"github.com/lidprotocol/lid/xenv"
)

var (
	owner        = lid.BytesToAddress([]byte("owner"))
	paramsAddr   = lid.BytesToAddress([]byte("Params"))
	tokenAddr    = lid.BytesToAddress([]byte("Token"))
	stakingAddr  = lid.BytesToAddress([]byte("Staking"))
	recorderAddr = lid.BytesToAddress([]byte("Recorder"))
	failingAddr  = lid.BytesToAddress([]byte("Failing"))

	startTime = uint64(1000)
)

func M(a ...any) []any {
	return a
}

// tokens parses a decimal token amount.
func tokens(s string) *big.Int {
	v, ok := lid.ParseAmount(s)
	if !ok {
		panic("bad amount " + s)
	}
	return v
}

// assertAmount compares amounts by value.
func assertAmount(t *testing.T, want, got *big.Int, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want.String(), got.String(), msgAndArgs...)
}

// assertNear allows floor division dust of up to tolerance base units.
func assertNear(t *testing.T, want, got *big.Int, tolerance int64) {
	t.Helper()
	diff := new(big.Int).Sub(want, got)
	assert.True(t, diff.CmpAbs(big.NewInt(tolerance)) <= 0, "want %v, got %v", want, got)
}

type handlerCall struct {
	staked   bool
	staker   lid.Address
	old, new string
}

type recorder struct {
	calls []handlerCall
}

func (r *recorder) HandleStake(_, staker lid.Address, oldValue, newValue *big.Int) error {
	r.calls = append(r.calls, handlerCall{true, staker, oldValue.String(), newValue.String()})
	return nil
}

func (r *recorder) HandleUnstake(_, staker lid.Address, oldValue, newValue *big.Int) error {
	r.calls = append(r.calls, handlerCall{false, staker, oldValue.String(), newValue.String()})
	return nil
}

type failing struct{}

func (failing) HandleStake(_, _ lid.Address, _, _ *big.Int) error   { return errors.New("handler failed") }
func (failing) HandleUnstake(_, _ lid.Address, _, _ *big.Int) error { return errors.New("handler failed") }

type testSetup struct {
	env      *xenv.Environment
	params   *params.Params
	token    *token.Token
	staking  *Staking
	recorder *recorder
}

// newSetup builds a V2 ledger that opened at startTime, with the clock just past it.
func newSetup(t *testing.T, version uint64) *testSetup {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	env := xenv.New(state.New(db, nil), &xenv.BlockContext{Number: 1, Time: startTime + 1})

	p := params.New(paramsAddr, env.State())
	p.SetOwner(owner)
	require.NoError(t, p.Set(lid.KeyStakingTaxBP, lid.InitialStakingTaxBP))
	require.NoError(t, p.Set(lid.KeyUnstakingTaxBP, lid.InitialUnstakingTaxBP))
	require.NoError(t, p.Set(lid.KeyStakingStartTime, new(big.Int).SetUint64(startTime)))
	require.NoError(t, p.Set(lid.KeyRegistrationFeeWithReferrer, lid.InitialRegistrationFeeWithReferrer))
	require.NoError(t, p.Set(lid.KeyRegistrationFeeWithoutReferrer, lid.InitialRegistrationFeeWithoutReferrer))

	rec := &recorder{}
	resolve := func(addr lid.Address) (StakeHandler, error) {
		switch addr {
		case recorderAddr:
			return rec, nil
		case failingAddr:
			return failing{}, nil
		}
		return nil, errors.New("unknown handler")
	}

	tok := token.New(tokenAddr, env, p)
	s := New(stakingAddr, env, p, tok, resolve)
	require.NoError(t, s.Initialize(version))

	return &testSetup{env: env, params: p, token: tok, staking: s, recorder: rec}
}

func (ts *testSetup) fund(t *testing.T, addr lid.Address, amount *big.Int) {
	require.NoError(t, ts.token.Mint(owner, addr, amount))
}

func (ts *testSetup) balance(t *testing.T, addr lid.Address) *big.Int {
	bal, err := ts.token.BalanceOf(addr)
	require.NoError(t, err)
	return bal
}

func (ts *testSetup) stake(t *testing.T, addr lid.Address) *big.Int {
	v, err := ts.staking.StakeValue(addr)
	require.NoError(t, err)
	return v
}

func (ts *testSetup) dividends(t *testing.T, addr lid.Address) *big.Int {
	v, err := ts.staking.DividendsOf(addr)
	require.NoError(t, err)
	return v
}

// nextBlock advances the clock by one block.
func (ts *testSetup) nextBlock() {
	ctx := ts.env.BlockContext()
	ctx.Number++
	ctx.Time += 10
}
