// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/builtin/reverts"
	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/lvldb"
	"github.com/lidprotocol/lid/state"
)

func TestPerShareAndMulDiv(t *testing.T) {
	// 100 spread over 3 shares, then read back by one share
	delta, err := PerShare(big.NewInt(100), big.NewInt(3))
	require.NoError(t, err)
	share, err := MulDiv(delta, big.NewInt(1))
	require.NoError(t, err)
	assert.Equal(t, int64(33), share.Int64())

	all, err := MulDiv(delta, big.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, int64(99), all.Int64())

	_, err = PerShare(big.NewInt(1), big.NewInt(0))
	assert.Error(t, err)

	huge := new(big.Int).Lsh(big.NewInt(1), 255)
	_, err = PerShare(huge, big.NewInt(1))
	assert.Equal(t, reverts.Overflow, reverts.KindOf(err))
}

func TestSettle(t *testing.T) {
	st := newStake()
	st.Value = lid.Tokens(2)

	acc, err := PerShare(lid.Tokens(1), lid.Tokens(4))
	require.NoError(t, err)

	divs, err := st.Dividends(acc)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Div(lid.Tokens(1), big.NewInt(2)), divs)

	require.NoError(t, st.Settle(acc))
	assert.Equal(t, divs, st.Stored)
	assert.Equal(t, acc, st.PayoutsTo)

	owed, err := st.Owed(acc)
	require.NoError(t, err)
	assert.Equal(t, int64(0), owed.Int64())

	again, err := st.Dividends(acc)
	require.NoError(t, err)
	assert.Equal(t, divs, again)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	svc := New(solidity.NewContext(lid.BytesToAddress([]byte("staking")), state.New(db, nil)))

	alice := lid.BytesToAddress([]byte("alice"))
	bob := lid.BytesToAddress([]byte("bob"))

	st, err := svc.Get(alice)
	require.NoError(t, err)
	assert.True(t, st.IsEmpty())

	st.Value = big.NewInt(5)
	require.NoError(t, svc.Set(alice, st))
	require.NoError(t, svc.Set(bob, &Stake{Value: big.NewInt(1), PayoutsTo: new(big.Int), Stored: new(big.Int)}))
	st.Value = big.NewInt(7)
	require.NoError(t, svc.Set(alice, st))

	got, err := svc.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Value.Int64())

	stakers, err := svc.Stakers()
	require.NoError(t, err)
	assert.Equal(t, []lid.Address{alice, bob}, stakers)

	require.NoError(t, svc.Set(bob, newStake()))
	got, err = svc.Get(bob)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}
