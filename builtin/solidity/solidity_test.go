// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/lvldb"
	"github.com/lidprotocol/lid/state"
)

type TestStruct struct {
	Field1 uint64
	Field2 *big.Int
	Addr1  lid.Address
}

func newTestContext(t *testing.T) *Context {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	return NewContext(lid.Address{1}, state.New(db, nil))
}

func TestUint256(t *testing.T) {
	ctx := newTestContext(t)
	u := NewUint256(ctx, lid.BytesToBytes32([]byte("total")))

	v, err := u.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, v.Sign())

	require.NoError(t, u.Set(big.NewInt(100)))
	require.NoError(t, u.Add(big.NewInt(50)))
	require.NoError(t, u.Sub(big.NewInt(30)))

	v, err = u.Get()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(120), v)

	assert.Error(t, u.Sub(big.NewInt(121)), "underflow")
	assert.Error(t, u.Set(new(big.Int).Lsh(big.NewInt(1), 256)), "overflow")

	v, _ = u.Get()
	assert.Equal(t, big.NewInt(120), v)
}

func TestAddress(t *testing.T) {
	ctx := newTestContext(t)
	a := NewAddress(ctx, lid.BytesToBytes32([]byte("owner")))

	got, err := a.Get()
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	owner := lid.BytesToAddress([]byte("owner"))
	a.Set(owner)
	got, err = a.Get()
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestMapping(t *testing.T) {
	ctx := newTestContext(t)
	m := NewMapping[lid.Address, *TestStruct](ctx, lid.BytesToBytes32([]byte("records")))

	key := lid.BytesToAddress([]byte("key"))

	// zero value for missing keys
	empty, err := m.Get(key)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Equal(t, uint64(0), empty.Field1)

	in := &TestStruct{Field1: 7, Field2: big.NewInt(9), Addr1: key}
	require.NoError(t, m.Set(key, in))

	out, err := m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	m.Clear(key)
	out, err = m.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), out.Field1)

	// different base positions do not collide
	other := NewMapping[lid.Address, *TestStruct](ctx, lid.BytesToBytes32([]byte("other")))
	require.NoError(t, m.Set(key, in))
	out, err = other.Get(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), out.Field1)
}

func TestList(t *testing.T) {
	ctx := newTestContext(t)
	l := NewList[lid.Address](ctx, lid.BytesToBytes32([]byte("list")))

	addrs := []lid.Address{{1}, {2}, {3}, {4}}
	for _, a := range addrs {
		require.NoError(t, l.Push(a))
	}
	n, err := l.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n)

	_, err = l.Get(4)
	assert.Error(t, err)

	require.NoError(t, l.RemoveSwap(1))
	var got []lid.Address
	require.NoError(t, l.Each(func(_ uint64, a lid.Address) (bool, error) {
		got = append(got, a)
		return true, nil
	}))
	assert.Equal(t, []lid.Address{{1}, {4}, {3}}, got)

	require.NoError(t, l.RemoveSwap(2))
	require.NoError(t, l.Set(0, lid.Address{9}))
	got = nil
	require.NoError(t, l.Each(func(_ uint64, a lid.Address) (bool, error) {
		got = append(got, a)
		return false, nil
	}))
	assert.Equal(t, []lid.Address{{9}}, got)

	assert.Error(t, l.RemoveSwap(5))
}
