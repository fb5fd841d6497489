// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package history

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/builtin/solidity"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/lvldb"
	"github.com/lidprotocol/lid/state"
)

func newHistory(t *testing.T) *History {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	sctx := solidity.NewContext(lid.BytesToAddress([]byte("history")), state.New(db, nil))
	return New(sctx, lid.BytesToBytes32([]byte("base")))
}

func TestValueAt(t *testing.T) {
	h := newHistory(t)
	acc := lid.BytesToAddress([]byte("alice"))

	v, err := h.ValueAt(acc, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Int64())

	require.NoError(t, h.Record(acc, big.NewInt(10), 5))
	require.NoError(t, h.Record(acc, big.NewInt(20), 9))
	require.NoError(t, h.Record(acc, big.NewInt(0), 12))
	require.NoError(t, h.Record(acc, big.NewInt(30), 20))

	tests := []struct {
		seq  uint64
		want int64
	}{
		{0, 0},
		{4, 0},
		{5, 10},
		{8, 10},
		{9, 20},
		{11, 20},
		{12, 0},
		{19, 0},
		{20, 30},
		{1000, 30},
	}
	for _, tt := range tests {
		v, err := h.ValueAt(acc, tt.seq)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.Int64(), "seq %d", tt.seq)
	}
}

func TestRecordCoalesces(t *testing.T) {
	h := newHistory(t)
	total := Name("total")

	require.NoError(t, h.Record(total, big.NewInt(1), 3))
	require.NoError(t, h.Record(total, big.NewInt(2), 3))
	require.NoError(t, h.Record(total, big.NewInt(3), 3))

	n, err := h.Len(total)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	latest, err := h.Latest(total)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), latest.Seq)
	assert.Equal(t, int64(3), latest.Value.Int64())

	assert.Error(t, h.Record(total, big.NewInt(4), 2))
}

func TestKeysAreIndependent(t *testing.T) {
	h := newHistory(t)
	a := lid.BytesToAddress([]byte("a"))
	b := lid.BytesToAddress([]byte("b"))

	require.NoError(t, h.Record(a, big.NewInt(1), 1))
	require.NoError(t, h.Record(b, big.NewInt(2), 1))

	latest, err := h.Latest(lid.BytesToAddress([]byte("c")))
	require.NoError(t, err)
	assert.Nil(t, latest)

	cps, err := h.Checkpoints(a)
	require.NoError(t, err)
	require.Len(t, cps, 1)
	assert.Equal(t, int64(1), cps[0].Value.Int64())

	v, err := h.ValueAt(b, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v.Int64())
}
