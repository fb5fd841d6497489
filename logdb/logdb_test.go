// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/logdb"
	"github.com/lidprotocol/lid/test/datagen"
	"github.com/lidprotocol/lid/xenv"
)

func newEvent(contract lid.Address, name string, account, counterparty lid.Address, amount *big.Int) *xenv.Event {
	return &xenv.Event{
		Address:      contract,
		Name:         name,
		Account:      account,
		Counterparty: counterparty,
		Amount:       amount,
	}
}

func TestFilterEvents(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	var (
		token   = datagen.RandAddress()
		staking = datagen.RandAddress()
		alice   = datagen.RandAddress()
		bob     = datagen.RandAddress()
	)

	n, err := db.NewestBlockNumber()
	require.NoError(t, err)
	assert.Zero(t, n)

	for i := uint32(1); i <= 10; i++ {
		require.NoError(t, db.Insert(ctx, i, 1000+uint64(i), []*xenv.Event{
			newEvent(token, "Transfer", alice, bob, lid.Tokens(int64(i))),
			newEvent(staking, "Stake", alice, lid.Address{}, lid.Tokens(int64(i))),
		}))
	}
	require.NoError(t, db.Insert(ctx, 11, 1011, nil))

	n, err = db.NewestBlockNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(10), n)

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 20)
	assert.Equal(t, uint64(1), all[0].Seq)
	assert.Equal(t, "Transfer", all[0].Name)
	assert.Equal(t, token, all[0].Contract)
	assert.Equal(t, bob, all[0].Counterparty)
	assert.Equal(t, lid.Tokens(1).String(), all[0].Amount.String())
	assert.Equal(t, uint64(1001), all[0].BlockTime)

	tests := []struct {
		name   string
		filter *logdb.Filter
		want   []uint64
	}{
		{"range", &logdb.Filter{Range: &logdb.Range{From: 2, To: 3}}, []uint64{3, 4, 5, 6}},
		{"open range", &logdb.Filter{Range: &logdb.Range{From: 10}}, []uint64{19, 20}},
		{"contract and name", &logdb.Filter{Contract: &staking, Name: "Stake", Range: &logdb.Range{From: 9, To: 10}}, []uint64{18, 20}},
		{"counterparty", &logdb.Filter{Account: &bob, Options: &logdb.Options{Limit: 3}}, []uint64{1, 3, 5}},
		{"desc with offset", &logdb.Filter{Account: &alice, Order: logdb.DESC, Options: &logdb.Options{Offset: 1, Limit: 2}}, []uint64{19, 18}},
		{"no match", &logdb.Filter{Name: "Claim"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := db.FilterEvents(ctx, tt.filter)
			require.NoError(t, err)
			var seqs []uint64
			for _, ev := range events {
				seqs = append(seqs, ev.Seq)
			}
			assert.Equal(t, tt.want, seqs)
		})
	}
}

func TestFilterCanceled(t *testing.T) {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Insert(context.Background(), 1, 1, []*xenv.Event{
		newEvent(datagen.RandAddress(), "Mint", datagen.RandAddress(), lid.Address{}, nil),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = db.FilterEvents(ctx, nil)
	assert.Error(t, err)
}
