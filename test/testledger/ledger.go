// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testledger builds in-memory ledgers with funded actors for tests.
package testledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/genesis"
	"github.com/lidprotocol/lid/ledger"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/logdb"
	"github.com/lidprotocol/lid/lvldb"
)

// Schedule of the test economy.
const (
	LaunchTime      = 50
	StartTime       = 100
	CycleStart      = 200
	ReleaseInterval = 10
)

var (
	Owner = lid.BytesToAddress([]byte("owner"))
	// Actors are funded with 100 tokens each.
	Actors = []lid.Address{
		lid.BytesToAddress([]byte("alice")),
		lid.BytesToAddress([]byte("bob")),
		lid.BytesToAddress([]byte("carol")),
	}
)

func Config() *genesis.Config {
	cfg := genesis.DefaultConfig(Owner)
	cfg.LaunchTime = LaunchTime
	cfg.StartTime = StartTime
	cfg.RewardPool.CycleStart = CycleStart
	cfg.RewardPool.ReleaseInterval = ReleaseInterval
	cfg.RewardPool.Size = genesis.NewAmount(lid.Tokens(1000))
	for _, a := range Actors {
		cfg.Allocations = append(cfg.Allocations, genesis.Allocation{
			Address: a,
			Amount:  genesis.NewAmount(lid.Tokens(100)),
		})
	}
	return cfg
}

// New opens a ledger on memory stores. The stores are closed with the test.
func New(t testing.TB) (*ledger.Ledger, *logdb.LogDB) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ldb, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { ldb.Close() })

	l, err := ledger.Open(db, Config(), ledger.Options{CacheSize: 256, LogDB: ldb})
	require.NoError(t, err)
	return l, ldb
}
