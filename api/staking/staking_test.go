// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/api/staking"
	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/test/testledger"
)

func TestStaking(t *testing.T) {
	l, _ := testledger.New(t)
	ctx := context.Background()

	router := mux.NewRouter()
	staking.New(l).Mount(router, "/staking")
	ts := httptest.NewServer(router)
	defer ts.Close()

	get := func(path string, v any) {
		res, err := http.Get(ts.URL + path) //#nosec G107
		require.NoError(t, err)
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, res.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, v))
	}

	var stakers []lid.Address
	get("/staking/stakers", &stakers)
	assert.Empty(t, stakers)

	var summary staking.Staking
	get("/staking", &summary)
	assert.False(t, summary.Active)
	assert.Equal(t, []lid.Address{builtin.RewardPool.Address}, summary.Handlers)

	require.NoError(t, l.AdvanceTo(1, testledger.StartTime+1))
	for _, a := range testledger.Actors[:2] {
		require.NoError(t, l.Stake(ctx, a, lid.Tokens(10)))
	}

	get("/staking", &summary)
	assert.True(t, summary.Active)
	assert.Equal(t, uint64(2), summary.Version)
	assert.Equal(t, uint64(2), summary.Totals.TotalStakers)
	assert.Equal(t, "19800000000000000000", (*big.Int)(summary.Totals.TotalStaked).String())
	assert.Equal(t, "200000000000000000", (*big.Int)(summary.Totals.TotalStakingTax).String())

	get("/staking/stakers", &stakers)
	assert.Equal(t, testledger.Actors[:2], stakers)
}
