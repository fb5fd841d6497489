// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards_test

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

	"github.com/lidprotocol/lid/api/rewards"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/test/testledger"
)

func TestRewards(t *testing.T) {
	l, _ := testledger.New(t)
	ctx := context.Background()
	alice, bob := testledger.Actors[0], testledger.Actors[1]

	require.NoError(t, l.AdvanceTo(1, testledger.StartTime+1))
	for _, a := range []lid.Address{alice, bob} {
		require.NoError(t, l.RegisterRewards(ctx, a))
	}
	require.NoError(t, l.Stake(ctx, alice, lid.Tokens(10)))
	require.NoError(t, l.Stake(ctx, bob, lid.Tokens(30)))
	require.NoError(t, l.AdvanceTo(2, testledger.CycleStart+testledger.ReleaseInterval+1))

	router := mux.NewRouter()
	rewards.New(l).Mount(router, "/rewards")
	ts := httptest.NewServer(router)
	defer ts.Close()

	get := func(path string) (*rewards.Reward, int) {
		res, err := http.Get(ts.URL + path) //#nosec G107
		require.NoError(t, err)
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		if res.StatusCode != http.StatusOK {
			return nil, res.StatusCode
		}
		var r rewards.Reward
		require.NoError(t, json.Unmarshal(body, &r))
		return &r, res.StatusCode
	}

	r, _ := get("/rewards/1/" + alice.String())
	require.NotNil(t, r)
	assert.Equal(t, uint64(2), r.Current)
	assert.True(t, r.Claimable)
	// alice holds a quarter of the registered stake
	assert.Equal(t, lid.Tokens(25).String(), (*big.Int)(r.Payout).String())

	_, err := l.Claim(ctx, alice, 1)
	require.NoError(t, err)
	r, _ = get("/rewards/1/" + alice.String())
	assert.False(t, r.Claimable)
	assert.Equal(t, lid.Tokens(25).String(), (*big.Int)(r.Claimed).String())

	r, _ = get("/rewards/2/" + bob.String())
	assert.False(t, r.Claimable, "cycle 2 is running")

	_, status := get("/rewards/x/" + bob.String())
	assert.Equal(t, http.StatusBadRequest, status)
	_, status = get("/rewards/1/bob")
	assert.Equal(t, http.StatusBadRequest, status)
}
