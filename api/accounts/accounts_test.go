// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts_test

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/api/accounts"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/test/testledger"
)

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func str(v *math.HexOrDecimal256) string {
	return (*big.Int)(v).String()
}

func TestAccounts(t *testing.T) {
	l, _ := testledger.New(t)
	alice := testledger.Actors[0]
	ctx := context.Background()

	require.NoError(t, l.AdvanceTo(1, testledger.StartTime+1))
	require.NoError(t, l.Stake(ctx, alice, lid.Tokens(10)))
	require.NoError(t, l.Tick(1))
	require.NoError(t, l.Stake(ctx, alice, lid.Tokens(10)))

	router := mux.NewRouter()
	accounts.New(l).Mount(router, "/accounts")
	ts := httptest.NewServer(router)
	defer ts.Close()

	t.Run("account", func(t *testing.T) {
		body, status := httpGet(t, ts.URL+"/accounts/"+alice.String())
		require.Equal(t, http.StatusOK, status, string(body))
		var acc accounts.Account
		require.NoError(t, json.Unmarshal(body, &acc))
		assert.Equal(t, lid.Tokens(80).String(), str(acc.Balance))
		assert.Equal(t, "19800000000000000000", str(acc.Stake))
		assert.False(t, acc.Registered)
	})

	t.Run("stake history", func(t *testing.T) {
		body, status := httpGet(t, ts.URL+"/accounts/"+alice.String()+"/stake?block=1")
		require.Equal(t, http.StatusOK, status, string(body))
		var at accounts.StakeAt
		require.NoError(t, json.Unmarshal(body, &at))
		assert.Equal(t, uint32(1), at.Block)
		assert.Equal(t, "9900000000000000000", str(at.Stake))

		body, status = httpGet(t, ts.URL+"/accounts/"+alice.String()+"/stake")
		require.Equal(t, http.StatusOK, status, string(body))
		require.NoError(t, json.Unmarshal(body, &at))
		assert.Equal(t, uint32(2), at.Block)
		assert.Equal(t, "19800000000000000000", str(at.Stake))
	})

	t.Run("bad requests", func(t *testing.T) {
		for _, path := range []string{
			"/accounts/0xinvalid",
			"/accounts/" + alice.String() + "/stake?block=abc",
			"/accounts/" + alice.String() + "/stake?block=3",
		} {
			_, status := httpGet(t, ts.URL+path)
			assert.Equal(t, http.StatusBadRequest, status, path)
		}
	})
}
