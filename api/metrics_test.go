// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lidprotocol/lid/api/accounts"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/metrics"
	"github.com/lidprotocol/lid/test/testledger"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func TestMetricsMiddleware(t *testing.T) {
	l, _ := testledger.New(t)

	router := mux.NewRouter()
	accounts.New(l).Mount(router, "/accounts")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	httpGet(t, ts.URL+"/accounts/0x")
	httpGet(t, ts.URL+"/accounts/"+lid.Address{}.String())
	httpGet(t, ts.URL+"/accounts/"+testledger.Actors[0].String())

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	require.NoError(t, err)

	// label pairs are sorted by name
	counts := map[string]float64{}
	for _, metric := range families["lid_metrics_api_request_count"].GetMetric() {
		labels := metric.GetLabel()
		require.Equal(t, 3, len(labels))
		assert.Equal(t, "code", labels[0].GetName())
		assert.Equal(t, "method", labels[1].GetName())
		assert.Equal(t, "name", labels[2].GetName())
		if labels[2].GetValue() != "/accounts/{address}" {
			continue
		}
		assert.Equal(t, "GET", labels[1].GetValue())
		counts[labels[0].GetValue()] = metric.GetCounter().GetValue()
	}
	assert.Equal(t, map[string]float64{"200": 2, "400": 1}, counts)
}
