// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gather(t *testing.T) map[string]*dto.MetricFamily {
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	m := make(map[string]*dto.MetricFamily)
	for _, f := range families {
		m[f.GetName()] = f
	}
	return m
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	// idempotent
	InitializePrometheusMetrics()

	Counter("ops").Add(2)
	Counter("ops").Add(3)

	vec := CounterVec("ops_by_name", []string{"name"})
	vec.AddWithLabel(1, map[string]string{"name": "stake"})
	vec.AddWithLabel(4, map[string]string{"name": "unstake"})

	gauge := Gauge("stakers")
	gauge.Set(10)
	gauge.Add(-3)

	hist := HistogramVec("op_duration", []string{"name"}, BucketOpMicros)
	hist.ObserveWithLabels(30, map[string]string{"name": "stake"})
	hist.ObserveWithLabels(70, map[string]string{"name": "stake"})

	families := gather(t)

	assert.Equal(t, float64(5), families[namespace+"_ops"].GetMetric()[0].GetCounter().GetValue())
	assert.Len(t, families[namespace+"_ops_by_name"].GetMetric(), 2)
	assert.Equal(t, float64(7), families[namespace+"_stakers"].GetMetric()[0].GetGauge().GetValue())

	h := families[namespace+"_op_duration"].GetMetric()[0].GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.Equal(t, float64(100), h.GetSampleSum())

	rec := httptest.NewRecorder()
	HTTPHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.True(t, strings.Contains(rec.Body.String(), namespace+"_stakers 7"))
}
