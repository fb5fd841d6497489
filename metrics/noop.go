// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "net/http"

// noopMetrics implements a no operations metrics service
type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return &noopMetrics{} }

func (*noopMetrics) GetOrCreateCountMeter(string) CountMeter { return noopMetric }

func (*noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter { return noopMetric }

func (*noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return noopMetric }

func (*noopMetrics) GetOrCreateHistogramVecMeter(string, []string, []int64) HistogramVecMeter {
	return noopMetric
}

func (*noopMetrics) GetOrCreateHandler() http.Handler { return nil }

var noopMetric = noopMeters{}

type noopMeters struct{}

func (noopMeters) ObserveWithLabels(int64, map[string]string) {}

func (noopMeters) AddWithLabel(int64, map[string]string) {}

func (noopMeters) Add(int64) {}

func (noopMeters) Set(int64) {}

// NoOp reports whether metrics are disabled.
func NoOp() bool {
	_, ok := metrics.(*noopMetrics)
	return ok
}
