// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := defaultNoopMetrics()

	assert.Nil(t, m.GetOrCreateHandler())

	// all meters accept writes silently
	m.GetOrCreateCountMeter("c").Add(1)
	m.GetOrCreateCountVecMeter("cv", []string{"op"}).AddWithLabel(1, map[string]string{"op": "stake"})
	g := m.GetOrCreateGaugeMeter("g")
	g.Add(1)
	g.Set(2)
	m.GetOrCreateHistogramVecMeter("h", []string{"op"}, BucketOpMicros).
		ObserveWithLabels(5, map[string]string{"op": "stake"})
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	f := LazyLoad(func() int {
		calls++
		return 42
	})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 42, f())
	assert.Equal(t, 42, f())
	assert.Equal(t, 1, calls)
}
