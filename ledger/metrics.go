// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/lidprotocol/lid/builtin"
	"github.com/lidprotocol/lid/lid"
	"github.com/lidprotocol/lid/metrics"
	"github.com/lidprotocol/lid/xenv"
)

var (
	metricOpCount      = metrics.LazyLoadCounterVec("ledger_ops_count", []string{"op", "result"})
	metricOpDuration   = metrics.LazyLoadHistogramVec("ledger_op_duration_us", []string{"op"}, metrics.BucketOpMicros)
	metricTotalStaked  = metrics.LazyLoadGauge("ledger_total_staked_tokens")
	metricTotalStakers = metrics.LazyLoadGauge("ledger_total_stakers")
	metricCacheHit     = metrics.LazyLoadGauge("ledger_cache_hit_count")
	metricCacheMiss    = metrics.LazyLoadGauge("ledger_cache_miss_count")
)

// reportCacheStats logs the storage cache hit rate when it moved.
func (l *Ledger) reportCacheStats() {
	if l.cache == nil {
		return
	}
	changed, hit, miss := l.cache.Stats().Stats()
	if changed {
		logger.Debug("storage cache stats", "hit", hit, "miss", miss, "rate", float64(hit)/float64(hit+miss))
	}
	metricCacheHit().Set(hit)
	metricCacheMiss().Set(miss)
}

func (l *Ledger) updateGauges(env *xenv.Environment) {
	if metrics.NoOp() {
		return
	}
	totals, err := builtin.Staking.Native(env).Totals()
	if err != nil {
		logger.Debug("failed to read totals", "err", err)
		return
	}
	staked := new(big.Int).Div(totals.TotalStaked, lid.OneToken)
	metricTotalStaked().Set(staked.Int64())
	metricTotalStakers().Set(totals.TotalStakers.Int64())
}
