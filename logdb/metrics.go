// Copyright (c) 2026 The Lid developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strings"

	"github.com/lidprotocol/lid/metrics"
)

var (
	metricEventQueryParameters = metrics.LazyLoadCounterVec("logdb_query_parameters", []string{"parameters"})
	metricQueryOrderCounter    = metrics.LazyLoadCounterVec("logdb_query_order", []string{"order"})
	metricLimitBucket          = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
	metricInsertedEvents = metrics.LazyLoadCounter("logdb_inserted_events")
)

func metricsHandleFilter(filter *Filter) {
	if metrics.NoOp() {
		return
	}

	paramsUsed := make([]string, 0, 4)
	if filter.Contract != nil {
		paramsUsed = append(paramsUsed, "contract")
	}
	if filter.Name != "" {
		paramsUsed = append(paramsUsed, "name")
	}
	if filter.Account != nil {
		paramsUsed = append(paramsUsed, "account")
	}
	if filter.Range != nil {
		paramsUsed = append(paramsUsed, "range")
	}
	metricEventQueryParameters().AddWithLabel(1, map[string]string{"parameters": strings.Join(paramsUsed, ",")})

	if filter.Order == DESC {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "desc"})
	} else {
		metricQueryOrderCounter().AddWithLabel(1, map[string]string{"order": "asc"})
	}

	if filter.Options != nil {
		limit := filter.Options.Limit
		if limit > 1000 {
			limit = 1001
		}
		metricLimitBucket().ObserveWithLabels(int64(limit), map[string]string{"type": "event"})
	}
}
