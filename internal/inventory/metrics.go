// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package inventory

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CacheRebuilds counts rebuilds of the derived inventory caches.
// Use RegisterMetrics to register this with a Prometheus registry.
var CacheRebuilds = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bnengine_inventory_cache_rebuilds_total",
		Help: "Total number of inventory cache rebuilds by cache",
	},
	[]string{"cache"},
)

// Cache labels.
const (
	cacheBinned  = "binned"
	cacheType    = "type"
	cacheQuality = "quality"
)

// RegisterMetrics registers inventory metrics with the given Prometheus registry.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(CacheRebuilds)
}
