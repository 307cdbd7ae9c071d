// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 BN Engine Contributors

package item

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ConsistencyViolations counts errors reported through the debug channel.
// Use RegisterMetrics to register this with a Prometheus registry.
var ConsistencyViolations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bnengine_consistency_violations_total",
		Help: "Total number of ownership consistency violations by error code",
	},
	[]string{"code"},
)

// Transfers counts completed attach operations by source and destination variant.
var Transfers = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bnengine_item_transfers_total",
		Help: "Total number of item transfers between locations",
	},
	[]string{"from", "to"},
)

// LiveItems tracks the number of items alive across all arenas.
var LiveItems = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "bnengine_items_live",
		Help: "Number of items currently alive",
	},
)

// DestroyedItems counts destroyed items.
var DestroyedItems = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "bnengine_items_destroyed_total",
		Help: "Total number of destroyed items",
	},
)

// RegisterMetrics registers item package metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(ConsistencyViolations)
	reg.MustRegister(Transfers)
	reg.MustRegister(LiveItems)
	reg.MustRegister(DestroyedItems)
}

// RecordViolation increments the violation counter for code.
func RecordViolation(code string) {
	ConsistencyViolations.WithLabelValues(code).Inc()
}

func recordTransfer(from, to Variant, hadFrom bool) {
	src := "detached"
	if hadFrom {
		src = from.String()
	}
	Transfers.WithLabelValues(src, to.String()).Inc()
}
