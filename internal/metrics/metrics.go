// Package metrics registra los contadores del motor de tomas en el registry por defecto de Prometheus.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	dosesMaterializedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medtracker",
			Name:      "doses_materialized_total",
			Help:      "Doses created by the daily materialization pass.",
		},
	)

	doseTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "medtracker",
			Name:      "dose_transitions_total",
			Help:      "Dose state transitions requested, by target state and whether they were applied.",
		},
		[]string{"state", "applied"},
	)

	dataIntegrityFaultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "medtracker",
			Name:      "data_integrity_faults_total",
			Help:      "Records skipped during materialization because a parent record is missing or invalid.",
		},
	)
)

func DoseMaterialized() {
	dosesMaterializedTotal.Inc()
}

func DoseTransition(state string, applied bool) {
	doseTransitionsTotal.WithLabelValues(state, strconv.FormatBool(applied)).Inc()
}

func DataIntegrityFault() {
	dataIntegrityFaultsTotal.Inc()
}
