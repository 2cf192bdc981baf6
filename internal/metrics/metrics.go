// Package metrics declares the prometheus instruments shared by the
// pipeline and the hub.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wowlog"

var (
	// LinesTotal counts ingested log lines per wire format.
	LinesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "lines_total",
		Help:      "Log lines ingested, by format version.",
	}, []string{"format"})

	// UnrecognizedTotal counts lines that matched no grammar rule.
	UnrecognizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "unrecognized_total",
		Help:      "Lines decoded to the unrecognized event kind.",
	})

	// DispatchedTotal counts events handed to extensions, per extension.
	DispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pipeline",
		Name:      "events_dispatched_total",
		Help:      "Events dispatched to extensions, by extension name.",
	}, []string{"extension"})

	// HubBatchesTotal counts accepted publish batches per room.
	HubBatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "publish_batches_total",
		Help:      "Accepted publish batches, by room.",
	}, []string{"room"})

	// HubEventsTotal counts stat events accepted by the hub per room.
	HubEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "events_total",
		Help:      "Stat events accepted, by room.",
	}, []string{"room"})

	// HubRejectedTotal counts rejected publishes by reason.
	HubRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "rejected_total",
		Help:      "Rejected publish requests, by reason.",
	}, []string{"reason"})

	// HubSubscribers gauges live websocket subscribers.
	HubSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "hub",
		Name:      "subscribers",
		Help:      "Connected websocket subscribers.",
	})
)
