package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entriesCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memoire_client",
			Name:      "entries_created_total",
			Help:      "Journal entries successfully created, by entry type.",
		},
		[]string{"type"},
	)

	entriesDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memoire_client",
			Name:      "entries_deleted_total",
			Help:      "Journal entries successfully deleted.",
		},
	)

	searchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memoire_client",
			Name:      "searches_total",
			Help:      "Search calls that returned without error.",
		},
	)
)
