package journal

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var cleanupEnqueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "memoire_client",
		Subsystem: "journal",
		Name:      "cleanup_enqueued_total",
		Help:      "Orphaned upload deletions handed to the cleanup queue.",
	},
)
