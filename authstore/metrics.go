package authstore

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memoire_client",
			Subsystem: "authstore",
			Name:      "uploads_total",
			Help:      "Successful blob uploads, by media kind.",
		},
		[]string{"kind"},
	)

	uploadDeletesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memoire_client",
			Subsystem: "authstore",
			Name:      "upload_deletes_total",
			Help:      "Stored blobs removed, mostly by compensating cleanup.",
		},
	)
)
