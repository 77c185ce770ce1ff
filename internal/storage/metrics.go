package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// computeTotal counts computations by domain and result
	computeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_compute_total",
		Help: "Total computations by domain and result",
	}, []string{"domain", "result"})

	computeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "calculator_compute_duration_seconds",
		Help:    "Computation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"domain"})

	operationInsertTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_operation_insert_total",
		Help: "Total operation inserts by domain and result",
	}, []string{"domain", "result"})
)
