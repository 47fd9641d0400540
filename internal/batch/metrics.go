package batch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	shapesProjected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phytogl_batch_shapes_projected_total",
		Help: "Number of shapes rendered by projection workers",
	})
	shapesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "phytogl_batch_shapes_failed_total",
		Help: "Number of shapes whose projection traversal failed",
	})
	projectionSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "phytogl_batch_projection_seconds",
		Help:    "Duration of a complete batch projection",
		Buckets: prometheus.DefBuckets,
	})
)
