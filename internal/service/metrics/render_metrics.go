package metrics

import (
    "sync"

    "github.com/prometheus/client_golang/prometheus"
)

var (
    once sync.Once

    RenderLatency = prometheus.NewHistogramVec(
        prometheus.HistogramOpts{
            Namespace: "macroboard",
            Subsystem: "render",
            Name:      "latency_seconds",
            Help:      "Latency of dashboard render endpoints",
            Buckets:   prometheus.DefBuckets,
        },
        []string{"endpoint"},
    )

    RenderErrors = prometheus.NewCounterVec(
        prometheus.CounterOpts{
            Namespace: "macroboard",
            Subsystem: "render",
            Name:      "errors_total",
            Help:      "Errors by render endpoint",
        },
        []string{"endpoint"},
    )
)

func Register() {
    once.Do(func() {
        prometheus.MustRegister(RenderLatency, RenderErrors)
    })
}
