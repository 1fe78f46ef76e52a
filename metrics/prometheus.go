package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRegistry returns prometheus registry
func PrometheusRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewBuildInfoCollector())
	return registry
}

// PrometheusFactory returns factory that registers prometheus types on the given registerer
func PrometheusFactory(registry prometheus.Registerer) Factory {
	return &prometheusFactory{factory: promauto.With(registry)}
}

// WriteTextfile writes every metric gathered from the registry in the text
// format read by the node exporter textfile collector.
func WriteTextfile(registry prometheus.Gatherer, path string) error {
	return prometheus.WriteToTextfile(path, registry)
}

// prometheusFactory implements `Factory` interface
type prometheusFactory struct {
	factory promauto.Factory
}

func (d *prometheusFactory) NewCounterVec(opts CounterOpts, labelNames []string) Vec[Counter] {
	return promCounterVec{d.factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
	}, labelNames)}
}

func (d *prometheusFactory) NewHistogramVec(opts HistogramOpts, labelNames []string) Vec[Histogram] {
	return promHistogramVec{d.factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: opts.Namespace,
		Subsystem: opts.Subsystem,
		Name:      opts.Name,
		Help:      opts.Help,
		Buckets:   opts.Buckets,
	}, labelNames)}
}

type promCounterVec struct {
	v *prometheus.CounterVec
}

func (c promCounterVec) WithLabelValues(lvls ...string) Counter {
	return c.v.WithLabelValues(lvls...)
}

type promHistogramVec struct {
	v *prometheus.HistogramVec
}

func (c promHistogramVec) WithLabelValues(lvls ...string) Histogram {
	return c.v.WithLabelValues(lvls...)
}
