package metrics

import (
	"time"
)

type Factory interface {
	NewCounterVec(opts CounterOpts, labelNames []string) Vec[Counter]
	NewHistogramVec(opts HistogramOpts, labelNames []string) Vec[Histogram]
}

type Histogram interface {
	Observe(float64)
}

type Vec[T any] interface {
	WithLabelValues(lvs ...string) T
}

type Counter interface {
	Inc()
	Add(float64)
}

type Opts struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string
}

type CounterOpts Opts
type HistogramOpts struct {
	Namespace string
	Subsystem string
	Name      string
	Help      string

	Buckets []float64
}

// VoidFactory returns metrics factory without any collection.
func VoidFactory() Factory {
	return &noopFactory{}
}

const namespace = "t9n"

// Verdict is the outcome of validating a single transaction
type Verdict string

const (
	VerdictValid    Verdict = "valid"
	VerdictInvalid  Verdict = "invalid"
	VerdictRejected Verdict = "rejected"
)

// Validation records validation outcomes and how long they took.
type Validation struct {
	total    Vec[Counter]
	duration Vec[Histogram]
}

func NewValidation(factory Factory) *Validation {
	return &Validation{
		total: factory.NewCounterVec(CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Number of validated transactions by type, version and verdict.",
		}, []string{"type", "version", "verdict"}),
		duration: factory.NewHistogramVec(HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Time spent validating a transaction.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"verdict"}),
	}
}

func (m *Validation) Observe(txType, version string, verdict Verdict, elapsed time.Duration) {
	m.total.WithLabelValues(txType, version, string(verdict)).Inc()
	m.duration.WithLabelValues(string(verdict)).Observe(elapsed.Seconds())
}
