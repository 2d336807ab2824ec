// Package measure records how long pipeline stages take.
package measure

import "time"

type Measure interface {
	AddMetric(name string) Metric
	Metric(name string) Metric
	Names() []string
	AllMetrics() map[string]Metric
}

type Metric interface {
	AddDuration(elapsed time.Duration)
	AddFailure()
	AVGDuration() time.Duration
	Elapsed() time.Duration
	Count() int64
	Failures() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	Share() float64
}
