package measure

import (
	"sync"
	"time"
)

type DefaultMetric struct {
	mu          *sync.Mutex
	EndDuration time.Duration
	stepElapsed time.Duration
	total       int64
	failures    int64
}

func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.total++
	mt.stepElapsed += elapsed
}

func (mt *DefaultMetric) AddFailure() {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.failures++
}

func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.EndDuration = endDuration
}

func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.EndDuration
}

func (mt *DefaultMetric) Count() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.total
}

func (mt *DefaultMetric) Failures() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.failures
}

// Elapsed returns the time spent in all runs of the stage.
func (mt *DefaultMetric) Elapsed() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.stepElapsed
}

// Share returns the fraction of the total duration spent in the stage, 0 when no total was set.
func (mt *DefaultMetric) Share() float64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.EndDuration <= 0 {
		return 0
	}

	return float64(mt.stepElapsed) / float64(mt.EndDuration)
}

func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.total == 0 {
		return time.Duration(0)
	}

	return Round(time.Duration(float64(mt.stepElapsed) / float64(mt.total)))
}

// Round drops the precision of d below its most significant unit.
func Round(d time.Duration) time.Duration {
	switch {
	case d > time.Hour:
		d = d.Round(time.Minute)
	case d > time.Minute:
		d = d.Round(time.Second)
	case d > time.Second:
		d = d.Round(time.Millisecond)
	case d > time.Millisecond:
		d = d.Round(time.Microsecond)
	}

	return d
}

var _ Metric = (*DefaultMetric)(nil)
