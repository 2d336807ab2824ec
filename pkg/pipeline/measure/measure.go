package measure

import (
	"sync"
)

// DefaultMeasure keeps one metric per stage, in the order stages were added.
type DefaultMeasure struct {
	mu    *sync.Mutex
	Steps map[string]Metric
	names []string
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		mu:    &sync.Mutex{},
		Steps: make(map[string]Metric),
	}
}

// AddMetric returns the metric of name, creating it on first use.
func (m *DefaultMeasure) AddMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Steps[name]; ok {
		return mt
	}

	mt := &DefaultMetric{
		mu: &sync.Mutex{},
	}
	m.Steps[name] = mt
	m.names = append(m.names, name)

	return mt
}

func (m *DefaultMeasure) Metric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Steps[name]
}

func (m *DefaultMeasure) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.names...)
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make(map[string]Metric, len(m.Steps))
	for name, mt := range m.Steps {
		res[name] = mt
	}

	return res
}

var _ Measure = (*DefaultMeasure)(nil)
