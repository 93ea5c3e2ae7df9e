package stats

// Noop discards all metrics. It is the default when no collector is configured.
type Noop struct{}

// Compile-time check that Noop implements Collector.
var _ Collector = (*Noop)(nil)

// NewNoop creates a new no-op collector.
func NewNoop() *Noop {
	return &Noop{}
}

// IncCounter does nothing.
func (n *Noop) IncCounter(string, int64) {}

// SetGauge does nothing.
func (n *Noop) SetGauge(string, int64) {}

// ObserveHistogram does nothing.
func (n *Noop) ObserveHistogram(string, float64) {}
