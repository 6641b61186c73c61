package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/provider"
)

const (
	defaultTimingUnit = time.Millisecond

	namespace = "tilde"
	subsystem = "console"

	histogramBuckets = 50
)

// NewProvider returns a Prometheus-backed provider when export is wanted and
// a discarding one otherwise.
func NewProvider(export bool) provider.Provider {
	if !export {
		return provider.NewDiscardProvider()
	}
	return provider.NewPrometheusProvider(namespace, subsystem)
}

// ConsoleInstruments are the measurements taken by the render/input loop.
type ConsoleInstruments struct {
	Frames          metrics.Counter
	FrameBytes      metrics.Histogram
	RefreshDuration metrics.Histogram
	Keys            metrics.Counter
	ProbeFallbacks  metrics.Counter
}

func NewConsoleInstruments(p provider.Provider) *ConsoleInstruments {
	return &ConsoleInstruments{
		Frames:          p.NewCounter("frames_count"),
		FrameBytes:      p.NewHistogram("frame_bytes", histogramBuckets),
		RefreshDuration: p.NewHistogram("refresh_duration_ms", histogramBuckets),
		Keys:            p.NewCounter("keys_count"),
		ProbeFallbacks:  p.NewCounter("size_probe_fallback_count"),
	}
}

// DiscardInstruments returns instruments that record nothing.
func DiscardInstruments() *ConsoleInstruments {
	return NewConsoleInstruments(provider.NewDiscardProvider())
}

func MeasureSince(h metrics.Histogram, t0 time.Time) {
	measureSince(h, t0, time.Now(), float64(defaultTimingUnit))
}

func measureSince(h metrics.Histogram, t0, t1 time.Time, unit float64) {
	d := t1.Sub(t0)
	if d < 0 {
		d = 0
	}
	h.Observe(float64(d) / unit)
}
