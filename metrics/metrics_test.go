package metrics

import (
	"testing"
	"time"

	"github.com/go-kit/kit/metrics/generic"
	"github.com/stretchr/testify/assert"
)

func TestMeasureSince(t *testing.T) {
	t.Parallel()

	t0 := time.Unix(0, 0)

	h := generic.NewHistogram("refresh", 10)
	measureSince(h, t0, t0.Add(250*time.Millisecond), float64(time.Millisecond))
	assert.InDelta(t, 250, h.Quantile(0.5), 0.001)

	// clock going backwards is recorded as zero
	h = generic.NewHistogram("refresh", 10)
	measureSince(h, t0, t0.Add(-time.Second), float64(time.Millisecond))
	assert.InDelta(t, 0, h.Quantile(0.5), 0.001)
}

func TestDiscardInstruments(t *testing.T) {
	t.Parallel()

	inst := DiscardInstruments()
	inst.Frames.Add(1)
	inst.FrameBytes.Observe(128)
	inst.Keys.Add(1)
	inst.ProbeFallbacks.Add(1)
	MeasureSince(inst.RefreshDuration, time.Now())
}
