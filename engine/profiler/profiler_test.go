package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestProfilerReportsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	p := NewProfiler(zerolog.New(&buf))

	clock := time.Unix(1000, 0)
	p.now = func() time.Time { return clock }
	p.lastTime = clock

	for i := 0; i < 59; i++ {
		clock = clock.Add(16 * time.Millisecond)
		assert.False(t, p.Tick())
	}
	clock = clock.Add(56 * time.Millisecond)
	assert.True(t, p.Tick())

	assert.InDelta(t, 60.0, p.Last().FPS, 0.5)
	assert.Contains(t, buf.String(), "frame stats")
	assert.Contains(t, buf.String(), `"component":"profiler"`)
}
