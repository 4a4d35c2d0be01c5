package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickBeforeIntervalReturnsNil(t *testing.T) {
	p := NewProfiler()
	assert.Nil(t, p.Tick())
	assert.Equal(t, 1, p.frameCount)
}

func TestTickLogsAfterInterval(t *testing.T) {
	p := NewProfiler()
	p.updateInterval = 0

	time.Sleep(time.Millisecond)
	stats := p.Tick()
	require.NotNil(t, stats)
	assert.Greater(t, stats.FPS, 0.0)
	assert.Greater(t, stats.AvgFrameMs, 0.0)
	assert.GreaterOrEqual(t, stats.MaxFrameMs, stats.AvgFrameMs)
	assert.Greater(t, stats.HeapMB, 0.0)

	// counters reset for the next window
	assert.Equal(t, 0, p.frameCount)
	assert.Equal(t, time.Duration(0), p.frameMax)
}
