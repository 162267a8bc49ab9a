package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaceSleepsForPositiveRemainder(t *testing.T) {
	p := New()
	p.lastBatch = time.Now().Add(-1 * time.Nanosecond) // pretend no time has passed

	var slept time.Duration
	p.sleep = func(d time.Duration) { slept = d }

	p.Pace(CPUFrequency) // exactly one second of emulated cycles

	assert.Greater(t, slept, time.Duration(0))
	assert.LessOrEqual(t, slept, time.Second)
}

func TestPaceNeverSleepsWhenBehindSchedule(t *testing.T) {
	p := New()
	p.lastBatch = time.Now().Add(-time.Hour) // way behind

	called := false
	p.sleep = func(time.Duration) { called = true }

	p.Pace(4)

	assert.False(t, called, "pacer must not attempt to catch up")
}

func TestResetReanchorsClock(t *testing.T) {
	p := New()
	p.lastBatch = time.Now().Add(-time.Hour)

	p.Reset()

	assert.WithinDuration(t, time.Now(), p.lastBatch, time.Second)
}
