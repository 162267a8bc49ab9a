// Package timing paces emulated cycles against a wall clock: sleep the
// positive remainder, never run ahead, never catch up.
package timing

import "time"

// CPUFrequency is the Sharp LR35902's nominal clock, in Hz.
const CPUFrequency = 4194304

// CyclesPerFrame is the number of CPU cycles in one 59.7 Hz DMG frame
// (456 cycles/line * 154 lines).
const CyclesPerFrame = 70224

// Pacer tracks the wall-clock timestamp of the last cycle batch and
// sleeps just enough to keep emulated time from running ahead of real
// time.
type Pacer struct {
	lastBatch time.Time
	sleep     func(time.Duration)
}

// New returns a Pacer anchored to the current time.
func New() *Pacer {
	return &Pacer{lastBatch: time.Now(), sleep: time.Sleep}
}

// Pace sleeps for the positive remainder of cycles/CPUFrequency seconds
// minus the wall time already elapsed since the previous call. If the
// host is running behind schedule, Pace returns immediately; it never
// sleeps a negative duration and never attempts to catch up on a
// previous overrun.
func (p *Pacer) Pace(cycles int) {
	budget := time.Duration(float64(cycles) / float64(CPUFrequency) * float64(time.Second))
	elapsed := time.Since(p.lastBatch)
	p.lastBatch = time.Now()

	remaining := budget - elapsed
	if remaining > 0 {
		p.sleep(remaining)
	}
}

// Reset re-anchors the pacer to the current time, discarding any
// accumulated drift. Useful after a pause.
func (p *Pacer) Reset() {
	p.lastBatch = time.Now()
}
