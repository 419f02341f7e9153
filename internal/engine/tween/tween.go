// Package tween drives a single float value between two endpoints over time.
// NPC patrols use it as their motion driver, independent of physics.
package tween

import (
	"fmt"
	"time"
)

// RepeatForever loops the tween until it is stopped.
const RepeatForever = -1

// Config describes a linear tween.
type Config struct {
	From, To float64
	Duration time.Duration
	Yoyo     bool // Play back to From after reaching To
	Repeat   int  // Extra cycles after the first; -1 loops forever

	Set      func(v float64) // Receives the value every update
	OnYoyo   func()          // Called when the tween turns around at To
	OnRepeat func()          // Called when a new cycle starts
}

// Tween is a running linear interpolation.
type Tween struct {
	cfg      Config
	elapsed  time.Duration // Time into the current leg
	backward bool          // On the return leg of a yoyo
	cycles   int           // Completed cycles
	paused   bool
	done     bool
}

// New creates a tween and applies its starting value.
func New(cfg Config) (*Tween, error) {
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("tween duration must be positive, got %v", cfg.Duration)
	}
	if cfg.Repeat < RepeatForever {
		return nil, fmt.Errorf("invalid tween repeat %d", cfg.Repeat)
	}
	t := &Tween{cfg: cfg}
	t.apply()
	return t, nil
}

// Pause stops the tween where it is. Pausing twice is a no-op.
func (t *Tween) Pause() {
	t.paused = true
}

// Resume continues a paused tween. Resuming a running tween is a no-op.
func (t *Tween) Resume() {
	t.paused = false
}

// IsPaused reports whether the tween is paused.
func (t *Tween) IsPaused() bool {
	return t.paused
}

// IsDone reports whether a finite tween has completed.
func (t *Tween) IsDone() bool {
	return t.done
}

// Value returns the current interpolated value.
func (t *Tween) Value() float64 {
	p := float64(t.elapsed) / float64(t.cfg.Duration)
	if t.backward {
		p = 1 - p
	}
	return t.cfg.From + (t.cfg.To-t.cfg.From)*p
}

// Update advances the tween by dt.
func (t *Tween) Update(dt time.Duration) {
	if t.paused || t.done {
		return
	}

	t.elapsed += dt
	for t.elapsed >= t.cfg.Duration {
		t.elapsed -= t.cfg.Duration

		if t.cfg.Yoyo && !t.backward {
			t.backward = true
			if t.cfg.OnYoyo != nil {
				t.cfg.OnYoyo()
			}
			continue
		}

		t.cycles++
		if t.cfg.Repeat != RepeatForever && t.cycles > t.cfg.Repeat {
			t.done = true
			t.elapsed = t.cfg.Duration
			t.apply()
			return
		}
		t.backward = false
		if t.cfg.OnRepeat != nil {
			t.cfg.OnRepeat()
		}
	}
	t.apply()
}

func (t *Tween) apply() {
	if t.cfg.Set != nil {
		t.cfg.Set(t.Value())
	}
}
