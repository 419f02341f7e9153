// Package anim plays spritesheet animations.
// A Library holds the named animation definitions for a scene and a
// scene-wide pause switch; each sprite owns a Player.
package anim

import (
	"errors"
	"fmt"
)

// RepeatForever makes an animation loop until stopped.
const RepeatForever = -1

// ErrUnknownAnimation is returned when playing a key the library doesn't know.
var ErrUnknownAnimation = errors.New("unknown animation")

// Definition describes one animation cut from a spritesheet.
type Definition struct {
	Key       string  `json:"key"`
	Sheet     string  `json:"sheet"`      // Spritesheet the frames index into
	Start     int     `json:"start"`      // First frame (inclusive)
	End       int     `json:"end"`        // Last frame (inclusive)
	FrameRate float64 `json:"frame_rate"` // Frames per second
	Repeat    int     `json:"repeat"`     // Extra plays after the first; -1 loops forever
}

// Validate checks if a definition is properly configured
func (d *Definition) Validate() error {
	if d.Key == "" {
		return fmt.Errorf("animation must have a key")
	}
	if d.Sheet == "" {
		return fmt.Errorf("animation %s: sheet is required", d.Key)
	}
	if d.Start < 0 || d.End < d.Start {
		return fmt.Errorf("animation %s: invalid frame range %d-%d", d.Key, d.Start, d.End)
	}
	if d.FrameRate <= 0 {
		return fmt.Errorf("animation %s: frame rate must be positive", d.Key)
	}
	if d.Repeat < RepeatForever {
		return fmt.Errorf("animation %s: invalid repeat %d", d.Key, d.Repeat)
	}
	return nil
}

// FrameCount returns the number of frames in the animation.
func (d *Definition) FrameCount() int {
	return d.End - d.Start + 1
}

// Library holds the animations of a scene.
type Library struct {
	defs   map[string]*Definition
	paused bool
}

// NewLibrary creates an empty animation library
func NewLibrary() *Library {
	return &Library{defs: make(map[string]*Definition)}
}

// Create registers an animation definition.
func (l *Library) Create(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, exists := l.defs[def.Key]; exists {
		return fmt.Errorf("animation %s already exists", def.Key)
	}
	l.defs[def.Key] = &def
	return nil
}

// Get returns a definition by key
func (l *Library) Get(key string) (*Definition, bool) {
	def, ok := l.defs[key]
	return def, ok
}

// PauseAll freezes every player created from this library.
func (l *Library) PauseAll() {
	l.paused = true
}

// ResumeAll undoes PauseAll. Players paused individually stay paused.
func (l *Library) ResumeAll() {
	l.paused = false
}

// Paused reports whether the library is globally paused.
func (l *Library) Paused() bool {
	return l.paused
}

// NewPlayer creates a player bound to this library.
func (l *Library) NewPlayer() *Player {
	return &Player{lib: l}
}

// Player runs one animation at a time for a single sprite.
type Player struct {
	lib     *Library
	current *Definition
	frame   int     // Offset into the current definition
	elapsed float64 // Seconds spent on the current frame
	plays   int     // Completed plays of the current definition
	playing bool
	paused  bool
}

// Play starts the animation with the given key. If ignoreIfPlaying is set and
// that animation is already running, Play does nothing.
// A paused player is restarted from the first frame.
func (p *Player) Play(key string, ignoreIfPlaying bool) error {
	def, ok := p.lib.Get(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAnimation, key)
	}
	if ignoreIfPlaying && p.IsPlaying() && p.current == def {
		return nil
	}
	p.current = def
	p.frame = 0
	p.elapsed = 0
	p.plays = 0
	p.playing = true
	p.paused = false
	return nil
}

// Pause freezes the current frame. Pausing a paused player is a no-op.
func (p *Player) Pause() {
	p.paused = true
}

// Resume continues from the frozen frame. Resuming a running player is a no-op.
func (p *Player) Resume() {
	p.paused = false
}

// IsPaused reports whether the player itself is paused.
func (p *Player) IsPaused() bool {
	return p.paused
}

// IsPlaying reports whether an animation is running and not paused.
func (p *Player) IsPlaying() bool {
	return p.playing && !p.paused
}

// CurrentKey returns the key of the current animation, or "".
func (p *Player) CurrentKey() string {
	if p.current == nil {
		return ""
	}
	return p.current.Key
}

// Frame returns the spritesheet frame to draw, or -1 before anything played.
func (p *Player) Frame() int {
	if p.current == nil {
		return -1
	}
	return p.current.Start + p.frame
}

// Sheet returns the spritesheet of the current animation.
func (p *Player) Sheet() string {
	if p.current == nil {
		return ""
	}
	return p.current.Sheet
}

// Update advances the animation by dt seconds.
func (p *Player) Update(dt float64) {
	if p.current == nil || !p.playing || p.paused || p.lib.paused {
		return
	}

	step := 1.0 / p.current.FrameRate
	p.elapsed += dt
	for p.elapsed >= step {
		p.elapsed -= step
		p.frame++
		if p.frame < p.current.FrameCount() {
			continue
		}
		p.plays++
		if p.current.Repeat != RepeatForever && p.plays > p.current.Repeat {
			// Finished: hold the last frame
			p.frame = p.current.FrameCount() - 1
			p.playing = false
			p.elapsed = 0
			return
		}
		p.frame = 0
	}
}
