// Package effect describes what a game tick asks the engine to do.
// Core systems append commands; the scene applies them in order.
package effect

import "chosenoffset.com/tuxtown/internal/entity"

// Kind identifies a command.
type Kind int

const (
	SetVelocity Kind = iota // Entity, VX, VY
	PlayAnim                // Entity, Anim, FlipX
	PauseAnim               // Entity
	ResumeAnim              // Entity
	PauseMotion             // Entity's motion driver
	ResumeMotion            // Entity's motion driver
	PauseAllAnims
	ResumeAllAnims
	PausePhysics
	ResumePhysics
	ShowDialogue // Author, Text, Index
	HideDialogue
)

// String returns the command name for logs and test output.
func (k Kind) String() string {
	switch k {
	case SetVelocity:
		return "set_velocity"
	case PlayAnim:
		return "play_anim"
	case PauseAnim:
		return "pause_anim"
	case ResumeAnim:
		return "resume_anim"
	case PauseMotion:
		return "pause_motion"
	case ResumeMotion:
		return "resume_motion"
	case PauseAllAnims:
		return "pause_all_anims"
	case ResumeAllAnims:
		return "resume_all_anims"
	case PausePhysics:
		return "pause_physics"
	case ResumePhysics:
		return "resume_physics"
	case ShowDialogue:
		return "show_dialogue"
	case HideDialogue:
		return "hide_dialogue"
	default:
		return "unknown"
	}
}

// Command is a single request. Only the fields relevant to Kind are set.
type Command struct {
	Kind   Kind
	Entity entity.Handle

	VX, VY float64
	Anim   string
	FlipX  bool

	Dialogue string // Name of the dialogue entry
	Author   string
	Text     string
	Index    int // Message index within the dialogue
}

// List is an ordered batch of commands.
type List []Command

// Add appends a command.
func (l *List) Add(c Command) {
	*l = append(*l, c)
}

// Has reports whether a command of the given kind is present.
func (l List) Has(kind Kind) bool {
	return l.Find(kind) != nil
}

// Find returns the first command of the given kind, or nil.
func (l List) Find(kind Kind) *Command {
	for i := range l {
		if l[i].Kind == kind {
			return &l[i]
		}
	}
	return nil
}
