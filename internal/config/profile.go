package config

import (
	"strings"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
)

// Modifier is a set of keyboard modifiers held while a bound key is sent.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModShift
	ModCtrl
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the dump spelling, e.g. "mod_alt mod_ctrl".
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModAlt) {
		parts = append(parts, "mod_alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "mod_shift")
	}
	if m.Has(ModCtrl) {
		parts = append(parts, "mod_ctrl")
	}
	return strings.Join(parts, " ")
}

// Action is what a button does besides, or instead of, sending its key.
type Action uint8

const (
	ActionNone Action = iota
	// ActionParent defers the button to the profile below on the state stack.
	ActionParent
	ActionMouseSlow
	ActionMouseMove
	ActionStateHold
	ActionStatePush
	ActionStateSet
	ActionStatePop
)

var actionNames = [...]string{
	ActionNone:      "(none)",
	ActionParent:    "parent",
	ActionMouseSlow: "mouse_slow",
	ActionMouseMove: "mouse_move",
	ActionStateHold: "hold_state",
	ActionStatePush: "state_push",
	ActionStateSet:  "state_set",
	ActionStatePop:  "state_pop",
}

func (a Action) String() string {
	if int(a) >= len(actionNames) {
		return "(invalid)"
	}
	return actionNames[a]
}

// IsState reports whether a switches profiles rather than sending a key.
func (a Action) IsState() bool {
	return a >= ActionStateHold
}

// NamesTarget reports whether a carries a target profile name.
func (a Action) NamesTarget() bool {
	return a == ActionStateHold || a == ActionStatePush || a == ActionStateSet
}

// Binding is the mapping of one concrete button within a profile.
type Binding struct {
	// Keycode is the linux keycode sent; 0 means unbound.
	Keycode int

	Modifier Modifier

	Action Action

	// Target names the profile a state action switches to.
	Target string

	// Repeat makes the key auto-repeat while held.
	Repeat bool
}

// Profile is one named controls layout: a binding for every concrete button.
type Profile struct {
	// Name is "controls" for the root profile, "controls:<name>" otherwise.
	Name string

	Buttons [gamepad.ButtonMax]Binding

	// MapCheck is set once any state action naming a target has been
	// written, so the targets need resolving before use.
	MapCheck bool

	next *Profile
}

// Button returns the binding of a concrete button.
func (p *Profile) Button(b gamepad.Button) *Binding {
	return &p.Buttons[b]
}
