// Package gamepad names the controller buttons a controls profile can bind.
package gamepad

import "strings"

// Button identifies a controller button. Values below ButtonMax are concrete
// buttons with a binding slot of their own; the values after ButtonMax are
// composites standing for a whole directional group.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY

	ButtonL1
	ButtonL2
	ButtonL3

	ButtonR1
	ButtonR2
	ButtonR3

	ButtonStart
	ButtonBack
	ButtonGuide

	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight

	ButtonLeftAnalogUp
	ButtonLeftAnalogDown
	ButtonLeftAnalogLeft
	ButtonLeftAnalogRight

	ButtonRightAnalogUp
	ButtonRightAnalogDown
	ButtonRightAnalogLeft
	ButtonRightAnalogRight

	// ButtonMax is the number of concrete buttons.
	ButtonMax

	ButtonDPad
	ButtonLeftAnalog
	ButtonRightAnalog
)

var buttonNames = [...]string{
	ButtonA: "a",
	ButtonB: "b",
	ButtonX: "x",
	ButtonY: "y",

	ButtonL1: "l1",
	ButtonL2: "l2",
	ButtonL3: "l3",

	ButtonR1: "r1",
	ButtonR2: "r2",
	ButtonR3: "r3",

	ButtonStart: "start",
	ButtonBack:  "back",
	ButtonGuide: "guide",

	ButtonUp:    "up",
	ButtonDown:  "down",
	ButtonLeft:  "left",
	ButtonRight: "right",

	ButtonLeftAnalogUp:    "left_analog_up",
	ButtonLeftAnalogDown:  "left_analog_down",
	ButtonLeftAnalogLeft:  "left_analog_left",
	ButtonLeftAnalogRight: "left_analog_right",

	ButtonRightAnalogUp:    "right_analog_up",
	ButtonRightAnalogDown:  "right_analog_down",
	ButtonRightAnalogLeft:  "right_analog_left",
	ButtonRightAnalogRight: "right_analog_right",

	ButtonMax: "(max)",

	ButtonDPad:        "dpad",
	ButtonLeftAnalog:  "left_analog",
	ButtonRightAnalog: "right_analog",
}

// String returns the configuration name of the button.
func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return "(invalid)"
	}
	return buttonNames[b]
}

// IsComposite reports whether b stands for a directional group.
func (b Button) IsComposite() bool {
	return b > ButtonMax && int(b) < len(buttonNames)
}

// Range returns the half-open range [min, max) of concrete buttons covered by
// a composite. For a concrete button the range is just the button itself.
func (b Button) Range() (Button, Button) {
	switch b {
	case ButtonDPad:
		return ButtonUp, ButtonRight + 1
	case ButtonLeftAnalog:
		return ButtonLeftAnalogUp, ButtonLeftAnalogRight + 1
	case ButtonRightAnalog:
		return ButtonRightAnalogUp, ButtonRightAnalogRight + 1
	}
	return b, b + 1
}

// Alternative spellings accepted in controls files. Mirrors the names other
// controller tools use (xbox style shoulders, select/home).
var buttonAliases = map[string]Button{
	"select": ButtonBack,
	"home":   ButtonGuide,
	"hotkey": ButtonGuide,

	"lb": ButtonL1,
	"lt": ButtonL2,
	"rb": ButtonR1,
	"rt": ButtonR2,

	"dpad_up":    ButtonUp,
	"dpad_down":  ButtonDown,
	"dpad_left":  ButtonLeft,
	"dpad_right": ButtonRight,

	"left_up":    ButtonLeftAnalogUp,
	"left_down":  ButtonLeftAnalogDown,
	"left_left":  ButtonLeftAnalogLeft,
	"left_right": ButtonLeftAnalogRight,

	"right_up":    ButtonRightAnalogUp,
	"right_down":  ButtonRightAnalogDown,
	"right_left":  ButtonRightAnalogLeft,
	"right_right": ButtonRightAnalogRight,
}

var buttonLookup = func() map[string]Button {
	m := make(map[string]Button, len(buttonNames)+len(buttonAliases))
	for b, name := range buttonNames {
		if Button(b) == ButtonMax {
			continue
		}
		m[name] = Button(b)
	}
	for name, b := range buttonAliases {
		m[name] = b
	}
	return m
}()

// FindButton resolves a button name, ignoring case.
func FindButton(name string) (Button, bool) {
	b, ok := buttonLookup[strings.ToLower(name)]
	return b, ok
}

// Buttons returns the concrete buttons in binding order.
func Buttons() []Button {
	out := make([]Button, 0, ButtonMax)
	for b := Button(0); b < ButtonMax; b++ {
		out = append(out, b)
	}
	return out
}
