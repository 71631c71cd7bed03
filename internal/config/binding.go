package config

import (
	"strings"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
	"github.com/Slayer366/gptokeyb2/internal/keys"
)

// ApplyBinding parses one "button = value" line into p.
//
// Bindings can be in the form:
//
//	a = f1
//	a = f1 add_alt
//	a = "f1" alt repeat
//	l1 = hold_state menu
//	dpad = arrow_keys
//
// Tokens are handled left to right. A directive that cannot apply to btn
// returns a *DirectiveError and abandons the rest of the line; whatever the
// earlier tokens set stays. Unknown tokens are skipped.
func (s *Store) ApplyBinding(p *Profile, btn gamepad.Button, value string) error {
	if value == "" {
		return nil
	}

	lo, hi := btn.Range()
	each := func(fn func(b *Binding)) {
		for sbtn := lo; sbtn < hi; sbtn++ {
			fn(&p.Buttons[sbtn])
		}
	}
	invalid := func(token string, err error) error {
		return &DirectiveError{Directive: token, Button: btn.String(), Err: err}
	}
	composite := btn.IsComposite()

	tokens := NewTokenizer(value)
	for {
		token, ok := tokens.Next()
		if !ok {
			return nil
		}

		switch directive := strings.ToLower(token); {
		case directive == "mouse_slow":
			if composite {
				return invalid(token, ErrCompositeTarget)
			}
			p.Buttons[btn].Action = ActionMouseSlow

		case directive == "hold_state", directive == "push_state":
			if composite {
				return invalid(token, ErrCompositeTarget)
			}
			name, ok := tokens.Next()
			if !ok {
				return nil
			}
			action := ActionStatePush
			if directive == "hold_state" {
				action = ActionStateHold
			}
			s.setState(p, btn, action, name)

		case directive == "set_state":
			// the missing name is checked before the target here
			name, ok := tokens.Next()
			if !ok {
				return nil
			}
			if composite {
				return invalid(token, ErrCompositeTarget)
			}
			s.setState(p, btn, ActionStatePush, name)

		case directive == "pop_state":
			if composite {
				return invalid(token, ErrCompositeTarget)
			}
			p.Buttons[btn].Action = ActionStatePop

		case isModifier(directive, "alt", tokens.First()):
			each(func(b *Binding) { b.Modifier |= ModAlt })

		case isModifier(directive, "ctrl", tokens.First()):
			each(func(b *Binding) { b.Modifier |= ModCtrl })

		case isModifier(directive, "shift", tokens.First()):
			each(func(b *Binding) { b.Modifier |= ModShift })

		case directive == "repeat":
			each(func(b *Binding) { b.Repeat = true })

		default:
			if code, found := s.keys.Find(token); found {
				each(func(b *Binding) {
					b.Keycode = code
					b.Action = ActionNone
				})
				continue
			}

			switch directive {
			case "mouse_movement":
				if !composite {
					return invalid(token, ErrConcreteTarget)
				}
				each(func(b *Binding) {
					b.Keycode = 0
					b.Action = ActionMouseMove
				})

			case "arrow_keys":
				if !composite {
					return invalid(token, ErrConcreteTarget)
				}
				for i := 0; lo+gamepad.Button(i) < hi && i < len(keys.Arrows); i++ {
					b := &p.Buttons[lo+gamepad.Button(i)]
					b.Keycode = keys.Arrows[i]
					b.Action = ActionNone
				}

			default:
				s.debugf("unknown key %s", token)
			}
		}
	}
}

func (s *Store) setState(p *Profile, btn gamepad.Button, action Action, name string) {
	b := &p.Buttons[btn]
	b.Action = action
	b.Target = truncate(name, MaxNameLength)
	p.MapCheck = true
}

// isModifier matches "add_<mod>" anywhere and the bare "<mod>" anywhere but
// the first token, where it is read as a key name instead.
func isModifier(directive, mod string, first bool) bool {
	if directive == "add_"+mod {
		return true
	}
	return !first && directive == mod
}
