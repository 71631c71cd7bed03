package config

import (
	"errors"
	"strings"
	"testing"

	"github.com/bendahl/uinput"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
	"github.com/Slayer366/gptokeyb2/internal/keys"
)

func TestApplyBinding(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		want     Binding
		mapCheck bool
	}{
		{"key", "f1", Binding{Keycode: uinput.KeyF1}, false},
		{"quoted key", `"f1" add_alt`, Binding{Keycode: uinput.KeyF1, Modifier: ModAlt}, false},
		{"bare modifier after key", "f1 alt", Binding{Keycode: uinput.KeyF1, Modifier: ModAlt}, false},
		{"bare modifier first", "alt", Binding{}, false},
		{"all modifiers", "F1 add_shift ctrl ALT", Binding{Keycode: uinput.KeyF1, Modifier: ModShift | ModCtrl | ModAlt}, false},
		{"repeat", "enter repeat", Binding{Keycode: uinput.KeyEnter, Repeat: true}, false},
		{"mouse slow", "mouse_slow", Binding{Action: ActionMouseSlow}, false},
		{"hold state", "hold_state menu", Binding{Action: ActionStateHold, Target: "menu"}, true},
		{"hold state without name", "hold_state", Binding{}, false},
		{"push state", "push_state menu", Binding{Action: ActionStatePush, Target: "menu"}, true},
		{"set state", "set_state menu", Binding{Action: ActionStatePush, Target: "menu"}, true},
		{"set state without name", "f1 set_state", Binding{Keycode: uinput.KeyF1}, false},
		{"pop state", "pop_state", Binding{Action: ActionStatePop}, false},
		{"key resets action", "mouse_slow f2", Binding{Keycode: uinput.KeyF2}, false},
		{"unknown tokens skipped", "f1 bogus f2", Binding{Keycode: uinput.KeyF2}, false},
		{"earlier directives stay", "f1 mouse_slow push_state", Binding{Keycode: uinput.KeyF1, Action: ActionMouseSlow}, false},
		{"quoted space key", `" "`, Binding{Keycode: uinput.KeySpace}, false},
		{"empty", "", Binding{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestStore(t)
			p := s.Root()

			if err := s.ApplyBinding(p, gamepad.ButtonA, tt.value); err != nil {
				t.Fatalf("ApplyBinding(%q) error = %v", tt.value, err)
			}
			if got := p.Buttons[gamepad.ButtonA]; got != tt.want {
				t.Errorf("ApplyBinding(%q) = %+v, want %+v", tt.value, got, tt.want)
			}
			if p.MapCheck != tt.mapCheck {
				t.Errorf("MapCheck = %v, want %v", p.MapCheck, tt.mapCheck)
			}
			for _, btn := range gamepad.Buttons()[1:] {
				if p.Buttons[btn] != (Binding{}) {
					t.Errorf("%v was modified: %+v", btn, p.Buttons[btn])
				}
			}
		})
	}
}

func TestApplyBindingLongTarget(t *testing.T) {
	s, _ := newTestStore(t)
	name := strings.Repeat("m", 200)

	if err := s.ApplyBinding(s.Root(), gamepad.ButtonB, "push_state "+name); err != nil {
		t.Fatal(err)
	}
	if got := s.Root().Buttons[gamepad.ButtonB].Target; len(got) != MaxNameLength {
		t.Errorf("len(Target) = %d, want %d", len(got), MaxNameLength)
	}
}

func TestApplyBindingErrors(t *testing.T) {
	tests := []struct {
		button    gamepad.Button
		value     string
		directive string
		err       error
	}{
		{gamepad.ButtonDPad, "mouse_slow", "mouse_slow", ErrCompositeTarget},
		{gamepad.ButtonDPad, "hold_state menu", "hold_state", ErrCompositeTarget},
		{gamepad.ButtonLeftAnalog, "push_state", "push_state", ErrCompositeTarget},
		{gamepad.ButtonRightAnalog, "set_state menu", "set_state", ErrCompositeTarget},
		{gamepad.ButtonDPad, "POP_STATE", "POP_STATE", ErrCompositeTarget},
		{gamepad.ButtonA, "mouse_movement", "mouse_movement", ErrConcreteTarget},
		{gamepad.ButtonStart, "arrow_keys", "arrow_keys", ErrConcreteTarget},
	}

	for _, tt := range tests {
		t.Run(tt.button.String()+"="+tt.value, func(t *testing.T) {
			s, _ := newTestStore(t)
			p := s.Root()

			err := s.ApplyBinding(p, tt.button, tt.value)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ApplyBinding error = %v, want %v", err, tt.err)
			}
			var de *DirectiveError
			if !errors.As(err, &de) {
				t.Fatalf("error %T is not a *DirectiveError", err)
			}
			if de.Directive != tt.directive || de.Button != tt.button.String() {
				t.Errorf("DirectiveError = %+v", de)
			}
			if p.Buttons != (Profile{}).Buttons || p.MapCheck {
				t.Error("a rejected directive should not modify the profile")
			}
		})
	}
}

func TestApplyBindingSetStateMissingNameOnGroup(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Root()

	// set_state looks for its name before checking the target
	if err := s.ApplyBinding(p, gamepad.ButtonDPad, "w set_state"); err != nil {
		t.Fatalf("ApplyBinding error = %v, want nil", err)
	}
	if p.Buttons[gamepad.ButtonUp].Keycode != uinput.KeyW {
		t.Error("the key before set_state should be applied")
	}
}

func TestApplyBindingAbandonsRestOfLine(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Root()

	err := s.ApplyBinding(p, gamepad.ButtonA, "f1 arrow_keys add_alt")
	if !errors.Is(err, ErrConcreteTarget) {
		t.Fatalf("ApplyBinding error = %v, want ErrConcreteTarget", err)
	}
	got := p.Buttons[gamepad.ButtonA]
	if got.Keycode != uinput.KeyF1 {
		t.Error("tokens before the error should stay applied")
	}
	if got.Modifier != 0 {
		t.Error("tokens after the error should not be applied")
	}
}

func TestApplyBindingArrowKeys(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Root()

	if err := s.ApplyBinding(p, gamepad.ButtonDPad, "arrow_keys"); err != nil {
		t.Fatal(err)
	}

	want := map[gamepad.Button]int{
		gamepad.ButtonUp:    uinput.KeyUp,
		gamepad.ButtonDown:  uinput.KeyDown,
		gamepad.ButtonLeft:  uinput.KeyLeft,
		gamepad.ButtonRight: uinput.KeyRight,
	}
	for _, btn := range gamepad.Buttons() {
		b := p.Buttons[btn]
		if code, ok := want[btn]; ok {
			if b.Keycode != code || b.Action != ActionNone {
				t.Errorf("%v = %+v, want keycode %d", btn, b, code)
			}
			continue
		}
		if b != (Binding{}) {
			t.Errorf("%v was modified: %+v", btn, b)
		}
	}
	if keys.Arrows[0] != uinput.KeyUp {
		t.Error("arrow order should start with up")
	}
}

func TestApplyBindingGroups(t *testing.T) {
	tests := []struct {
		button gamepad.Button
		value  string
		want   Binding
	}{
		{gamepad.ButtonLeftAnalog, "w add_alt repeat", Binding{Keycode: uinput.KeyW, Modifier: ModAlt, Repeat: true}},
		{gamepad.ButtonRightAnalog, "mouse_movement", Binding{Action: ActionMouseMove}},
		{gamepad.ButtonDPad, "enter shift", Binding{Keycode: uinput.KeyEnter, Modifier: ModShift}},
	}

	for _, tt := range tests {
		t.Run(tt.button.String(), func(t *testing.T) {
			s, _ := newTestStore(t)
			p := s.Root()

			if err := s.ApplyBinding(p, tt.button, tt.value); err != nil {
				t.Fatal(err)
			}

			lo, hi := tt.button.Range()
			for _, btn := range gamepad.Buttons() {
				b := p.Buttons[btn]
				inside := btn >= lo && btn < hi
				if inside && b != tt.want {
					t.Errorf("%v = %+v, want %+v", btn, b, tt.want)
				}
				if !inside && b != (Binding{}) {
					t.Errorf("%v outside the group was modified: %+v", btn, b)
				}
			}
		})
	}
}

func TestApplyBindingMouseMovementClearsKey(t *testing.T) {
	s, _ := newTestStore(t)
	p := s.Root()

	if err := s.ApplyBinding(p, gamepad.ButtonLeftAnalog, "w"); err != nil {
		t.Fatal(err)
	}
	if err := s.ApplyBinding(p, gamepad.ButtonLeftAnalog, "mouse_movement"); err != nil {
		t.Fatal(err)
	}
	for btn := gamepad.ButtonLeftAnalogUp; btn <= gamepad.ButtonLeftAnalogRight; btn++ {
		if b := p.Buttons[btn]; b.Keycode != 0 || b.Action != ActionMouseMove {
			t.Errorf("%v = %+v, want mouse_move", btn, b)
		}
	}
}

func TestApplyBindingUnknownKeyLogged(t *testing.T) {
	s, buf := newTestStore(t, WithDebug(true))

	if err := s.ApplyBinding(s.Root(), gamepad.ButtonA, "bogus"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[DEBUG] unknown key bogus") {
		t.Errorf("log = %q, want unknown key message", buf.String())
	}
}
