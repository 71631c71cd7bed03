package config

import (
	"slices"
	"strings"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
)

// BindingView is the JSON form of one bound button. Key is the key name,
// Modifiers and Action use their dump spellings.
type BindingView struct {
	Button    string   `json:"button"`
	Key       string   `json:"key,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Action    string   `json:"action,omitempty"`
	Target    string   `json:"target,omitempty"`
	Repeat    bool     `json:"repeat,omitempty"`
}

// ProfileView is the JSON form of a profile. Unbound buttons are left out.
type ProfileView struct {
	Name     string        `json:"name"`
	MapCheck bool          `json:"mapCheck,omitempty"`
	Bindings []BindingView `json:"bindings"`
}

// StoreView lists every profile in store order.
type StoreView struct {
	Profiles []ProfileView `json:"profiles"`
}

// StoreDelta holds the profiles that were added or changed, and the names
// of those removed, between two views.
type StoreDelta struct {
	Changed []ProfileView `json:"changed,omitempty"`
	Removed []string      `json:"removed,omitempty"`
}

// IsEmpty reports whether the two views were the same.
func (d *StoreDelta) IsEmpty() bool {
	return len(d.Changed) == 0 && len(d.Removed) == 0
}

// Snapshot captures the store in store order. Only buttons that are bound to
// something appear in a profile's bindings.
func (s *Store) Snapshot() StoreView {
	view := StoreView{Profiles: make([]ProfileView, 0, len(s.arena))}
	for p := s.root; p != nil; p = p.next {
		pv := ProfileView{
			Name:     p.Name,
			MapCheck: p.MapCheck,
			Bindings: make([]BindingView, 0),
		}
		for btn := gamepad.Button(0); btn < gamepad.ButtonMax; btn++ {
			b := &p.Buttons[btn]
			if *b == (Binding{}) {
				continue
			}
			bv := BindingView{Button: btn.String(), Repeat: b.Repeat}
			if b.Keycode != 0 {
				bv.Key = s.keys.Name(b.Keycode)
			}
			if b.Modifier != 0 {
				bv.Modifiers = strings.Fields(b.Modifier.String())
			}
			if b.Action != ActionNone {
				bv.Action = b.Action.String()
			}
			if b.Action.NamesTarget() {
				bv.Target = b.Target
			}
			pv.Bindings = append(pv.Bindings, bv)
		}
		view.Profiles = append(view.Profiles, pv)
	}
	return view
}

// ComputeDelta lists the profiles that differ between two snapshots.
func ComputeDelta(old, cur StoreView) *StoreDelta {
	d := &StoreDelta{}

	prev := make(map[string]*ProfileView, len(old.Profiles))
	for i := range old.Profiles {
		prev[strings.ToLower(old.Profiles[i].Name)] = &old.Profiles[i]
	}

	for _, pv := range cur.Profiles {
		key := strings.ToLower(pv.Name)
		op, ok := prev[key]
		delete(prev, key)
		if ok && profileEqual(op, &pv) {
			continue
		}
		d.Changed = append(d.Changed, pv)
	}

	for _, op := range old.Profiles {
		if _, ok := prev[strings.ToLower(op.Name)]; ok {
			d.Removed = append(d.Removed, op.Name)
		}
	}

	return d
}

func profileEqual(a, b *ProfileView) bool {
	if a.Name != b.Name || a.MapCheck != b.MapCheck {
		return false
	}
	return slices.EqualFunc(a.Bindings, b.Bindings, func(x, y BindingView) bool {
		return x.Button == y.Button &&
			x.Key == y.Key &&
			slices.Equal(x.Modifiers, y.Modifiers) &&
			x.Action == y.Action &&
			x.Target == y.Target &&
			x.Repeat == y.Repeat
	})
}
