package config

import (
	"fmt"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
)

// StackMax is the deepest the state stack can grow, root included.
const StackMax = 16

// Stack is the stack of active profiles a dispatcher consults. The root
// profile sits at the bottom and is never popped.
type Stack struct {
	store    *Store
	profiles [StackMax]*Profile
	depth    int
}

// NewStack returns a stack holding only the root profile of store.
func NewStack(store *Store) *Stack {
	st := &Stack{store: store}
	st.Reset()
	return st
}

// Reset drops every profile above the root.
func (st *Stack) Reset() {
	for i := range st.profiles {
		st.profiles[i] = nil
	}
	st.profiles[0] = st.store.Root()
	st.depth = 0
}

// Depth returns the number of profiles above the root.
func (st *Stack) Depth() int {
	return st.depth
}

// Current returns the profile on top of the stack.
func (st *Stack) Current() *Profile {
	return st.profiles[st.depth]
}

// Push makes the named profile current.
func (st *Stack) Push(name string) error {
	p := st.store.Find(name)
	if p == nil {
		return fmt.Errorf("push_state %s: %w", name, ErrProfileNotFound)
	}
	if st.depth+1 >= StackMax {
		return fmt.Errorf("push_state %s: %w", name, ErrStackFull)
	}
	st.depth++
	st.profiles[st.depth] = p
	return nil
}

// Set replaces the current profile with the named one. On the root level it
// pushes instead, so the root stays at the bottom.
func (st *Stack) Set(name string) error {
	if st.depth == 0 {
		return st.Push(name)
	}
	p := st.store.Find(name)
	if p == nil {
		return fmt.Errorf("set_state %s: %w", name, ErrProfileNotFound)
	}
	st.profiles[st.depth] = p
	return nil
}

// Pop drops the current profile and returns the new current one.
func (st *Stack) Pop() *Profile {
	if st.depth > 0 {
		st.profiles[st.depth] = nil
		st.depth--
	}
	return st.Current()
}

// Resolve returns the effective binding of btn, following parent bindings
// down the stack. The second result is the profile the binding came from.
func (st *Stack) Resolve(btn gamepad.Button) (*Binding, *Profile) {
	for i := st.depth; i >= 0; i-- {
		p := st.profiles[i]
		b := p.Button(btn)
		if b.Action != ActionParent || i == 0 {
			return b, p
		}
	}
	return nil, nil
}
