package config

import (
	"errors"
	"fmt"
)

// Errors reported while building profiles.
var (
	// ErrCompositeTarget indicates a directive that only applies to a single
	// button was bound to dpad, left_analog or right_analog.
	ErrCompositeTarget = errors.New("directive not allowed on a button group")

	// ErrConcreteTarget indicates a group-only directive was bound to a single button.
	ErrConcreteTarget = errors.New("directive requires a button group")

	// ErrProfileNotFound indicates a profile name did not resolve.
	ErrProfileNotFound = errors.New("unable to find config")

	// ErrSelfOverlay indicates a profile was overlaid with itself.
	ErrSelfOverlay = errors.New("unable to overlay to the same config")

	// ErrEmptyOverlay indicates an overlay key with no value.
	ErrEmptyOverlay = errors.New("overlay = (blank)")

	// ErrProfileLimit indicates the store has no room for another profile.
	ErrProfileLimit = errors.New("unable to allocate profile")

	// ErrStackFull indicates the state stack is at its maximum depth.
	ErrStackFull = errors.New("state stack full")
)

// DirectiveError describes a binding directive that could not be applied.
// The rest of the line it appeared on is abandoned.
type DirectiveError struct {
	// Directive is the token that failed, e.g. "mouse_slow".
	Directive string
	// Button is the configuration name of the target button.
	Button string
	// Err is the underlying reason.
	Err error
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	return fmt.Sprintf("unable to set %s to %s: %v", e.Directive, e.Button, e.Err)
}

// Unwrap returns the underlying error.
func (e *DirectiveError) Unwrap() error {
	return e.Err
}

// OverlayError describes a failed overlay of one profile onto another.
type OverlayError struct {
	// Profile is the profile being overlaid.
	Profile string
	// Source is the overlay value as written.
	Source string
	Err    error
}

// Error implements the error interface.
func (e *OverlayError) Error() string {
	return fmt.Sprintf("overlay %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *OverlayError) Unwrap() error {
	return e.Err
}

// MapError reports a state action whose target profile does not exist.
type MapError struct {
	Profile string
	Button  string
	Target  string
	Err     error
}

// Error implements the error interface.
func (e *MapError) Error() string {
	return fmt.Sprintf("%s: %s -> %s: %v", e.Profile, e.Button, e.Target, e.Err)
}

// Unwrap returns the underlying error.
func (e *MapError) Unwrap() error {
	return e.Err
}

// LoadError reports a controls file the INI reader could not process.
type LoadError struct {
	// Source is the file path, or the name given to LoadBytes.
	Source string
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("can't load '%s': %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}
