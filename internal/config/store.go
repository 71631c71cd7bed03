// Package config holds the controls profiles of gptokeyb2 and the parser that
// builds them from INI-style controls files.
//
// A Store owns every profile. The root profile, "controls", always exists;
// other profiles are named "controls:<name>" and are created the first time a
// section header or overlay refers to them. Each profile binds every concrete
// gamepad button to a key, a modifier set and an optional action.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
	"github.com/Slayer366/gptokeyb2/internal/keys"
)

const (
	// RootName is the name of the root profile.
	RootName = "controls"

	// MaxNameLength bounds profile names and state targets, in bytes.
	MaxNameLength = 63

	// DefaultMaxProfiles is the default profile capacity of a store.
	DefaultMaxProfiles = 256

	namePrefix = RootName + ":"
)

// KeyLookup resolves key names to keycodes and back.
type KeyLookup interface {
	Find(name string) (int, bool)
	Name(code int) string
}

// Store is the ordered collection of profiles. The root is always first and
// each new profile is linked directly after it.
//
// A Store is not safe for concurrent use.
type Store struct {
	root  *Profile
	arena []*Profile

	maxProfiles int
	keys        KeyLookup
	logger      *log.Logger
	debug       bool
	fatal       func(error)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeys sets the key table used to resolve key names.
func WithKeys(k KeyLookup) StoreOption {
	return func(s *Store) {
		s.keys = k
	}
}

// WithLogger sets the logger that receives directive errors.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// WithDebug enables [DEBUG] logging of ignored input.
func WithDebug(debug bool) StoreOption {
	return func(s *Store) {
		s.debug = debug
	}
}

// WithMaxProfiles bounds the number of profiles, root included.
func WithMaxProfiles(n int) StoreOption {
	return func(s *Store) {
		s.maxProfiles = n
	}
}

// WithFatalHandler replaces the handler called when the store is out of
// room. The default prints the error and exits with status 255.
func WithFatalHandler(fn func(error)) StoreOption {
	return func(s *Store) {
		s.fatal = fn
	}
}

func exitFatal(err error) {
	fmt.Fprintf(os.Stderr, "%v :(\n", err)
	os.Exit(255)
}

// NewStore creates a store holding only the root profile.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		maxProfiles: DefaultMaxProfiles,
		keys:        keys.Default(),
		logger:      log.Default(),
		fatal:       exitFatal,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.maxProfiles < 1 {
		s.maxProfiles = 1
	}

	s.root = &Profile{Name: RootName}
	s.arena = make([]*Profile, 1, min(s.maxProfiles, 16))
	s.arena[0] = s.root
	return s
}

// Root returns the root profile.
func (s *Store) Root() *Profile {
	return s.root
}

// Len returns the number of profiles, root included.
func (s *Store) Len() int {
	return len(s.arena)
}

// Profiles returns the profiles in store order.
func (s *Store) Profiles() []*Profile {
	out := make([]*Profile, 0, len(s.arena))
	for p := s.root; p != nil; p = p.next {
		out = append(out, p)
	}
	return out
}

// Keys returns the key table of the store.
func (s *Store) Keys() KeyLookup {
	return s.keys
}

// Close releases every profile. The store keeps only an empty root afterwards.
func (s *Store) Close() {
	for i, p := range s.arena {
		p.next = nil
		s.arena[i] = nil
	}
	s.root = &Profile{Name: RootName}
	s.arena = s.arena[:1]
	s.arena[0] = s.root
}

// NormalizeName returns the stored form of a profile name: "controls" stays
// as is, any other name gains the "controls:" prefix when missing.
func NormalizeName(name string) string {
	if strings.EqualFold(name, RootName) {
		return RootName
	}
	if !hasPrefixFold(name, namePrefix) {
		name = namePrefix + name
	}
	return truncate(name, MaxNameLength)
}

// Find returns the profile with the given name, ignoring case, or nil.
func (s *Store) Find(name string) *Profile {
	if strings.EqualFold(name, RootName) {
		return s.root
	}

	name = NormalizeName(name)
	for p := s.root; p != nil; p = p.next {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}

// Create returns the named profile, creating and linking it after the root
// when it does not exist yet. If the store is full the fatal handler runs and,
// should it return, Create returns nil without touching the store.
func (s *Store) Create(name string) *Profile {
	if p := s.Find(name); p != nil {
		return p
	}

	if len(s.arena) >= s.maxProfiles {
		s.fatal(fmt.Errorf("%w %q: store holds %d profiles", ErrProfileLimit, name, len(s.arena)))
		return nil
	}

	p := &Profile{Name: NormalizeName(name)}
	p.next = s.root.next
	s.root.next = p
	s.arena = append(s.arena, p)

	s.debugf("config_create: %s", p.Name)
	return p
}

// OverlayParent makes every button of p defer to the profile below it.
func (s *Store) OverlayParent(p *Profile) {
	for btn := range p.Buttons {
		b := &p.Buttons[btn]
		b.Keycode = 0
		b.Modifier = 0
		b.Action = ActionParent
	}
}

// OverlayFrom copies the bindings of the named profile into p. The repeat
// flags of p are kept.
func (s *Store) OverlayFrom(p *Profile, name string) error {
	other := s.Find(name)
	if other == nil {
		return &OverlayError{Profile: p.Name, Source: name, Err: ErrProfileNotFound}
	}
	if other == p {
		return &OverlayError{Profile: p.Name, Source: name, Err: ErrSelfOverlay}
	}

	s.debugf("overlay %s: ", other.Name)

	for btn := range p.Buttons {
		dst, src := &p.Buttons[btn], &other.Buttons[btn]
		dst.Keycode = src.Keycode
		dst.Modifier = src.Modifier
		dst.Action = src.Action

		if dst.Action.IsState() {
			dst.Target = src.Target
			p.MapCheck = true
		}
	}
	return nil
}

// CheckMaps verifies that every state action naming a profile can find it.
func (s *Store) CheckMaps() []error {
	var errs []error
	for p := s.root; p != nil; p = p.next {
		if !p.MapCheck {
			continue
		}
		for btn := range p.Buttons {
			b := &p.Buttons[btn]
			if !b.Action.NamesTarget() {
				continue
			}
			if s.Find(b.Target) == nil {
				errs = append(errs, &MapError{
					Profile: p.Name,
					Button:  gamepad.Button(btn).String(),
					Target:  b.Target,
					Err:     ErrProfileNotFound,
				})
			}
		}
	}
	return errs
}

func (s *Store) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func (s *Store) debugf(format string, args ...any) {
	if s.debug {
		s.logf("[DEBUG] "+format, args...)
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
