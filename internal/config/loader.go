package config

import (
	"errors"
	"os"
	"strings"

	"github.com/go-ini/ini"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
)

type parseState int

const (
	// stateGPTK handles keys outside any section the way older gptokeyb
	// files expect: buttons bind to the root profile, anything else is a
	// config setting.
	stateGPTK parseState = iota
	stateConfig
	stateControl
	stateOther
)

func (s parseState) String() string {
	switch s {
	case stateGPTK:
		return "GPTK"
	case stateConfig:
		return "CONFIG"
	case stateControl:
		return "CONTROLS"
	default:
		return "OTHER"
	}
}

var loadOptions = ini.LoadOptions{
	KeyValueDelimiters: "=",
	// '#' and ';' are valid key names in a binding value
	IgnoreInlineComment: true,
	// quotes are handled by the binding tokenizer
	PreserveSurroundedQuote: true,
	// "\" is a valid key name
	IgnoreContinuation: true,
	// orderedSource splits sections so repeated keys keep their place
	AllowNonUniqueSections: true,
}

// Loader reads controls files into a Store.
type Loader struct {
	store *Store
	sink  func(name, value string)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithConfigSink sets the function receiving settings from [config] sections
// and unrecognized top-level keys.
func WithConfigSink(fn func(name, value string)) LoaderOption {
	return func(l *Loader) {
		l.sink = fn
	}
}

// NewLoader creates a loader that writes into store.
func NewLoader(store *Store, opts ...LoaderOption) *Loader {
	l := &Loader{
		store: store,
		sink:  func(string, string) {},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads the controls file at path. With configOnly set, keys outside
// any section are treated as settings instead of root bindings.
//
// Bindings already applied stay in the store when reading fails part way.
func (l *Loader) LoadFile(path string, configOnly bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Source: path, Err: err}
	}
	return l.load(path, data, configOnly)
}

// LoadBytes reads controls data; name identifies it in errors.
func (l *Loader) LoadBytes(name string, data []byte, configOnly bool) error {
	return l.load(name, data, configOnly)
}

func (l *Loader) load(name string, data []byte, configOnly bool) error {
	f, err := ini.LoadSources(loadOptions, orderedSource(data))
	if err != nil {
		return &LoadError{Source: name, Err: err}
	}

	p := &parser{
		store:   l.store,
		sink:    l.sink,
		state:   stateGPTK,
		current: l.store.Root(),
	}
	if configOnly {
		p.state = stateConfig
	}

	for _, sec := range f.Sections() {
		section := sec.Name()
		if section == ini.DefaultSection {
			section = ""
		}
		for _, k := range sec.Keys() {
			p.handle(section, k.Name(), k.Value())
		}
	}
	return nil
}

// parser routes (section, key, value) triples to the store.
type parser struct {
	store       *Store
	sink        func(name, value string)
	state       parseState
	lastSection string
	current     *Profile
}

// handle processes one triple.
func (p *parser) handle(section, name, value string) {
	s := p.store

	if section != p.lastSection {
		p.lastSection = section
		switch {
		case strings.EqualFold(section, "config"):
			p.state = stateConfig
		case strings.EqualFold(section, RootName):
			p.state = stateControl
			p.current = s.Root()
		case hasPrefixFold(section, namePrefix):
			p.state = stateControl
			p.current = s.Create(section)
		default:
			p.state = stateOther
		}
		s.debugf("%s: %s", section, p.state)
	}

	switch p.state {
	case stateGPTK, stateControl:
		if p.current == nil {
			s.debugf("?: %s: %s", name, value)
			return
		}
		if btn, ok := gamepad.FindButton(name); ok {
			if err := s.ApplyBinding(p.current, btn, value); err != nil {
				s.logf("error: %v", err)
			}
			s.debugf("%s: %s = %s (%d)", p.current.Name, name, value, btn)
			return
		}
		if strings.EqualFold(name, "overlay") {
			p.overlay(value)
			return
		}
		if p.state == stateGPTK {
			p.sink(name, value)
			s.debugf("G: %s: %s", name, value)
		} else {
			s.debugf("X: %s: %s", name, value)
		}

	case stateConfig:
		p.sink(name, value)
		s.debugf("C: %s: %s", name, value)

	default:
		s.debugf("?: %s: %s", name, value)
	}
}

func (p *parser) overlay(value string) {
	s := p.store
	switch {
	case strings.EqualFold(value, "parent"):
		s.debugf("overlay = parent")
		s.OverlayParent(p.current)
	case strings.EqualFold(value, "clear"):
		s.debugf("overlay = clear")
	case value != "":
		s.debugf("overlay = %s", value)
		if err := s.OverlayFrom(p.current, value); err != nil {
			s.logf("%v", err)
		}
	default:
		s.logf("%v", ErrEmptyOverlay)
	}
}

// IsLoadError reports whether err came from reading a controls file.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
