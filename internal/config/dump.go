package config

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Slayer366/gptokeyb2/internal/gamepad"
)

const dumpBanner = "-------------------------------------------"

// Dump writes every profile in store order in a human readable form.
func (s *Store) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for p := s.root; p != nil; p = p.next {
		fmt.Fprintln(bw, dumpBanner)
		fmt.Fprintf(bw, "- %s\n", p.Name)
		fmt.Fprintln(bw)

		for btn := gamepad.Button(0); btn < gamepad.ButtonMax; btn++ {
			fmt.Fprintf(bw, "%s =%s\n", btn, s.describe(&p.Buttons[btn]))
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, dumpBanner)

	return bw.Flush()
}

// DumpString returns the output of Dump.
func (s *Store) DumpString() string {
	var sb strings.Builder
	_ = s.Dump(&sb)
	return sb.String()
}

func (s *Store) describe(b *Binding) string {
	var sb strings.Builder
	if b.Keycode != 0 {
		fmt.Fprintf(&sb, " \"%s\"", s.keys.Name(b.Keycode))
		if b.Modifier != 0 {
			sb.WriteString(" ")
			sb.WriteString(b.Modifier.String())
		}
	}
	if b.Action != ActionNone {
		sb.WriteString(" ")
		sb.WriteString(b.Action.String())
		if b.Action.NamesTarget() {
			sb.WriteString(" ")
			sb.WriteString(b.Target)
		}
	}
	return sb.String()
}
