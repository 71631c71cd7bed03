package config

import (
	"bytes"
	"strings"

	"github.com/go-ini/ini"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// orderedSource rewrites controls data so that go-ini hands back every key in
// file order. go-ini folds a repeated key into its first occurrence, so a
// section is split into a new chunk, under the same header, before any key it
// already holds. Chunks keep their order with AllowNonUniqueSections.
//
// Values go-ini would read as quoted (a leading backtick or """) are rewritten
// into a form that tokenizes to the same tokens.
func orderedSource(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)

	var out bytes.Buffer
	out.Grow(len(data))

	header := "[" + ini.DefaultSection + "]"
	seen := make(map[string]bool)

	for _, line := range strings.SplitAfter(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "", trimmed[0] == ';', trimmed[0] == '#':

		case trimmed[0] == '[':
			header = trimmed
			clear(seen)

		default:
			eq := strings.IndexByte(line, '=')
			if eq < 0 {
				break
			}
			key := strings.ToLower(strings.TrimSpace(line[:eq]))
			if seen[key] {
				out.WriteString(header)
				out.WriteByte('\n')
				clear(seen)
			}
			seen[key] = true
			line = line[:eq+1] + quoteValue(line[eq+1:])
		}
		out.WriteString(line)
	}
	return out.Bytes()
}

// quoteValue protects the start of a raw value from go-ini's quote handling.
func quoteValue(value string) string {
	body := strings.TrimLeft(value, " \t")
	lead := value[:len(value)-len(body)]

	switch {
	case strings.HasPrefix(body, `"""`):
		// "" is an empty token, so the space does not change the tokens
		return lead + `"" "` + body[3:]

	case strings.HasPrefix(body, "`"):
		end := strings.IndexAny(body, " \t\r\n")
		if end < 0 {
			end = len(body)
		}
		run := body[:end]
		q := `"`
		if strings.Contains(run, q) {
			q = "'"
		}
		return lead + q + run + q + body[end:]
	}
	return value
}
