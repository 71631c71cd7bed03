package config

// MaxValueLength bounds the part of a binding value that is tokenized.
const MaxValueLength = 1024

// Tokenizer splits a binding value into tokens. Tokens are separated by runs
// of spaces and tabs; a token may be wrapped in single or double quotes to
// keep whitespace, and the quoted text is taken verbatim. A quote left open
// runs to the end of the value. Empty tokens are dropped.
//
// A Tokenizer is read once, front to back.
type Tokenizer struct {
	value string
	pos   int
	count int
}

// NewTokenizer returns a tokenizer over value, truncated to MaxValueLength.
func NewTokenizer(value string) *Tokenizer {
	if len(value) > MaxValueLength {
		value = value[:MaxValueLength]
	}
	return &Tokenizer{value: value}
}

// Next returns the next token, or false when the value is exhausted.
func (t *Tokenizer) Next() (string, bool) {
	for t.pos < len(t.value) {
		c := t.value[t.pos]
		switch {
		case c == ' ' || c == '\t':
			t.pos++

		case c == '"' || c == '\'':
			start := t.pos + 1
			end := start
			for end < len(t.value) && t.value[end] != c {
				end++
			}
			// skip the closing quote, if any
			t.pos = end + 1
			if end > start {
				t.count++
				return t.value[start:end], true
			}

		default:
			start := t.pos
			for t.pos < len(t.value) && t.value[t.pos] != ' ' && t.value[t.pos] != '\t' {
				t.pos++
			}
			t.count++
			return t.value[start:t.pos], true
		}
	}
	return "", false
}

// First reports whether the last token returned by Next was the first one.
func (t *Tokenizer) First() bool {
	return t.count == 1
}

// Tokenize returns every token of value.
func Tokenize(value string) []string {
	var tokens []string
	t := NewTokenizer(value)
	for {
		tok, ok := t.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
