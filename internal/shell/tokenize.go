package shell

import "unicode"

// Tokenize splits a command line into arguments. Whitespace separates
// arguments outside quotes; a ' or " opens a span closed only by the same
// character, inside which everything is literal. An unterminated span runs
// to the end of input. There are no escapes.
func Tokenize(raw string) []string {
	out := []string{}
	var cur []rune
	var quote rune
	inQuote := false

	for _, c := range raw {
		if !inQuote && unicode.IsSpace(c) {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = cur[:0]
			}
			continue
		}
		if c == '"' || c == '\'' {
			if !inQuote {
				inQuote, quote = true, c
				continue
			}
			if c == quote {
				inQuote = false
				continue
			}
		}
		cur = append(cur, c)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}
