package baybayin

import "strings"

// Assemble concatenates glyph runs and passthrough spans in document order.
// Passthrough content appears byte-for-byte at its original relative
// position, so inter-word spacing and punctuation placement survive the
// round trip. Adjacent glyph runs from different words cannot occur: word
// spans are maximal letter runs, so a passthrough span always sits between
// them.
func Assemble(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
