package baybayin

import "fmt"

// Vowel is a folded vowel class. Baybayin does not distinguish e from i or
// o from u, so both members of each pair collapse to one class.
type Vowel uint8

const (
	vowelNone Vowel = iota
	VowelA
	VowelIE // e and i
	VowelUO // o and u
)

// Consonant identifies a Baybayin consonant. The digraphs ng, ts, dy, and sy
// are single phonemic units and are matched as one consonant, never as two.
type Consonant uint8

const (
	consNone Consonant = iota
	ConsB
	ConsK
	ConsD
	ConsG
	ConsH
	ConsL
	ConsM
	ConsN
	ConsP
	ConsR
	ConsS
	ConsT
	ConsW
	ConsY
	ConsNG
	ConsTS
	ConsDY
	ConsSY
	consCount
)

// String returns the Latin spelling of the consonant, e.g. "ng".
func (c Consonant) String() string {
	if int(c) < len(consNames) && consNames[c] != "" {
		return consNames[c]
	}
	return fmt.Sprintf("Consonant(%d)", uint8(c))
}

var consNames = [consCount]string{
	ConsB: "b", ConsK: "k", ConsD: "d", ConsG: "g", ConsH: "h",
	ConsL: "l", ConsM: "m", ConsN: "n", ConsP: "p", ConsR: "r",
	ConsS: "s", ConsT: "t", ConsW: "w", ConsY: "y",
	ConsNG: "ng", ConsTS: "ts", ConsDY: "dy", ConsSY: "sy",
}

// SyllableKind discriminates the three syllable shapes the segmenter emits.
type SyllableKind uint8

const (
	// StandaloneVowel is a vowel with no onset, e.g. the "a" in "ako".
	StandaloneVowel SyllableKind = iota
	// ConsonantVowel is an onset plus nucleus, e.g. "ba" or "ngi".
	ConsonantVowel
	// BareConsonant is a coda or clustered consonant with no following
	// vowel; its glyph carries a virama.
	BareConsonant
)

// Syllable is one unit of the segmented word. Onset is set except for
// StandaloneVowel; Nucleus is set except for BareConsonant.
type Syllable struct {
	Kind    SyllableKind
	Onset   Consonant
	Nucleus Vowel
}

// Span is a maximal run of input that is either a word (letters of the
// Tagalog alphabet after substitution) or passthrough content. Surface is
// the text exactly as it appeared in the input; Letters is the normalized
// form and is empty for passthrough spans.
type Span struct {
	Surface string
	Letters string
	Word    bool
}

// Document is the normalizer output: the input partitioned into alternating
// word and passthrough spans, in original order.
type Document struct {
	Spans []Span
}

// Token is one unit of assembler input: either a mapped glyph run or a
// passthrough span carried verbatim.
type Token struct {
	Text   string
	Glyphs bool
}
