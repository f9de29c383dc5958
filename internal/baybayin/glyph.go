package baybayin

// Baybayin block, U+1700–U+1714.
const (
	kudlitIE = 'ᜒ' // vowel sign i
	kudlitUO = 'ᜓ' // vowel sign u
	virama   = '᜔' // pamudpod, cancels the inherent vowel
)

var vowelGlyphs = [...]rune{
	VowelA:  'ᜀ',
	VowelIE: 'ᜁ',
	VowelUO: 'ᜂ',
}

// baseGlyphs maps each consonant to its base glyph (inherent 'a' vowel).
// r and l share U+170D, following common Baybayin practice for the Tagalog
// r/l merger. The ts, dy, and sy digraphs have no dedicated codepoints in
// the Unicode block and collapse to the glyph of their leading consonant;
// ng has its own glyph at U+1705.
var baseGlyphs = [consCount]rune{
	ConsK:  'ᜃ',
	ConsG:  'ᜄ',
	ConsNG: 'ᜅ',
	ConsT:  'ᜆ',
	ConsD:  'ᜇ',
	ConsN:  'ᜈ',
	ConsP:  'ᜉ',
	ConsB:  'ᜊ',
	ConsM:  'ᜋ',
	ConsY:  'ᜌ',
	ConsR:  'ᜍ',
	ConsL:  'ᜍ',
	ConsW:  'ᜏ',
	ConsS:  'ᜐ',
	ConsH:  'ᜑ',
	ConsTS: 'ᜆ',
	ConsDY: 'ᜇ',
	ConsSY: 'ᜐ',
}

// Glyphs maps one syllable to its Baybayin codepoints: one or two runes,
// base plus optional kudlit, or base plus virama. Total over every syllable
// the segmenter can emit.
func Glyphs(s Syllable) string {
	switch s.Kind {
	case StandaloneVowel:
		return string(vowelGlyphs[s.Nucleus])
	case ConsonantVowel:
		base := baseGlyphs[s.Onset]
		switch s.Nucleus {
		case VowelIE:
			return string([]rune{base, kudlitIE})
		case VowelUO:
			return string([]rune{base, kudlitUO})
		default:
			// Inherent 'a': the base glyph alone.
			return string(base)
		}
	default:
		return string([]rune{baseGlyphs[s.Onset], virama})
	}
}
