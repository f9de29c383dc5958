// Package baybayin transliterates Latin-script Tagalog text into Baybayin
// script (Unicode U+1700–U+1714).
//
// Baybayin is an abugida: each base glyph encodes a consonant with an
// inherent 'a' vowel. A kudlit diacritic above or below the glyph shifts the
// vowel to i/e or o/u, and the pamudpod (virama) cancels the vowel entirely,
// leaving a bare consonant.
//
// The conversion runs as a four-stage pipeline: normalization (lowercasing
// plus foreign-letter substitution), syllable segmentation (a maximal-munch
// scan over the normalized word), glyph mapping (syllable to codepoints), and
// assembly (glyph runs interleaved with untouched punctuation, digits, and
// whitespace). Text outside the Tagalog alphabet passes through unchanged;
// no input causes an error from Transliterate.
//
// All functions are pure and safe for concurrent use by multiple goroutines;
// the lookup tables are immutable package-level values.
package baybayin

import "strings"

// Result carries the transliterated output together with the intermediate
// normalized Latin text, for callers that display both side by side.
type Result struct {
	Latin    string
	Baybayin string
}

// Transliterate converts Latin-script Tagalog text to Baybayin.
// Whitespace, punctuation, digits, and letters outside the Tagalog alphabet
// are preserved verbatim at their original positions.
func Transliterate(input string) string {
	return TransliterateDetail(input).Baybayin
}

// TransliterateDetail converts text like Transliterate and additionally
// returns the normalized Latin intermediate (lowercased, with foreign
// letters rewritten, non-letter spans untouched).
func TransliterateDetail(input string) Result {
	if input == "" {
		return Result{}
	}

	doc := Normalize(input)

	var latin strings.Builder
	latin.Grow(len(input))
	tokens := make([]Token, 0, len(doc.Spans))

	for _, sp := range doc.Spans {
		if !sp.Word {
			latin.WriteString(sp.Surface)
			tokens = append(tokens, Token{Text: sp.Surface})
			continue
		}
		latin.WriteString(sp.Letters)

		syllables, err := Segment(sp.Letters)
		if err != nil {
			// Normalization should never emit an unsegmentable word; if it
			// does, carry the word through rather than failing the document.
			tokens = append(tokens, Token{Text: sp.Surface})
			continue
		}
		var run strings.Builder
		for _, s := range syllables {
			run.WriteString(Glyphs(s))
		}
		tokens = append(tokens, Token{Text: run.String(), Glyphs: true})
	}

	return Result{Latin: latin.String(), Baybayin: Assemble(tokens)}
}
