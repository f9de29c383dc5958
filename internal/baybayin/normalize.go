package baybayin

import (
	"strings"
	"unicode"
)

// substitutions rewrites letters with no Baybayin value to their Tagalog
// equivalents. Applied once, left to right, on whole letters; the output
// letters are themselves eligible for digraph matching during segmentation
// (j→dy feeds the dy digraph, x→ks yields two independent consonants).
var substitutions = map[rune]string{
	'c': "k",
	'f': "p",
	'j': "dy",
	'q': "k",
	'v': "b",
	'x': "ks",
	'z': "s",
	'ñ': "ny",
}

// isWordLetter reports whether the lowercased rune belongs to the alphabet
// the engine can normalize. Letters from other scripts are passthrough.
func isWordLetter(r rune) bool {
	if r >= 'a' && r <= 'z' {
		return true
	}
	return r == 'ñ'
}

// Normalize lowercases the input, substitutes foreign letters, and partitions
// the text into word and passthrough spans. Passthrough spans keep their
// exact original content; word spans carry both the original surface and the
// normalized letters. Pure and total: any input, including the empty string,
// yields a valid document.
func Normalize(text string) Document {
	var doc Document
	if text == "" {
		return doc
	}

	var surface, letters strings.Builder
	flushWord := func() {
		if surface.Len() == 0 {
			return
		}
		doc.Spans = append(doc.Spans, Span{
			Surface: surface.String(),
			Letters: letters.String(),
			Word:    true,
		})
		surface.Reset()
		letters.Reset()
	}

	passStart := -1
	flushPass := func(end int) {
		if passStart < 0 {
			return
		}
		doc.Spans = append(doc.Spans, Span{Surface: text[passStart:end]})
		passStart = -1
	}

	for i, r := range text {
		low := unicode.ToLower(r)
		if isWordLetter(low) {
			flushPass(i)
			surface.WriteRune(r)
			if sub, ok := substitutions[low]; ok {
				letters.WriteString(sub)
			} else {
				letters.WriteRune(low)
			}
			continue
		}
		flushWord()
		if passStart < 0 {
			passStart = i
		}
	}
	flushWord()
	flushPass(len(text))

	return doc
}
