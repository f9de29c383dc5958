package baybayin

import (
	"errors"
	"fmt"
)

// ErrMalformedWord reports a letter outside the normalized alphabet reaching
// the segmenter. Normalization only emits a–z, so this indicates a bug
// upstream; callers recover by passing the offending word through verbatim.
var ErrMalformedWord = errors.New("malformed word")

// digraphs are two-letter onsets matched as one consonant. Checked before
// single letters at every position: longest match wins.
var digraphs = map[string]Consonant{
	"ng": ConsNG,
	"ts": ConsTS,
	"dy": ConsDY,
	"sy": ConsSY,
}

var singleConsonants = map[byte]Consonant{
	'b': ConsB, 'k': ConsK, 'd': ConsD, 'g': ConsG, 'h': ConsH,
	'l': ConsL, 'm': ConsM, 'n': ConsN, 'p': ConsP, 'r': ConsR,
	's': ConsS, 't': ConsT, 'w': ConsW, 'y': ConsY,
}

// vowelFold collapses the five written vowels to the three Baybayin classes.
// Folding happens only after a letter is confirmed to be a nucleus; it plays
// no part in onset matching.
var vowelFold = map[byte]Vowel{
	'a': VowelA,
	'e': VowelIE, 'i': VowelIE,
	'o': VowelUO, 'u': VowelUO,
}

// Segment decomposes one normalized word into syllables using a single
// left-to-right maximal-munch scan. Every letter lands in exactly one
// syllable:
//
//   - a digraph or single-consonant onset followed by a vowel becomes a
//     ConsonantVowel syllable with the vowel folded to its class
//   - a consonant with no following vowel (cluster or word-final coda)
//     closes immediately as a BareConsonant
//   - a vowel with no onset becomes a StandaloneVowel
//
// "bahay" segments as ba, ha, y: two ConsonantVowel units and a bare y.
func Segment(word string) ([]Syllable, error) {
	syllables := make([]Syllable, 0, len(word)/2+1)

	i := 0
	for i < len(word) {
		onset := consNone
		if i+2 <= len(word) {
			if c, ok := digraphs[word[i:i+2]]; ok {
				onset = c
				i += 2
			}
		}
		if onset == consNone {
			if c, ok := singleConsonants[word[i]]; ok {
				onset = c
				i++
			}
		}

		if i < len(word) {
			if v, ok := vowelFold[word[i]]; ok {
				i++
				if onset == consNone {
					syllables = append(syllables, Syllable{Kind: StandaloneVowel, Nucleus: v})
				} else {
					syllables = append(syllables, Syllable{Kind: ConsonantVowel, Onset: onset, Nucleus: v})
				}
				continue
			}
		}

		if onset != consNone {
			syllables = append(syllables, Syllable{Kind: BareConsonant, Onset: onset})
			continue
		}

		// Neither consonant nor vowel: unreachable for normalizer output.
		return nil, fmt.Errorf("%w: byte %q at offset %d", ErrMalformedWord, word[i], i)
	}

	return syllables, nil
}
