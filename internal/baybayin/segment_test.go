package baybayin

import (
	"errors"
	"reflect"
	"testing"
)

func cv(c Consonant, v Vowel) Syllable { return Syllable{Kind: ConsonantVowel, Onset: c, Nucleus: v} }
func sv(v Vowel) Syllable              { return Syllable{Kind: StandaloneVowel, Nucleus: v} }
func bare(c Consonant) Syllable        { return Syllable{Kind: BareConsonant, Onset: c} }

func TestSegment(t *testing.T) {
	tests := []struct {
		word string
		want []Syllable
	}{
		{"bahay", []Syllable{cv(ConsB, VowelA), cv(ConsH, VowelA), bare(ConsY)}},
		{"ako", []Syllable{sv(VowelA), cv(ConsK, VowelUO)}},
		{"ok", []Syllable{sv(VowelUO), bare(ConsK)}},
		{"aaa", []Syllable{sv(VowelA), sv(VowelA), sv(VowelA)}},

		// Consonant clusters close as bare consonants.
		{"maganda", []Syllable{cv(ConsM, VowelA), cv(ConsG, VowelA), bare(ConsN), cv(ConsD, VowelA)}},
		{"ekstra", []Syllable{sv(VowelIE), bare(ConsK), bare(ConsS), bare(ConsT), cv(ConsR, VowelA)}},

		// Digraph beats single consonant at the same position.
		{"nga", []Syllable{cv(ConsNG, VowelA)}},
		{"ngingi", []Syllable{cv(ConsNG, VowelIE), cv(ConsNG, VowelIE)}},
		{"dya", []Syllable{cv(ConsDY, VowelA)}},
		{"tso", []Syllable{cv(ConsTS, VowelUO)}},
		{"sye", []Syllable{cv(ConsSY, VowelIE)}},

		// Digraph with no following vowel is a bare digraph.
		{"ng", []Syllable{bare(ConsNG)}},
		{"ang", []Syllable{sv(VowelA), bare(ConsNG)}},

		// All-consonant input: everything cancelled.
		{"nnn", []Syllable{bare(ConsN), bare(ConsN), bare(ConsN)}},

		{"", nil},
	}
	for _, tt := range tests {
		got, err := Segment(tt.word)
		if err != nil {
			t.Errorf("Segment(%q) error: %v", tt.word, err)
			continue
		}
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Segment(%q) = %+v, want %+v", tt.word, got, tt.want)
		}
	}
}

func TestSegmentVowelFold(t *testing.T) {
	for _, pair := range [][2]string{{"be", "bi"}, {"bo", "bu"}, {"e", "i"}, {"o", "u"}} {
		a, err := Segment(pair[0])
		if err != nil {
			t.Fatalf("Segment(%q): %v", pair[0], err)
		}
		b, err := Segment(pair[1])
		if err != nil {
			t.Fatalf("Segment(%q): %v", pair[1], err)
		}
		if !reflect.DeepEqual(a, b) {
			t.Errorf("Segment(%q) = %+v, want same as Segment(%q) = %+v", pair[0], a, pair[1], b)
		}
	}
}

func TestSegmentMalformed(t *testing.T) {
	// Letters the normalizer can never emit must surface ErrMalformedWord,
	// not panic or loop.
	for _, word := range []string{"ba1", "c", "ña", "b!a"} {
		_, err := Segment(word)
		if !errors.Is(err, ErrMalformedWord) {
			t.Errorf("Segment(%q) error = %v, want ErrMalformedWord", word, err)
		}
	}
}

func TestSegmentConsumesEveryLetter(t *testing.T) {
	// Reassembling the syllable spellings must reproduce the word: no
	// leftover letters, no overlap.
	for _, word := range []string{"bahay", "maganda", "ngayon", "kamusta", "dyaryo", "tsinelas"} {
		syllables, err := Segment(word)
		if err != nil {
			t.Fatalf("Segment(%q): %v", word, err)
		}
		var rebuilt string
		for _, s := range syllables {
			switch s.Kind {
			case StandaloneVowel:
				rebuilt += spellVowel(word, len(rebuilt))
			case ConsonantVowel:
				rebuilt += s.Onset.String() + spellVowel(word, len(rebuilt)+len(s.Onset.String()))
			case BareConsonant:
				rebuilt += s.Onset.String()
			}
		}
		if rebuilt != word {
			t.Errorf("Segment(%q) rebuilt as %q", word, rebuilt)
		}
	}
}

// spellVowel returns the original vowel letter at the given offset, since a
// folded Vowel class no longer remembers which letter it came from.
func spellVowel(word string, i int) string {
	if i < len(word) {
		return word[i : i+1]
	}
	return ""
}
