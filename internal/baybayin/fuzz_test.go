package baybayin

import (
	"strings"
	"testing"
)

func FuzzTransliterate(f *testing.F) {
	f.Add("kamusta")
	f.Add("mahal kita")
	f.Add("Vaca!")
	f.Add("ok")
	f.Add("ng")
	f.Add("")
	f.Add("   ")
	f.Add("123 !?")
	f.Add("ñ")
	f.Add("漢字")
	f.Add("ᜊᜌ᜔ᜊᜌᜒᜈ᜔")
	f.Add("\xff\xfe")
	f.Add("\x00")

	f.Fuzz(func(t *testing.T, s string) {
		out := Transliterate(s)

		// Output contains no transliterable letters, so a second pass is
		// the identity.
		if again := Transliterate(out); again != out {
			t.Errorf("not stable:\ninput:  %q\nfirst:  %q\nsecond: %q", s, out, again)
		}

		// e/i and o/u fold to the same class, so swapping them in the
		// input must not change the output.
		folded := strings.NewReplacer("e", "i", "E", "i", "o", "u", "O", "u").Replace(s)
		if got := Transliterate(folded); got != out {
			t.Errorf("vowel fold not lossy:\ninput:  %q\noutput: %q\nfolded: %q -> %q", s, out, folded, got)
		}
	})
}

func FuzzSegment(f *testing.F) {
	f.Add("bahay")
	f.Add("ngayon")
	f.Add("nnn")
	f.Add("")
	f.Add("dy")

	f.Fuzz(func(t *testing.T, word string) {
		syllables, err := Segment(word)
		if err != nil {
			return
		}
		// Each syllable consumes at least one letter.
		if len(syllables) > len(word) {
			t.Errorf("Segment(%q) emitted %d syllables for %d bytes", word, len(syllables), len(word))
		}
	})
}
