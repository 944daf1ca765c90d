package arabic

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// arabicMarks covers the short-vowel and tanwin marks, shadda, sukun and the
// tatweel elongation character. Fixed by contract, not configurable.
var arabicMarks = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0640, Hi: 0x0640, Stride: 1}, // tatweel
		{Lo: 0x064B, Hi: 0x0652, Stride: 1}, // fathatan..sukun
	},
}

var stripMarks = runes.Remove(runes.In(arabicMarks))

// directionMarks strips the invisible formatting characters that copy-pasted
// Arabic text tends to carry.
var directionMarks = strings.NewReplacer(
	"‏", "", // right-to-left mark
	"‎", "", // left-to-right mark
	"\uFEFF", "", // byte order mark
)

// letterFolds maps the letter variants that are typed interchangeably:
// hamza-bearing alef forms to plain alef, alef maksura to ya, ta marbuta
// to ha.
var letterFolds = strings.NewReplacer(
	"آ", "ا",
	"أ", "ا",
	"إ", "ا",
	"ى", "ي",
	"ة", "ه",
)

var (
	// everything that is neither a word character, whitespace, nor inside
	// the Arabic Unicode block becomes a space
	nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s\x{0600}-\x{06FF}]`)
	spaces  = regexp.MustCompile(`\s+`)
)

// Normalize maps text to its canonical comparison form: diacritic-free,
// variant-folded, punctuation-free, whitespace-collapsed and upper-cased.
// Total over all inputs and idempotent.
func Normalize(s string) string {
	s = directionMarks.Replace(s)
	s = strings.TrimSpace(s)
	s, _, _ = transform.String(stripMarks, s)
	s = letterFolds.Replace(s)
	s = nonWord.ReplaceAllString(s, " ")
	s = spaces.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.ToUpper(s)
}

// pluralSuffixes is the ordered list of suffix-folding rules applied by
// FoldPlural. Deliberately narrow: this is a comparison heuristic, not
// morphological analysis. New rules are appended here; matching logic
// stays untouched.
var pluralSuffixes = []string{
	"ات",
}

// FoldPlural strips a trailing plural suffix from an already-normalized
// string. The suffix is only stripped when something remains.
func FoldPlural(s string) string {
	for _, suffix := range pluralSuffixes {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix) {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}
