package directory

import (
	"strings"
	"unicode/utf8"

	"github.com/karbala-lab/daleel/pkg/service/arabic"
)

// minTokenRunes is the minimum token length considered in the partial-word
// tier. Single characters match half the directory and are useless.
const minTokenRunes = 2

// Search ranks department indices matching a free-text query. Results are
// the concatenation of three disjoint buckets, each preserving the original
// department order:
//
//  1. exact: normalized query equals the normalized name, directly or after
//     plural folding on either side
//  2. contains: bidirectional substring containment over the same variants
//  3. partial word: any query token of at least two runes is a substring of
//     the name
//
// An index appears at most once, in the highest bucket it qualifies for.
// An empty normalized query yields no matches. Callers branch on result
// cardinality (0 / 1 / many); absence of matches is not an error.
func Search(query string, names []string) []int {
	qn := arabic.Normalize(query)
	if qn == "" {
		return nil
	}
	qf := arabic.FoldPlural(qn)

	var tokens []string
	for _, tok := range strings.Fields(qn) {
		if utf8.RuneCountInString(tok) >= minTokenRunes {
			tokens = append(tokens, tok)
		}
	}

	var exact, contains, partial []int
	for i, name := range names {
		dn := arabic.Normalize(name)
		df := arabic.FoldPlural(dn)

		switch {
		case qn == dn || qf == df:
			exact = append(exact, i)

		case strings.Contains(dn, qn) || strings.Contains(qn, dn) ||
			strings.Contains(df, qf) || strings.Contains(qf, df):
			contains = append(contains, i)

		default:
			for _, tok := range tokens {
				if strings.Contains(dn, tok) {
					partial = append(partial, i)
					break
				}
			}
		}
	}

	result := make([]int, 0, len(exact)+len(contains)+len(partial))
	result = append(result, exact...)
	result = append(result, contains...)
	result = append(result, partial...)
	if len(result) == 0 {
		return nil
	}
	return result
}
