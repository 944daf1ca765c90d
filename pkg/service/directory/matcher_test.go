package directory_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/karbala-lab/daleel/pkg/service/directory"
)

func TestSearch(t *testing.T) {
	names := []string{
		"الاستعلامات",  // 0
		"العمليات",     // 1
		"القلب",        // 2
		"قلب الاطفال",  // 3
		"المختبر",      // 4
		"جناح القلب",   // 5
	}

	t.Run("exact match comes before containing names", func(t *testing.T) {
		got := directory.Search("القلب", names)
		gt.Array(t, got).Equal([]int{2, 5})
	})

	t.Run("substring query returns every containing name in order", func(t *testing.T) {
		got := directory.Search("قلب", names)
		gt.Array(t, got).Equal([]int{2, 3, 5})
	})

	t.Run("exact tier precedes contains tier", func(t *testing.T) {
		// "عمليه" is only a substring match while "عمليات" folds to an
		// exact match, so the later index comes first.
		got := directory.Search("عملي", []string{"عمليه", "عمليات"})
		gt.Array(t, got).Equal([]int{1, 0})
	})

	t.Run("diacritics and variants do not block a match", func(t *testing.T) {
		got := directory.Search("القَلْب", names)
		gt.Array(t, got).Equal([]int{2, 5})
	})

	t.Run("partial word tier matches single tokens", func(t *testing.T) {
		got := directory.Search("مختبر ق", names)
		gt.Array(t, got).Equal([]int{4})
	})

	t.Run("no match yields nil", func(t *testing.T) {
		gt.Value(t, directory.Search("صيدلية", names)).Nil()
	})

	t.Run("empty query yields nil", func(t *testing.T) {
		gt.Value(t, directory.Search("", names)).Nil()
		gt.Value(t, directory.Search("  !! ", names)).Nil()
	})

	t.Run("each index appears once", func(t *testing.T) {
		got := directory.Search("قلب الاطفال", names)
		seen := map[int]bool{}
		for _, idx := range got {
			gt.Bool(t, seen[idx]).False()
			seen[idx] = true
		}
	})
}
