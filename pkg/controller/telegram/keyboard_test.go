package telegram

import (
	"fmt"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/service/arabic"
	"github.com/karbala-lab/daleel/pkg/usecase"
)

func testDirectory(n int) *model.Directory {
	entries := make([]model.Department, n)
	for i := range entries {
		entries[i] = model.Department{
			Name:  fmt.Sprintf("قسم %03d", i),
			Phone: fmt.Sprintf("%04d", 1000+i),
		}
	}
	return model.NewDirectory(entries, arabic.Normalize)
}

func TestBuildGrid(t *testing.T) {
	t.Run("single page has no navigation row", func(t *testing.T) {
		dir := testDirectory(5)
		markup := gridAll(dir, 0)

		// two rows of three columns (3+2), plus the home row
		rows := markup.InlineKeyboard
		gt.Array(t, rows).Length(3)
		gt.Array(t, rows[0]).Length(3)
		gt.Array(t, rows[1]).Length(2)
		gt.Array(t, rows[2]).Length(1)
		gt.Value(t, *rows[2][0].CallbackData).Equal("home")
	})

	t.Run("buttons carry department indices", func(t *testing.T) {
		dir := testDirectory(4)
		markup := gridAll(dir, 0)

		gt.Value(t, *markup.InlineKeyboard[0][0].CallbackData).Equal("dept:0")
		gt.Value(t, *markup.InlineKeyboard[1][0].CallbackData).Equal("dept:3")
	})

	t.Run("full directory pages by 24", func(t *testing.T) {
		dir := testDirectory(25)
		markup := gridAll(dir, 0)

		rows := markup.InlineKeyboard
		// 24 buttons in 8 rows, then navigation, then home
		gt.Array(t, rows).Length(10)

		nav := rows[8]
		gt.Array(t, nav).Length(2) // page label + next, no prev on page 0
		gt.Value(t, *nav[0].CallbackData).Equal("noop")
		gt.Value(t, nav[0].Text).Equal("صفحة 1/2")
		gt.Value(t, *nav[1].CallbackData).Equal("allp:1")
	})

	t.Run("last page shows only the remainder", func(t *testing.T) {
		dir := testDirectory(25)
		markup := gridAll(dir, 1)

		rows := markup.InlineKeyboard
		// 1 button row, navigation, home
		gt.Array(t, rows).Length(3)
		gt.Array(t, rows[0]).Length(1)
		gt.Value(t, *rows[0][0].CallbackData).Equal("dept:24")

		nav := rows[1]
		gt.Array(t, nav).Length(2) // prev + page label, no next
		gt.Value(t, *nav[0].CallbackData).Equal("allp:0")
	})

	t.Run("out-of-range page is clamped", func(t *testing.T) {
		dir := testDirectory(25)
		markup := gridAll(dir, 99)
		gt.Value(t, *markup.InlineKeyboard[0][0].CallbackData).Equal("dept:24")

		markup = gridAll(dir, -3)
		gt.Value(t, *markup.InlineKeyboard[0][0].CallbackData).Equal("dept:0")
	})

	t.Run("search grid pages by 21 over its own indices", func(t *testing.T) {
		dir := testDirectory(30)
		indices := make([]int, 22)
		for i := range indices {
			indices[i] = i + 5
		}
		markup := gridSearch(dir, indices, 0)

		rows := markup.InlineKeyboard
		// 21 buttons in 7 rows, then navigation, then home
		gt.Array(t, rows).Length(9)
		gt.Value(t, *rows[0][0].CallbackData).Equal("dept:5")
		gt.Value(t, *rows[7][1].CallbackData).Equal("srchp:1")
	})

	t.Run("empty directory still offers home", func(t *testing.T) {
		markup := gridAll(testDirectory(0), 0)
		rows := markup.InlineKeyboard
		gt.Array(t, rows).Length(1)
		gt.Value(t, *rows[0][0].CallbackData).Equal("home")
	})
}

func TestSessionStore(t *testing.T) {
	store := newSessionStore()

	_, ok := store.get(1)
	gt.Bool(t, ok).False()

	res := &usecase.LookupResult{Indices: []int{1, 2}}
	store.put(1, res)

	got, ok := store.get(1)
	gt.Bool(t, ok).True()
	gt.Value(t, got).Equal(res)

	_, ok = store.get(2)
	gt.Bool(t, ok).False()
}
