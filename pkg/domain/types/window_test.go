package types_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

func TestWindow(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("all-time contains everything", func(t *testing.T) {
		gt.Bool(t, types.AllTime.IsAllTime()).True()
		gt.Bool(t, types.AllTime.Contains(base)).True()
		gt.Bool(t, types.AllTime.Contains(time.Time{})).True()
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		w := types.Between(base, base.Add(time.Hour))

		gt.Bool(t, w.Contains(base)).True()
		gt.Bool(t, w.Contains(base.Add(time.Hour))).True()
		gt.Bool(t, w.Contains(base.Add(-time.Nanosecond))).False()
		gt.Bool(t, w.Contains(base.Add(time.Hour+time.Nanosecond))).False()
	})

	t.Run("since is open-ended upward", func(t *testing.T) {
		w := types.Since(base)
		gt.Bool(t, w.IsAllTime()).False()
		gt.Bool(t, w.Contains(base)).True()
		gt.Bool(t, w.Contains(base.AddDate(10, 0, 0))).True()
		gt.Bool(t, w.Contains(base.Add(-time.Second))).False()
	})
}

func TestEventKind(t *testing.T) {
	t.Run("parse accepts every known kind", func(t *testing.T) {
		for _, kind := range types.AllEventKinds() {
			parsed, err := types.ParseEventKind(kind.String())
			gt.NoError(t, err)
			gt.Value(t, parsed).Equal(kind)
		}
	})

	t.Run("parse rejects unknown kinds", func(t *testing.T) {
		_, err := types.ParseEventKind("selfie")
		gt.Value(t, err).NotNil()
	})

	t.Run("kind families are valid subsets", func(t *testing.T) {
		for _, kind := range types.ResolvedDepartmentKinds() {
			gt.Bool(t, kind.IsValid()).True()
		}
		for _, kind := range types.LookupKinds() {
			gt.Bool(t, kind.IsValid()).True()
		}
	})
}
