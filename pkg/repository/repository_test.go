package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/repository/memory"
	"github.com/karbala-lab/daleel/pkg/repository/sqlite"
)

// Timestamps use whole seconds: the SQLite backend stores RFC3339 strings
// with second precision.
var t0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func at(sec int) time.Time {
	return t0.Add(time.Duration(sec) * time.Second)
}

func event(ts time.Time, user int64, kind types.EventKind, dept string) *model.Event {
	return &model.Event{
		Timestamp:  ts,
		UserID:     types.UserID(user),
		ChatID:     types.ChatID(user),
		Kind:       kind,
		Department: dept,
	}
}

func runRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Upsert preserves FirstSeen and refreshes the rest", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Users().Upsert(ctx, 7, "Ali", "ali", at(0))).Required()
		gt.NoError(t, repo.Users().Upsert(ctx, 7, "Ali Hassan", "ali_h", at(60))).Required()

		user, err := repo.Users().Get(ctx, 7)
		gt.NoError(t, err).Required()
		gt.Bool(t, user.FirstSeen.Equal(at(0))).True()
		gt.Bool(t, user.LastSeen.Equal(at(60))).True()
		gt.Value(t, user.Name).Equal("Ali Hassan")
		gt.Value(t, user.Handle).Equal("ali_h")
	})

	t.Run("Get of unknown user fails", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Users().Get(context.Background(), 999)
		gt.Value(t, err).NotNil()
	})

	t.Run("Count respects the first-seen window", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Users().Upsert(ctx, 1, "a", "", at(0)))
		gt.NoError(t, repo.Users().Upsert(ctx, 2, "b", "", at(10)))
		gt.NoError(t, repo.Users().Upsert(ctx, 3, "c", "", at(20)))

		n, err := repo.Users().Count(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(3))

		// inclusive bounds
		n, err = repo.Users().Count(ctx, types.Between(at(10), at(20)))
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(2))

		n, err = repo.Users().Count(ctx, types.Since(at(21)))
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(0))
	})

	t.Run("ListPage orders and pages", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := int64(1); i <= 5; i++ {
			gt.NoError(t, repo.Users().Upsert(ctx, types.UserID(i), "", "", at(int(i)*10)))
		}

		asc, err := repo.Users().ListPage(ctx, interfaces.UserOrderFirstSeenAsc, 0, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, asc).Length(5)
		gt.Value(t, asc[0].ID).Equal(types.UserID(1))
		gt.Value(t, asc[4].ID).Equal(types.UserID(5))

		desc, err := repo.Users().ListPage(ctx, interfaces.UserOrderFirstSeenDesc, 0, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, desc).Length(2)
		gt.Value(t, desc[0].ID).Equal(types.UserID(5))
		gt.Value(t, desc[1].ID).Equal(types.UserID(4))

		page2, err := repo.Users().ListPage(ctx, interfaces.UserOrderFirstSeenDesc, 2, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, page2).Length(2)
		gt.Value(t, page2[0].ID).Equal(types.UserID(3))

		empty, err := repo.Users().ListPage(ctx, interfaces.UserOrderFirstSeenAsc, 10, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, empty).Length(0)
	})

	t.Run("ListIDs returns every known ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Users().Upsert(ctx, 3, "", "", at(0)))
		gt.NoError(t, repo.Users().Upsert(ctx, 1, "", "", at(1)))

		ids, err := repo.Users().ListIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Equal([]types.UserID{1, 3})
	})

	t.Run("Append rejects invalid events", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Events().Append(ctx, &model.Event{UserID: 1, Kind: types.EventKindStart})
		gt.Value(t, err).NotNil() // zero timestamp

		err = repo.Events().Append(ctx, event(at(0), 1, "selfie", ""))
		gt.Value(t, err).NotNil() // unknown kind
	})

	t.Run("LastActivity over empty log", func(t *testing.T) {
		repo := newRepo(t)
		_, ok, err := repo.Events().LastActivity(context.Background(), types.AllTime)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})

	t.Run("LastActivity returns the windowed maximum", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 1, types.EventKindStart, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(30), 1, types.EventKindSearchText, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(10), 2, types.EventKindStart, "")))

		ts, ok, err := repo.Events().LastActivity(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Bool(t, ts.Equal(at(30))).True()

		ts, ok, err = repo.Events().LastActivity(ctx, types.Between(at(0), at(10)))
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Bool(t, ts.Equal(at(10))).True()
	})

	t.Run("TopDepartments counts only resolving kinds", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		kinds := types.ResolvedDepartmentKinds()
		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 1, types.EventKindDeptSelect, "القلب")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(1), 2, types.EventKindSearchHit, "القلب")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(2), 1, types.EventKindSearchHit, "المختبر")))
		// search_text carries no resolved department and must not count
		gt.NoError(t, repo.Events().Append(ctx, event(at(3), 1, types.EventKindSearchText, "المختبر")))
		// events without a department are excluded
		gt.NoError(t, repo.Events().Append(ctx, event(at(4), 1, types.EventKindDeptSelect, "")))

		rows, err := repo.Events().TopDepartments(ctx, types.AllTime, kinds, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
		gt.Value(t, rows[0]).Equal(model.DepartmentCount{Department: "القلب", Count: 2})
		gt.Value(t, rows[1]).Equal(model.DepartmentCount{Department: "المختبر", Count: 1})
	})

	t.Run("TopDepartments breaks ties by first appearance", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 1, types.EventKindDeptSelect, "B")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(1), 1, types.EventKindDeptSelect, "A")))

		rows, err := repo.Events().TopDepartments(ctx, types.AllTime, types.ResolvedDepartmentKinds(), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
		gt.Value(t, rows[0].Department).Equal("B")
		gt.Value(t, rows[1].Department).Equal("A")
	})

	t.Run("TopDepartments honors the limit", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i, dept := range []string{"A", "B", "C"} {
			gt.NoError(t, repo.Events().Append(ctx, event(at(i), 1, types.EventKindDeptSelect, dept)))
		}

		rows, err := repo.Events().TopDepartments(ctx, types.AllTime, types.ResolvedDepartmentKinds(), 2)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
	})

	t.Run("TopUsers joins display fields and ranks by count", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Users().Upsert(ctx, 1, "Ali", "ali", at(0)))
		gt.NoError(t, repo.Users().Upsert(ctx, 2, "Sara", "", at(0)))

		kinds := types.LookupKinds()
		gt.NoError(t, repo.Events().Append(ctx, event(at(1), 2, types.EventKindSearchText, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(2), 1, types.EventKindSearchHit, "القلب")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(3), 1, types.EventKindDeptSelect, "القلب")))
		// non-lookup kinds do not count
		gt.NoError(t, repo.Events().Append(ctx, event(at(4), 2, types.EventKindStart, "")))

		rows, err := repo.Events().TopUsers(ctx, types.AllTime, kinds, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)

		gt.Value(t, rows[0].UserID).Equal(types.UserID(1))
		gt.Value(t, rows[0].Name).Equal("Ali")
		gt.Value(t, rows[0].Handle).Equal("ali")
		gt.Value(t, rows[0].Count).Equal(int64(2))
		gt.Bool(t, rows[0].FirstUsed.Equal(at(2))).True()
		gt.Bool(t, rows[0].LastUsed.Equal(at(3))).True()

		gt.Value(t, rows[1].UserID).Equal(types.UserID(2))
		gt.Value(t, rows[1].Count).Equal(int64(1))
	})

	t.Run("TopUsers tolerates events from unknown users", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 42, types.EventKindSearchText, "")))

		rows, err := repo.Events().TopUsers(ctx, types.AllTime, types.LookupKinds(), 10)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].UserID).Equal(types.UserID(42))
		gt.Value(t, rows[0].Name).Equal("")
		gt.Value(t, rows[0].Handle).Equal("")
	})

	t.Run("RecentUsers orders by last activity descending", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 1, types.EventKindStart, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(10), 2, types.EventKindStart, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(20), 1, types.EventKindSearchText, "")))

		rows, err := repo.Events().RecentUsers(ctx, types.AllTime, 10)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)
		gt.Value(t, rows[0].UserID).Equal(types.UserID(1))
		gt.Bool(t, rows[0].LastUsed.Equal(at(20))).True()
		gt.Value(t, rows[1].UserID).Equal(types.UserID(2))

		one, err := repo.Events().RecentUsers(ctx, types.AllTime, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, one).Length(1)
	})

	t.Run("UsersUsed with nil kinds counts any event", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Events().Append(ctx, event(at(5), 2, types.EventKindStart, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 1, types.EventKindAbout, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(10), 1, types.EventKindSearchText, "")))

		rows, err := repo.Events().UsersUsed(ctx, types.AllTime, nil)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(2)

		// ordered by first occurrence ascending
		gt.Value(t, rows[0].UserID).Equal(types.UserID(1))
		gt.Value(t, rows[0].Count).Equal(int64(2))
		gt.Bool(t, rows[0].FirstUsed.Equal(at(0))).True()
		gt.Bool(t, rows[0].LastUsed.Equal(at(10))).True()
		gt.Value(t, rows[1].UserID).Equal(types.UserID(2))
	})

	t.Run("UsersUsed respects window and kind filter", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		gt.NoError(t, repo.Events().Append(ctx, event(at(0), 1, types.EventKindSearchText, "")))
		gt.NoError(t, repo.Events().Append(ctx, event(at(100), 2, types.EventKindStart, "")))

		rows, err := repo.Events().UsersUsed(ctx, types.Between(at(0), at(50)), types.LookupKinds())
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(1)
		gt.Value(t, rows[0].UserID).Equal(types.UserID(1))
	})
}

func TestRepository_Memory(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestRepository_SQLite(t *testing.T) {
	runRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "stats.db"))
		gt.NoError(t, err).Required()
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}
