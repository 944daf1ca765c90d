package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

type eventRepository struct {
	mu     sync.RWMutex
	events []*model.Event
	users  *userRepository
}

func newEventRepository(users *userRepository) *eventRepository {
	return &eventRepository{users: users}
}

func (r *eventRepository) Append(ctx context.Context, ev *model.Event) error {
	if err := ev.Validate(); err != nil {
		return goerr.Wrap(err, "invalid event")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	evCopy := *ev
	r.events = append(r.events, &evCopy)
	return nil
}

func (r *eventRepository) LastActivity(ctx context.Context, w types.Window) (time.Time, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last time.Time
	var found bool
	for _, ev := range r.events {
		if !w.Contains(ev.Timestamp) {
			continue
		}
		if !found || ev.Timestamp.After(last) {
			last = ev.Timestamp
			found = true
		}
	}
	return last, found, nil
}

func kindSet(kinds []types.EventKind) map[types.EventKind]bool {
	if len(kinds) == 0 {
		return nil
	}
	set := make(map[types.EventKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// matches treats a nil set as "any kind"
func matches(set map[types.EventKind]bool, kind types.EventKind) bool {
	return set == nil || set[kind]
}

func (r *eventRepository) TopDepartments(ctx context.Context, w types.Window, kinds []types.EventKind, limit int) ([]model.DepartmentCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := kindSet(kinds)
	counts := make(map[string]int64)
	var order []string
	for _, ev := range r.events {
		if ev.Department == "" || !matches(set, ev.Kind) || !w.Contains(ev.Timestamp) {
			continue
		}
		if _, seen := counts[ev.Department]; !seen {
			order = append(order, ev.Department)
		}
		counts[ev.Department]++
	}

	rows := make([]model.DepartmentCount, 0, len(order))
	for _, dept := range order {
		rows = append(rows, model.DepartmentCount{Department: dept, Count: counts[dept]})
	}
	// stable: ties keep first-appearance order
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type userGroup struct {
	count int64
	first time.Time
	last  time.Time
}

func (r *eventRepository) groupByUser(w types.Window, set map[types.EventKind]bool) (map[types.UserID]*userGroup, []types.UserID) {
	groups := make(map[types.UserID]*userGroup)
	var order []types.UserID
	for _, ev := range r.events {
		if !matches(set, ev.Kind) || !w.Contains(ev.Timestamp) {
			continue
		}
		g, ok := groups[ev.UserID]
		if !ok {
			g = &userGroup{first: ev.Timestamp, last: ev.Timestamp}
			groups[ev.UserID] = g
			order = append(order, ev.UserID)
		}
		g.count++
		if ev.Timestamp.Before(g.first) {
			g.first = ev.Timestamp
		}
		if ev.Timestamp.After(g.last) {
			g.last = ev.Timestamp
		}
	}
	return groups, order
}

func (r *eventRepository) TopUsers(ctx context.Context, w types.Window, kinds []types.EventKind, limit int) ([]model.UserUsage, error) {
	r.mu.RLock()
	groups, order := r.groupByUser(w, kindSet(kinds))
	r.mu.RUnlock()

	rows := make([]model.UserUsage, 0, len(order))
	for _, id := range order {
		g := groups[id]
		name, handle := r.users.lookupDisplay(id)
		rows = append(rows, model.UserUsage{
			UserID:    id,
			Name:      name,
			Handle:    handle,
			Count:     g.count,
			FirstUsed: g.first,
			LastUsed:  g.last,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *eventRepository) RecentUsers(ctx context.Context, w types.Window, limit int) ([]model.UserActivity, error) {
	r.mu.RLock()
	groups, order := r.groupByUser(w, nil)
	r.mu.RUnlock()

	rows := make([]model.UserActivity, 0, len(order))
	for _, id := range order {
		name, handle := r.users.lookupDisplay(id)
		rows = append(rows, model.UserActivity{
			UserID:   id,
			Name:     name,
			Handle:   handle,
			LastUsed: groups[id].last,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].LastUsed.After(rows[j].LastUsed) })

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *eventRepository) UsersUsed(ctx context.Context, w types.Window, kinds []types.EventKind) ([]model.UserUsage, error) {
	r.mu.RLock()
	groups, order := r.groupByUser(w, kindSet(kinds))
	r.mu.RUnlock()

	rows := make([]model.UserUsage, 0, len(order))
	for _, id := range order {
		g := groups[id]
		name, handle := r.users.lookupDisplay(id)
		rows = append(rows, model.UserUsage{
			UserID:    id,
			Name:      name,
			Handle:    handle,
			Count:     g.count,
			FirstUsed: g.first,
			LastUsed:  g.last,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].FirstUsed.Before(rows[j].FirstUsed) })
	return rows, nil
}
