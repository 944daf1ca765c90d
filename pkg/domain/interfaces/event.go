package interfaces

import (
	"context"
	"time"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// EventRepository provides append and aggregate reads over the usage log.
//
// All aggregates are read-only projections scoped by an inclusive window;
// an empty log yields empty results, never an error.
//
// N+1 Prevention Policy: aggregates that need user display fields join the
// user table in a single query. No per-row user fetches in loops.
type EventRepository interface {
	// Append adds one event to the log. Events are never updated or deleted.
	Append(ctx context.Context, ev *model.Event) error

	// LastActivity returns the maximum event timestamp in the window.
	// ok is false when the windowed log is empty.
	LastActivity(ctx context.Context, w types.Window) (ts time.Time, ok bool, err error)

	// TopDepartments groups events of the given kinds by department, counts
	// them and returns the first limit rows ordered by count descending.
	// Events with an empty department are excluded.
	TopDepartments(ctx context.Context, w types.Window, kinds []types.EventKind, limit int) ([]model.DepartmentCount, error)

	// TopUsers groups events of the given kinds by user, counts them and
	// returns the first limit rows ordered by count descending, with first
	// and last event timestamps and joined display fields.
	TopUsers(ctx context.Context, w types.Window, kinds []types.EventKind, limit int) ([]model.UserUsage, error)

	// RecentUsers returns the limit users with the most recent event
	// timestamp, ordered by that timestamp descending.
	RecentUsers(ctx context.Context, w types.Window, limit int) ([]model.UserActivity, error)

	// UsersUsed returns every user with at least one event of the given
	// kinds, with first/last timestamps and count, ordered by first
	// occurrence ascending. Empty kinds means any event qualifies.
	UsersUsed(ctx context.Context, w types.Window, kinds []types.EventKind) ([]model.UserUsage, error)
}
