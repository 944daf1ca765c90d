package interfaces

import (
	"context"
	"time"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// UserOrder specifies the sort order of a paged user listing
type UserOrder string

const (
	UserOrderFirstSeenAsc  UserOrder = "first_seen_asc"
	UserOrderFirstSeenDesc UserOrder = "first_seen_desc"
)

// UserRepository provides persistence for user records
type UserRepository interface {
	// Upsert creates the user on first contact and refreshes LastSeen, Name
	// and Handle afterwards. FirstSeen is set once and never updated.
	Upsert(ctx context.Context, id types.UserID, name, handle string, seenAt time.Time) error

	// Get retrieves a single user. Returns ErrNotFound when absent.
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// Count returns the number of users whose FirstSeen falls in the window
	Count(ctx context.Context, w types.Window) (int64, error)

	// ListPage returns users sliced by offset/limit in the given order
	ListPage(ctx context.Context, order UserOrder, offset, limit int) ([]*model.User, error)

	// ListIDs returns every known user ID
	ListIDs(ctx context.Context) ([]types.UserID, error)
}
