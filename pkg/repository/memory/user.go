package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[types.UserID]*model.User
}

func newUserRepository() *userRepository {
	return &userRepository{
		users: make(map[types.UserID]*model.User),
	}
}

func (r *userRepository) Upsert(ctx context.Context, id types.UserID, name, handle string, seenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.users[id]; ok {
		existing.LastSeen = seenAt
		existing.Name = name
		existing.Handle = handle
		return nil
	}

	r.users[id] = &model.User{
		ID:        id,
		FirstSeen: seenAt,
		LastSeen:  seenAt,
		Name:      name,
		Handle:    handle,
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("id", id))
	}

	userCopy := *user
	return &userCopy, nil
}

func (r *userRepository) Count(ctx context.Context, w types.Window) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, user := range r.users {
		if w.Contains(user.FirstSeen) {
			n++
		}
	}
	return n, nil
}

func (r *userRepository) ListPage(ctx context.Context, order interfaces.UserOrder, offset, limit int) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		userCopy := *user
		all = append(all, &userCopy)
	}

	desc := order == interfaces.UserOrderFirstSeenDesc
	sort.Slice(all, func(i, j int) bool {
		if !all[i].FirstSeen.Equal(all[j].FirstSeen) {
			if desc {
				return all[i].FirstSeen.After(all[j].FirstSeen)
			}
			return all[i].FirstSeen.Before(all[j].FirstSeen)
		}
		if desc {
			return all[i].ID > all[j].ID
		}
		return all[i].ID < all[j].ID
	})

	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *userRepository) ListIDs(ctx context.Context) ([]types.UserID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]types.UserID, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// lookupDisplay returns name/handle for joined aggregates. Missing users
// yield empty fields, mirroring the SQL LEFT JOIN behavior.
func (r *userRepository) lookupDisplay(id types.UserID) (name, handle string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if user, ok := r.users[id]; ok {
		return user.Name, user.Handle
	}
	return "", ""
}
