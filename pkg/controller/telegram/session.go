package telegram

import (
	"sync"

	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/usecase"
)

// sessionStore remembers the last multi-hit search per user so page-flip
// callbacks can re-render the same result set. Results pin the directory
// snapshot they were computed against, so a reload mid-pagination does not
// shift button indices.
type sessionStore struct {
	mu      sync.RWMutex
	results map[types.UserID]*usecase.LookupResult
}

func newSessionStore() *sessionStore {
	return &sessionStore{results: map[types.UserID]*usecase.LookupResult{}}
}

func (x *sessionStore) put(id types.UserID, res *usecase.LookupResult) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.results[id] = res
}

func (x *sessionStore) get(id types.UserID) (*usecase.LookupResult, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	res, ok := x.results[id]
	return res, ok
}
