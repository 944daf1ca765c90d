package usecase

import (
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/service/directory"
)

// LookupUseCase answers free-text and button-driven department lookups
// against the current directory snapshot.
type LookupUseCase struct {
	dir *directory.Service
}

// LookupResult pins the snapshot the search ran against together with the
// matched indices, so index-based resolution stays consistent even if a
// reload swaps the directory underneath.
type LookupResult struct {
	Snapshot *model.Directory
	Indices  []int
}

// Search runs the tiered match over the current snapshot. An empty result
// means "not found", not an error; callers branch on len(Indices).
func (x *LookupUseCase) Search(query string) *LookupResult {
	snapshot := x.dir.Current()
	return &LookupResult{
		Snapshot: snapshot,
		Indices:  directory.Search(query, snapshot.Names()),
	}
}

// Snapshot returns the current directory snapshot
func (x *LookupUseCase) Snapshot() *model.Directory {
	return x.dir.Current()
}

// Resolve returns the department at the given index of the current snapshot
func (x *LookupUseCase) Resolve(idx int) (model.Department, bool) {
	return x.dir.Current().At(idx)
}
