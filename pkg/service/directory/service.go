package directory

import (
	"context"
	"sync/atomic"

	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/service/arabic"
)

// Service owns the current directory snapshot. Reload builds a new snapshot
// and swaps the pointer atomically, so a handler reading mid-reload keeps a
// consistent view and never observes a half-replaced list.
type Service struct {
	loader  *Loader
	current atomic.Pointer[model.Directory]
}

// New creates a directory service over the given data directory
func New(dataDir string) *Service {
	svc := &Service{loader: NewLoader(dataDir)}
	svc.current.Store(model.NewDirectory(nil, arabic.Normalize))
	return svc
}

// Reload builds a fresh snapshot from the spreadsheets and makes it current.
// On failure the previous snapshot stays in place.
func (x *Service) Reload(ctx context.Context) (int, error) {
	dir, err := x.loader.Load(ctx)
	if err != nil {
		return 0, err
	}
	x.current.Store(dir)
	return dir.Len(), nil
}

// Current returns the active snapshot. Never nil; an unloaded service
// serves an empty directory.
func (x *Service) Current() *model.Directory {
	return x.current.Load()
}
