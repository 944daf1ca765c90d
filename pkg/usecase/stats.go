package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// Panel sizes, from the admin panel layout
const (
	TopDepartmentsLimit = 10
	TopUsersLimit       = 15
	RecentUsersLimit    = 25
	UsersPageSize       = 50
)

// StatsUseCase answers analytical queries over the usage log and user
// table. Read-only; aggregations over an empty log return empty results.
type StatsUseCase struct {
	repo interfaces.Repository
}

// TotalUsers returns the number of users first seen within the window
func (x *StatsUseCase) TotalUsers(ctx context.Context, w types.Window) (int64, error) {
	n, err := x.repo.Users().Count(ctx, w)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count users")
	}
	return n, nil
}

// LastActivity returns the most recent event timestamp in the window;
// ok is false when there is no activity.
func (x *StatsUseCase) LastActivity(ctx context.Context, w types.Window) (time.Time, bool, error) {
	return x.repo.Events().LastActivity(ctx, w)
}

// TopDepartments ranks departments by resolved-department interactions
func (x *StatsUseCase) TopDepartments(ctx context.Context, w types.Window, limit int) ([]model.DepartmentCount, error) {
	return x.repo.Events().TopDepartments(ctx, w, types.ResolvedDepartmentKinds(), limit)
}

// TopUsers ranks users by lookup events
func (x *StatsUseCase) TopUsers(ctx context.Context, w types.Window, limit int) ([]model.UserUsage, error) {
	return x.repo.Events().TopUsers(ctx, w, types.LookupKinds(), limit)
}

// RecentUsers lists users by most recent activity
func (x *StatsUseCase) RecentUsers(ctx context.Context, w types.Window, limit int) ([]model.UserActivity, error) {
	return x.repo.Events().RecentUsers(ctx, w, limit)
}

// UsersPage returns one page of the full user listing
func (x *StatsUseCase) UsersPage(ctx context.Context, order interfaces.UserOrder, offset, limit int) ([]*model.User, error) {
	return x.repo.Users().ListPage(ctx, order, offset, limit)
}

// UsersUsed lists users that produced at least one event of any kind,
// ordered by first occurrence
func (x *StatsUseCase) UsersUsed(ctx context.Context, w types.Window) ([]model.UserUsage, error) {
	return x.repo.Events().UsersUsed(ctx, w, nil)
}

// Summary collects the headline numbers for the admin panel
func (x *StatsUseCase) Summary(ctx context.Context, w types.Window) (*model.Summary, error) {
	total, err := x.TotalUsers(ctx, w)
	if err != nil {
		return nil, err
	}
	last, ok, err := x.LastActivity(ctx, w)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get last activity")
	}
	topDepts, err := x.TopDepartments(ctx, w, TopDepartmentsLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to rank departments")
	}
	topUsers, err := x.TopUsers(ctx, w, TopUsersLimit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to rank users")
	}

	return &model.Summary{
		TotalUsers:     total,
		LastActivity:   last,
		HasActivity:    ok,
		TopDepartments: topDepts,
		TopUsers:       topUsers,
	}, nil
}
