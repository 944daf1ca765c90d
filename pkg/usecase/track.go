package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// TrackUseCase records who used the bot and what they did. The user upsert
// always happens before the event append, so every event's user ID has a
// user record at least as old as the event. The two writes are separate
// commits; a crash between them loses the event, not the user.
type TrackUseCase struct {
	repo  interfaces.Repository
	clock func() time.Time
}

// Touch upserts the acting user with the current timestamp
func (x *TrackUseCase) Touch(ctx context.Context, id types.UserID, name, handle string) error {
	if id == 0 {
		return nil
	}
	if err := x.repo.Users().Upsert(ctx, id, name, handle, x.clock()); err != nil {
		return goerr.Wrap(err, "failed to upsert user", goerr.V("id", id))
	}
	return nil
}

// Log appends one usage event
func (x *TrackUseCase) Log(ctx context.Context, kind types.EventKind, userID types.UserID, chatID types.ChatID, dept, query, extra string) error {
	ev := &model.Event{
		Timestamp:  x.clock(),
		UserID:     userID,
		ChatID:     chatID,
		Kind:       kind,
		Department: dept,
		Query:      query,
		Extra:      extra,
	}
	if err := x.repo.Events().Append(ctx, ev); err != nil {
		return goerr.Wrap(err, "failed to append event", goerr.V("kind", kind))
	}
	return nil
}
