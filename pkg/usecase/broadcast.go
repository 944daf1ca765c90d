package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/service/telegram"
	"github.com/karbala-lab/daleel/pkg/utils/logging"
)

// BroadcastUseCase sends one message to every known user. Sends are
// sequential with a fixed delay purely to respect the Bot API rate limit;
// individual failures (blocked bot, deleted account) are counted, not
// retried. A started run goes to completion unless the context is
// cancelled.
type BroadcastUseCase struct {
	repo  interfaces.Repository
	tg    telegram.Service
	delay time.Duration
}

// BroadcastResult summarizes one broadcast run
type BroadcastResult struct {
	Sent   int
	Failed int
}

// Run delivers text to all known user IDs
func (x *BroadcastUseCase) Run(ctx context.Context, text string) (*BroadcastResult, error) {
	if x.tg == nil {
		return nil, goerr.New("broadcast requires a Telegram service")
	}

	ids, err := x.repo.Users().ListIDs(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list broadcast recipients")
	}

	runID := uuid.NewString()
	logger := logging.From(ctx)
	logger.Info("broadcast starting", "run_id", runID, "recipients", len(ids))

	result := &BroadcastResult{}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return result, goerr.Wrap(err, "broadcast cancelled", goerr.V("run_id", runID))
		}

		if err := x.tg.SendText(ctx, types.ChatID(id), text, nil); err != nil {
			result.Failed++
			logger.Debug("broadcast send failed", "run_id", runID, "user_id", id, "error", err.Error())
		} else {
			result.Sent++
		}
		time.Sleep(x.delay)
	}

	logger.Info("broadcast finished", "run_id", runID, "sent", result.Sent, "failed", result.Failed)
	return result, nil
}
