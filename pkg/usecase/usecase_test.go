package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m-mizutani/gt"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/domain/model"
	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/repository/memory"
	"github.com/karbala-lab/daleel/pkg/usecase"
)

var testClock = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestUseCases(t *testing.T, repo interfaces.Repository, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	opts = append([]usecase.Option{
		usecase.WithClock(func() time.Time { return testClock }),
		usecase.WithLocation(time.UTC, "UTC"),
		usecase.WithBotTitle("Test Bot"),
	}, opts...)
	return usecase.New(repo, nil, nil, opts...)
}

// mockTelegram records sends; failIDs simulates blocked users
type mockTelegram struct {
	mu      sync.Mutex
	sent    []types.ChatID
	failIDs map[types.ChatID]bool
}

func (m *mockTelegram) SendText(ctx context.Context, chatID types.ChatID, text string, markup any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failIDs[chatID] {
		return context.DeadlineExceeded
	}
	m.sent = append(m.sent, chatID)
	return nil
}

func (m *mockTelegram) SendDocument(ctx context.Context, chatID types.ChatID, filename string, data []byte, caption string) error {
	return nil
}

func (m *mockTelegram) EditText(ctx context.Context, chatID types.ChatID, messageID int, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	return nil
}

func (m *mockTelegram) AnswerCallback(ctx context.Context, callbackID string) error { return nil }
func (m *mockTelegram) Updates() tgbotapi.UpdatesChannel                            { return nil }
func (m *mockTelegram) Username() string                                            { return "test_bot" }
func (m *mockTelegram) Stop()                                                       {}

func TestTrack(t *testing.T) {
	ctx := context.Background()

	t.Run("Touch creates and refreshes the user", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(t, repo)

		gt.NoError(t, uc.Track.Touch(ctx, 5, "Ali", "ali")).Required()

		user, err := repo.Users().Get(ctx, 5)
		gt.NoError(t, err).Required()
		gt.Value(t, user.Name).Equal("Ali")
		gt.Bool(t, user.FirstSeen.Equal(testClock)).True()
	})

	t.Run("Touch ignores the zero user ID", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(t, repo)

		gt.NoError(t, uc.Track.Touch(ctx, 0, "ghost", ""))

		n, err := repo.Users().Count(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Value(t, n).Equal(int64(0))
	})

	t.Run("Log stamps events with the clock", func(t *testing.T) {
		repo := memory.New()
		uc := newTestUseCases(t, repo)

		gt.NoError(t, uc.Track.Log(ctx, types.EventKindSearchHit, 5, 5, "القلب", "قلب", "")).Required()

		ts, ok, err := repo.Events().LastActivity(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Bool(t, ts.Equal(testClock)).True()
	})
}

func TestStats(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T) (*usecase.UseCases, interfaces.Repository) {
		t.Helper()
		repo := memory.New()
		uc := newTestUseCases(t, repo)

		gt.NoError(t, repo.Users().Upsert(ctx, 1, "Ali", "ali", testClock)).Required()
		gt.NoError(t, repo.Users().Upsert(ctx, 2, "Sara", "", testClock.Add(time.Minute))).Required()

		events := []struct {
			user int64
			kind types.EventKind
			dept string
		}{
			{1, types.EventKindStart, ""},
			{1, types.EventKindSearchHit, "القلب"},
			{1, types.EventKindDeptSelect, "القلب"},
			{2, types.EventKindSearchText, ""},
			{2, types.EventKindDeptSelect, "المختبر"},
		}
		for i, e := range events {
			gt.NoError(t, repo.Events().Append(ctx, &model.Event{
				Timestamp:  testClock.Add(time.Duration(i) * time.Second),
				UserID:     types.UserID(e.user),
				ChatID:     types.ChatID(e.user),
				Kind:       e.kind,
				Department: e.dept,
			})).Required()
		}
		return uc, repo
	}

	t.Run("Summary collects the headline numbers", func(t *testing.T) {
		uc, _ := seed(t)

		summary, err := uc.Stats.Summary(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Value(t, summary.TotalUsers).Equal(int64(2))
		gt.Bool(t, summary.HasActivity).True()

		gt.Array(t, summary.TopDepartments).Length(2)
		gt.Value(t, summary.TopDepartments[0].Department).Equal("القلب")
		gt.Value(t, summary.TopDepartments[0].Count).Equal(int64(2))

		gt.Array(t, summary.TopUsers).Length(2)
		gt.Value(t, summary.TopUsers[0].UserID).Equal(types.UserID(1))
	})

	t.Run("Summary over an empty log", func(t *testing.T) {
		uc := newTestUseCases(t, memory.New())

		summary, err := uc.Stats.Summary(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Value(t, summary.TotalUsers).Equal(int64(0))
		gt.Bool(t, summary.HasActivity).False()
		gt.Array(t, summary.TopDepartments).Length(0)
	})

	t.Run("UsersUsed counts any event kind", func(t *testing.T) {
		uc, repo := seed(t)

		gt.NoError(t, repo.Events().Append(ctx, &model.Event{
			Timestamp: testClock.Add(time.Hour),
			UserID:    3,
			Kind:      types.EventKindAbout,
		})).Required()

		rows, err := uc.Stats.UsersUsed(ctx, types.AllTime)
		gt.NoError(t, err).Required()
		gt.Array(t, rows).Length(3)
	})
}

func TestBroadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to every known user", func(t *testing.T) {
		repo := memory.New()
		for i := int64(1); i <= 3; i++ {
			gt.NoError(t, repo.Users().Upsert(ctx, types.UserID(i), "", "", testClock)).Required()
		}

		tg := &mockTelegram{}
		uc := usecase.New(repo, nil, tg,
			usecase.WithBroadcastDelay(0),
		)

		result, err := uc.Broadcast.Run(ctx, "hello")
		gt.NoError(t, err).Required()
		gt.Value(t, result.Sent).Equal(3)
		gt.Value(t, result.Failed).Equal(0)
		gt.Array(t, tg.sent).Length(3)
	})

	t.Run("counts failures without aborting", func(t *testing.T) {
		repo := memory.New()
		for i := int64(1); i <= 3; i++ {
			gt.NoError(t, repo.Users().Upsert(ctx, types.UserID(i), "", "", testClock)).Required()
		}

		tg := &mockTelegram{failIDs: map[types.ChatID]bool{2: true}}
		uc := usecase.New(repo, nil, tg, usecase.WithBroadcastDelay(0))

		result, err := uc.Broadcast.Run(ctx, "hello")
		gt.NoError(t, err).Required()
		gt.Value(t, result.Sent).Equal(2)
		gt.Value(t, result.Failed).Equal(1)
	})

	t.Run("requires the transport", func(t *testing.T) {
		uc := usecase.New(memory.New(), nil, nil)
		_, err := uc.Broadcast.Run(ctx, "hello")
		gt.Value(t, err).NotNil()
	})
}
