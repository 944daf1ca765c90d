package usecase

import (
	"time"

	"github.com/karbala-lab/daleel/pkg/domain/interfaces"
	"github.com/karbala-lab/daleel/pkg/service/directory"
	"github.com/karbala-lab/daleel/pkg/service/telegram"
)

// DefaultBroadcastDelay is the pause between bulk sends, to stay under the
// Bot API rate limit
const DefaultBroadcastDelay = 50 * time.Millisecond

// UseCases bundles the application use cases
type UseCases struct {
	repo interfaces.Repository

	clock          func() time.Time
	location       *time.Location
	tzLabel        string
	botTitle       string
	broadcastDelay time.Duration

	Track     *TrackUseCase
	Lookup    *LookupUseCase
	Stats     *StatsUseCase
	Export    *ExportUseCase
	Broadcast *BroadcastUseCase
}

type Option func(*UseCases)

// WithClock overrides the time source (tests)
func WithClock(clock func() time.Time) Option {
	return func(uc *UseCases) {
		uc.clock = clock
	}
}

// WithLocation sets the civil timezone used for rendered timestamps
func WithLocation(loc *time.Location, label string) Option {
	return func(uc *UseCases) {
		uc.location = loc
		uc.tzLabel = label
	}
}

// WithBotTitle sets the title used in report summaries
func WithBotTitle(title string) Option {
	return func(uc *UseCases) {
		uc.botTitle = title
	}
}

// WithBroadcastDelay sets the pause between bulk sends
func WithBroadcastDelay(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.broadcastDelay = d
	}
}

// New assembles the use cases over the repository, the directory snapshot
// service and the Telegram transport. dir and tg may be nil for offline
// commands (export to file); Lookup is nil without a directory and only
// Broadcast requires the transport.
func New(repo interfaces.Repository, dir *directory.Service, tg telegram.Service, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:           repo,
		clock:          time.Now,
		location:       time.UTC,
		tzLabel:        "UTC",
		botTitle:       "Hospital PhoneBook",
		broadcastDelay: DefaultBroadcastDelay,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Track = &TrackUseCase{repo: repo, clock: uc.clock}
	if dir != nil {
		uc.Lookup = &LookupUseCase{dir: dir}
	}
	uc.Stats = &StatsUseCase{repo: repo}
	uc.Export = &ExportUseCase{
		stats:    uc.Stats,
		clock:    uc.clock,
		location: uc.location,
		tzLabel:  uc.tzLabel,
		botTitle: uc.botTitle,
	}
	uc.Broadcast = &BroadcastUseCase{
		repo:  repo,
		tg:    tg,
		delay: uc.broadcastDelay,
	}

	return uc
}

// FormatTime renders a timestamp in the configured civil timezone, or a
// placeholder dash for the zero time.
func (uc *UseCases) FormatTime(t time.Time) string {
	return formatTime(t, uc.location, uc.tzLabel)
}

func formatTime(t time.Time, loc *time.Location, label string) string {
	if t.IsZero() {
		return "—"
	}
	return t.In(loc).Format("2006-01-02  15:04:05") + "  (" + label + ")"
}
