package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/karbala-lab/daleel/pkg/usecase"
)

// App holds CLI flags for presentation concerns shared by the bot and the
// offline export command.
type App struct {
	botTitle       string
	timezone       string
	timezoneLabel  string
	broadcastDelay time.Duration
}

// Flags returns CLI flags for app configuration
func (x *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bot-title",
			Usage:       "Bot title shown in report summaries",
			Value:       "Imam Hassan Al-Mujtaba Hospital PhoneBook",
			Sources:     cli.EnvVars("DALEEL_BOT_TITLE"),
			Destination: &x.botTitle,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "IANA timezone for rendered timestamps",
			Value:       "Asia/Baghdad",
			Sources:     cli.EnvVars("DALEEL_TIMEZONE"),
			Destination: &x.timezone,
		},
		&cli.StringFlag{
			Name:        "timezone-label",
			Usage:       "Label appended to rendered timestamps",
			Value:       "Karbala",
			Sources:     cli.EnvVars("DALEEL_TIMEZONE_LABEL"),
			Destination: &x.timezoneLabel,
		},
		&cli.DurationFlag{
			Name:        "broadcast-delay",
			Usage:       "Pause between bulk broadcast sends",
			Value:       usecase.DefaultBroadcastDelay,
			Sources:     cli.EnvVars("DALEEL_BROADCAST_DELAY"),
			Destination: &x.broadcastDelay,
		},
	}
}

// UsecaseOptions resolves the timezone and returns the usecase options this
// configuration implies.
func (x *App) UsecaseOptions() ([]usecase.Option, error) {
	loc, err := time.LoadLocation(x.timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load timezone", goerr.V("tz", x.timezone))
	}

	return []usecase.Option{
		usecase.WithLocation(loc, x.timezoneLabel),
		usecase.WithBotTitle(x.botTitle),
		usecase.WithBroadcastDelay(x.broadcastDelay),
	}, nil
}
