package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/karbala-lab/daleel/pkg/domain/types"
	"github.com/karbala-lab/daleel/pkg/service/telegram"
)

// Telegram holds CLI flags for the Bot API transport and the admin account
type Telegram struct {
	token       string `masq:"secret"`
	adminID     int64
	pollTimeout time.Duration
}

// Flags returns CLI flags for Telegram configuration
func (x *Telegram) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "telegram-bot-token",
			Usage:       "Telegram Bot API token (required)",
			Required:    true,
			Sources:     cli.EnvVars("DALEEL_TELEGRAM_BOT_TOKEN", "BOT_TOKEN"),
			Destination: &x.token,
		},
		&cli.Int64Flag{
			Name:        "admin-id",
			Usage:       "Telegram user ID allowed to use /admin and /reload",
			Sources:     cli.EnvVars("DALEEL_ADMIN_ID", "ADMIN_ID"),
			Destination: &x.adminID,
		},
		&cli.DurationFlag{
			Name:        "telegram-poll-timeout",
			Usage:       "Long-poll timeout for update requests",
			Value:       telegram.DefaultPollTimeout,
			Sources:     cli.EnvVars("DALEEL_TELEGRAM_POLL_TIMEOUT"),
			Destination: &x.pollTimeout,
		},
	}
}

// AdminID returns the configured admin user ID, zero when unset
func (x *Telegram) AdminID() types.UserID {
	return types.UserID(x.adminID)
}

// Configure creates the Telegram service
func (x *Telegram) Configure() (telegram.Service, error) {
	return telegram.New(x.token, telegram.WithPollTimeout(x.pollTimeout))
}

// LogValue renders the configuration without the token
func (x *Telegram) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("token_set", x.token != ""),
		slog.Int64("admin_id", x.adminID),
		slog.String("poll_timeout", x.pollTimeout.String()),
	)
}
