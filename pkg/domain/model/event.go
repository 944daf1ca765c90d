package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// Event is one append-only usage log record, the sole source of truth for
// all analytics.
type Event struct {
	Timestamp  time.Time
	UserID     types.UserID
	ChatID     types.ChatID
	Kind       types.EventKind
	Department string // set when the event concerns a specific department
	Query      string // raw free-text search string, when applicable
	Extra      string
}

// Validate checks the event holds the minimum required fields
func (x *Event) Validate() error {
	if x.Timestamp.IsZero() {
		return goerr.New("event timestamp is required")
	}
	if x.UserID == 0 {
		return goerr.New("event user ID is required")
	}
	if !x.Kind.IsValid() {
		return goerr.New("invalid event kind", goerr.V("kind", x.Kind))
	}
	return nil
}
