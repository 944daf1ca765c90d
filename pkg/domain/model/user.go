package model

import (
	"time"

	"github.com/karbala-lab/daleel/pkg/domain/types"
)

// User is a person who interacted with the bot. Upserted on first contact;
// LastSeen, Name and Handle are refreshed on every subsequent interaction,
// FirstSeen never changes after creation.
type User struct {
	ID        types.UserID
	FirstSeen time.Time
	LastSeen  time.Time
	Name      string // Telegram full name as last seen
	Handle    string // Telegram username without "@", may be empty
}

// Label returns the best human-readable identifier for the user
func (x *User) Label() string {
	if x.Name != "" {
		return x.Name
	}
	if x.Handle != "" {
		return "@" + x.Handle
	}
	return x.ID.String()
}
